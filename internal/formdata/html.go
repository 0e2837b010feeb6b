package formdata

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/debnet/fallout/internal/errors"
)

// input types that never submit a value through serialization
var skippedInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
	"file":   true,
}

var crlf = strings.NewReplacer("\r\n", "\r\n", "\r", "\r\n", "\n", "\r\n")

// FieldsFromHTML returns the successful controls of the form matched by
// selector, in document order: named and enabled inputs, selects and
// textareas, with checkboxes and radios only when checked.
func FieldsFromHTML(r io.Reader, selector string) ([]Field, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse form html")
	}

	form := doc.Find(selector).First()
	if form.Length() == 0 {
		return nil, errors.NotFoundf("no form matches %q", selector)
	}

	return FieldsFromSelection(form), nil
}

// FieldsFromSelection serializes the controls under an already selected form
func FieldsFromSelection(form *goquery.Selection) []Field {
	var fields []Field

	form.Find("input, select, textarea").Each(func(_ int, el *goquery.Selection) {
		name, _ := el.Attr("name")
		if name == "" || isDisabled(el) {
			return
		}

		switch goquery.NodeName(el) {
		case "input":
			inputType := strings.ToLower(strings.TrimSpace(el.AttrOr("type", "text")))
			if skippedInputTypes[inputType] {
				return
			}
			if inputType == "checkbox" || inputType == "radio" {
				if _, checked := el.Attr("checked"); !checked {
					return
				}
				fields = append(fields, Field{Name: name, Value: normalizeNewlines(el.AttrOr("value", "on"))})
				return
			}
			fields = append(fields, Field{Name: name, Value: normalizeNewlines(el.AttrOr("value", ""))})

		case "textarea":
			fields = append(fields, Field{Name: name, Value: normalizeNewlines(el.Text())})

		case "select":
			for _, value := range selectedOptions(el) {
				fields = append(fields, Field{Name: name, Value: normalizeNewlines(value)})
			}
		}
	})

	return fields
}

func isDisabled(el *goquery.Selection) bool {
	if _, ok := el.Attr("disabled"); ok {
		return true
	}
	return el.Closest("fieldset[disabled]").Length() > 0
}

// selectedOptions mirrors a select's submitted values: every selected
// option of a multiple select, or the selected (else first) option of a
// single one.
func selectedOptions(sel *goquery.Selection) []string {
	_, multiple := sel.Attr("multiple")

	var values []string
	var first *goquery.Selection
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		if _, disabled := opt.Attr("disabled"); disabled {
			return
		}
		if first == nil {
			first = opt
		}
		if _, selected := opt.Attr("selected"); selected {
			values = append(values, optionValue(opt))
		}
	})

	if multiple {
		return values
	}
	if len(values) > 0 {
		// the last selected option wins in a single select
		return values[len(values)-1:]
	}
	if first != nil {
		return []string{optionValue(first)}
	}
	return nil
}

func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.Join(strings.Fields(opt.Text()), " ")
}

func normalizeNewlines(s string) string {
	return crlf.Replace(s)
}
