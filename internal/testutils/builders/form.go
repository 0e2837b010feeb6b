// Package builders provides test data builders for creating test fixtures
package builders

import (
	"fmt"
	"html"
	"strings"
)

// FormBuilder provides a fluent interface for building HTML forms
type FormBuilder struct {
	id       string
	controls []string
}

// SelectOption is one option of a select control
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// NewFormBuilder creates a builder for a form with the given id
func NewFormBuilder(id string) *FormBuilder {
	return &FormBuilder{id: id}
}

// WithInput adds an input of the given type
func (b *FormBuilder) WithInput(inputType, name, value string) *FormBuilder {
	b.controls = append(b.controls, fmt.Sprintf(`<input type="%s" name="%s" value="%s">`,
		html.EscapeString(inputType), html.EscapeString(name), html.EscapeString(value)))
	return b
}

// WithHidden adds a hidden input
func (b *FormBuilder) WithHidden(name, value string) *FormBuilder {
	return b.WithInput("hidden", name, value)
}

// WithCheckbox adds a checkbox, checked or not
func (b *FormBuilder) WithCheckbox(name, value string, checked bool) *FormBuilder {
	attr := ""
	if checked {
		attr = " checked"
	}
	b.controls = append(b.controls, fmt.Sprintf(`<input type="checkbox" name="%s" value="%s"%s>`,
		html.EscapeString(name), html.EscapeString(value), attr))
	return b
}

// WithSelect adds a select control
func (b *FormBuilder) WithSelect(name string, multiple bool, options ...SelectOption) *FormBuilder {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<select name="%s"`, html.EscapeString(name))
	if multiple {
		sb.WriteString(" multiple")
	}
	sb.WriteString(">")
	for _, o := range options {
		fmt.Fprintf(&sb, `<option value="%s"`, html.EscapeString(o.Value))
		if o.Selected {
			sb.WriteString(" selected")
		}
		fmt.Fprintf(&sb, ">%s</option>", html.EscapeString(o.Label))
	}
	sb.WriteString("</select>")
	b.controls = append(b.controls, sb.String())
	return b
}

// WithTextarea adds a textarea
func (b *FormBuilder) WithTextarea(name, text string) *FormBuilder {
	b.controls = append(b.controls, fmt.Sprintf(`<textarea name="%s">%s</textarea>`,
		html.EscapeString(name), html.EscapeString(text)))
	return b
}

// WithSubmit adds a submit button
func (b *FormBuilder) WithSubmit(label string) *FormBuilder {
	return b.WithInput("submit", "", label)
}

// Build returns the page holding the form
func (b *FormBuilder) Build() string {
	return fmt.Sprintf("<html><body><form id=\"%s\">\n%s\n</form></body></html>",
		html.EscapeString(b.id), strings.Join(b.controls, "\n"))
}
