package formdata_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
)

const burstForm = `<html><body>
<form id="other"><input name="ignored" value="x"></form>
<form id="burst-form">
  <input type="hidden" name="character" value="12">
  <input type="hidden" name="type" value="burst">
  <input type="checkbox" name="targets" value="3" checked>
  <input type="checkbox" name="targets" value="4">
  <input type="checkbox" name="targets" value="5" checked>
  <input type="text" name="hit_modifier" value="2" disabled>
  <input type="radio" name="mode" value="aimed">
  <input type="radio" name="mode" value="snap" checked>
  <input type="checkbox" name="force">
  <select name="weapon">
    <option value="1">Laser rifle</option>
    <option value="2" selected>Minigun</option>
  </select>
  <select name="ranges" multiple>
    <option selected>  short   range </option>
    <option value="long" selected>Long</option>
    <option value="far">Far</option>
  </select>
  <select name="body_part"><option value="torso">Torso</option><option value="head">Head</option></select>
  <textarea name="comment">line one
line two</textarea>
  <fieldset disabled><input name="locked" value="1"></fieldset>
  <input type="text" value="nameless">
  <input type="submit" name="go" value="Simulate">
  <input type="file" name="upload">
  <input name="plain">
</form>
</body></html>`

func TestFieldsFromHTML(t *testing.T) {
	fields, err := formdata.FieldsFromHTML(strings.NewReader(burstForm), "#burst-form")
	require.NoError(t, err)

	want := []formdata.Field{
		{Name: "character", Value: "12"},
		{Name: "type", Value: "burst"},
		{Name: "targets", Value: "3"},
		{Name: "targets", Value: "5"},
		{Name: "mode", Value: "snap"},
		{Name: "weapon", Value: "2"},
		{Name: "ranges", Value: "short range"},
		{Name: "ranges", Value: "long"},
		{Name: "body_part", Value: "torso"},
		{Name: "comment", Value: "line one\r\nline two"},
		{Name: "plain", Value: ""},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("FieldsFromHTML mismatch (-want +got):\n%s", diff)
	}

	m := formdata.Collect(fields)
	targets, _ := m.Get("targets")
	seq, ok := targets.Sequence()
	assert.True(t, ok)
	assert.Equal(t, []string{"3", "5"}, seq)
}

func TestFieldsFromHTML_CheckedCheckboxWithoutValue(t *testing.T) {
	html := `<form><input type="checkbox" name="force" checked></form>`

	fields, err := formdata.FieldsFromHTML(strings.NewReader(html), "form")
	require.NoError(t, err)
	assert.Equal(t, []formdata.Field{{Name: "force", Value: "on"}}, fields)
}

func TestFieldsFromHTML_NoMatch(t *testing.T) {
	_, err := formdata.FieldsFromHTML(strings.NewReader(burstForm), "#fight-form")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
