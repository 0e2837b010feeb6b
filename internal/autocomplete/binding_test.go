package autocomplete_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/errors"
)

func TestDefaultBindings(t *testing.T) {
	bindings := autocomplete.DefaultBindings()
	require.Len(t, bindings, 3)

	for _, b := range bindings {
		require.NoError(t, b.Validate(), b.Name)
	}

	item := bindings[0]
	assert.Equal(t, autocomplete.BindingItem, item.Name)
	assert.Equal(t, "/api/item/", item.Endpoint)

	q := item.Query("stim")
	assert.Equal(t, "stim", q.Get("name__icontains"))
	assert.Equal(t, "id,name,type", q.Get("fields"))
	assert.Equal(t, "name", q.Get("order_by"))
	assert.Equal(t, "1", q.Get("display"))

	effect := bindings[1]
	assert.False(t, effect.Query("ra").Has("display"))
	assert.Nil(t, effect.Transform.AnnotationField)
}

func TestBinding_Triggers(t *testing.T) {
	b := autocomplete.DefaultBindings()[0]

	assert.False(t, b.Triggers(""))
	assert.False(t, b.Triggers("s"))
	assert.True(t, b.Triggers("st"))
	assert.False(t, b.Triggers("é"))
	assert.True(t, b.Triggers("éé"))
}

func TestBinding_Validate(t *testing.T) {
	b := autocomplete.Binding{MinLength: -1}

	err := b.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Endpoint")
	assert.Contains(t, fields, "Fields")
	assert.Contains(t, fields, "MinLength")
	assert.Contains(t, fields, "Transform.LabelField")
}

func TestBinding_Options(t *testing.T) {
	b := autocomplete.DefaultBindings()[0]
	options := b.Options(&autocomplete.Envelope{Results: []autocomplete.Record{
		{"id": 5, "name": "Stimpak", "type_display": "Consumable"},
	}})

	assert.Equal(t, []autocomplete.Option{{Value: "Stimpak (Consumable)", ID: 5}}, options)
}
