package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_ZeroValueIsAbsent(t *testing.T) {
	var o Optional[string]

	v, ok := o.Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.False(t, o.IsPresent())
	assert.Equal(t, "fallback", o.OrElse("fallback"))
}

func TestOptional_Some(t *testing.T) {
	o := Some("Avatar")

	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "Avatar", v)
	assert.Equal(t, "Avatar", o.OrElse("fallback"))
}

func TestOptional_PresentEmptyStringIsNotAbsent(t *testing.T) {
	o := Some("")
	assert.True(t, o.IsPresent())
}

func TestOptional_JSON(t *testing.T) {
	type payload struct {
		Title Optional[string] `json:"title"`
		Year  Optional[int]    `json:"year"`
	}

	data, err := json.Marshal(payload{Title: None[string](), Year: Some(2005)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":null,"year":2005}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Up","year":null}`), &decoded))
	assert.Equal(t, Some("Up"), decoded.Title)
	assert.False(t, decoded.Year.IsPresent())
}
