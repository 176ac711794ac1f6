package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsString(t *testing.T) {
	p := Params{"name": "Ana", "age": float64(30), "empty": nil}

	assert.Equal(t, "Ana", p.String("name"))
	assert.Equal(t, "30", p.String("age"))
	assert.Equal(t, "", p.String("empty"))
	assert.Equal(t, "", p.String("missing"))
}

func TestParamsFloat(t *testing.T) {
	p := Params{"value": float64(120), "text": "85", "word": "bien"}

	v, ok := p.Float("value")
	assert.True(t, ok)
	assert.Equal(t, float64(120), v)

	v, ok = p.Float("text")
	assert.True(t, ok)
	assert.Equal(t, float64(85), v)

	_, ok = p.Float("word")
	assert.False(t, ok)
	_, ok = p.Float("missing")
	assert.False(t, ok)
}

func TestParamsStringList(t *testing.T) {
	p := Params{
		"foods":  []interface{}{"pan", "arroz"},
		"single": "pan",
		"empty":  []interface{}{},
		"blank":  "",
	}

	assert.Equal(t, []string{"pan", "arroz"}, p.StringList("foods"))
	assert.Equal(t, []string{"pan"}, p.StringList("single"))
	assert.Nil(t, p.StringList("empty"))
	assert.Nil(t, p.StringList("blank"))
	assert.Nil(t, p.StringList("missing"))
}
