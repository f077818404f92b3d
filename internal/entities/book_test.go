package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidGenre(t *testing.T) {
	for _, g := range Genres {
		assert.True(t, IsValidGenre(g), g)
	}
	assert.False(t, IsValidGenre("fiction"))
	assert.False(t, IsValidGenre("Poetry"))
	assert.False(t, IsValidGenre(""))
}

func TestNormalizePublishedDate(t *testing.T) {
	tests := []struct {
		in   Text
		want Text
	}{
		{SomeText("1949"), SomeText("1949")},
		{SomeText("1949-06-08"), SomeText("1949-06-08")},
		{SomeText("1949-06"), MissingText()},
		{SomeText("June 1949"), MissingText()},
		{SomeText(""), MissingText()},
		{MissingText(), MissingText()},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePublishedDate(tt.in))
		})
	}
}
