package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageOf(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4},
		{"one through five", []int{1, 2, 3, 4, 5}, 3},
		{"rounds down", []int{1, 1, 2}, 1.33},
		{"rounds up", []int{1, 2, 2}, 1.67},
		{"half rounds away from zero", []int{1, 1, 1, 1, 1, 1, 1, 2}, 1.13},
		{"exact half", []int{4, 5}, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageOf(tt.values))
		})
	}
}

func TestRating_AddValue(t *testing.T) {
	r := NewRating("1", "Dune")
	assert.Equal(t, []int{}, r.Values)

	r.AddValue(5)
	r.AddValue(4)
	r.AddValue(4)

	assert.Equal(t, []int{5, 4, 4}, r.Values)
	assert.Equal(t, 4.33, r.Average)
}
