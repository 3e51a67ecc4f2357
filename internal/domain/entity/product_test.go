package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"formatted rupees", "₹32,999", 32999},
		{"plain digits", "1299", 1299},
		{"grouped thousands", "1,29,900", 129900},
		{"currency suffix", "499 INR", 499},
		{"no digits", "Free", 0},
		{"empty string", "", 0},
		{"zero", "₹0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.raw))
		})
	}
}
