package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CHF", true},
		{"EUR", true},
		{"usd", false},
		{"CHF ", false},
		{" CHF", false},
		{"CH", false},
		{"CHFX", false},
		{"", false},
		{"123", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidFormat(tt.code))
		})
	}
}
