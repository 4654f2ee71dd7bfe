package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAlergias(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"single", "penicilina", []string{"penicilina"}},
		{"multiple with spaces", "penicilina, latex , ibuprofeno", []string{"penicilina", "latex", "ibuprofeno"}},
		{"trailing comma", "penicilina,", []string{"penicilina"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreatePatientRequest{Alergias: tt.input}
			assert.Equal(t, tt.want, req.ParseAlergias())
		})
	}
}
