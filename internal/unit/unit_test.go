package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"resma", "RESMA"},
		{"  Resma  ", "RESMA"},
		{"un", "UNIDADE"},
		{"UND", "UNIDADE"},
		{"unidade(s)", "UNIDADE"},
		{"kg", "QUILOGRAMA"},
		{"quilo", "QUILOGRAMA"},
		{"m2", "METRO QUADRADO"},
		{"m³", "METRO CÚBICO"},
		{"galao", "GALÃO"},   // accent-insensitive
		{"DUZIA", "DÚZIA"},
		{"metro   linear", "METRO LINEAR"},
		{"", ""},
		{"parsec", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}
