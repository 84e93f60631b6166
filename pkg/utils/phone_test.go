package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dashes", input: "010-1234-5678", want: "01012345678"},
		{name: "spaces and parens", input: "(010) 1234 5678", want: "01012345678"},
		{name: "international prefix", input: "+82 10-1234-5678", want: "821012345678"},
		{name: "already clean", input: "01012345678", want: "01012345678"},
		{name: "empty", input: "", want: ""},
	}

	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			assert.Equal(t, tC.want, NormalizePhone(tC.input))
		})
	}
}
