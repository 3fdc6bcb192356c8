package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.24 Released!", "go-1-24-released"},
		{"  spaced   out  ", "spaced-out"},
		{"already-sluggy", "already-sluggy"},
		{"UPPER case", "upper-case"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "Make(%q)", tc.in)
	}
}
