package service

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestCleanForIndex(t *testing.T) {
	s := &searchService{sanitizer: bluemonday.StrictPolicy()}

	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<p>first</p><p>second</p>", "first second"},
		{"line<br>break", "line break"},
		{"<script>alert(1)</script>safe", "safe"},
		{"&amp; &lt;tags&gt;", "& <tags>"},
		{"  collapse\n\nwhitespace\t ", "collapse whitespace"},
		{"<div>a</div><div>b</div>", "a b"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, s.cleanForIndex(tc.in), "cleanForIndex(%q)", tc.in)
	}
}
