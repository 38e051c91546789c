package xmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "all_five",
			in:   `<a href="x">&'</a>`,
			want: "&lt;a href=&quot;x&quot;&gt;&amp;&apos;&lt;/a&gt;",
		},
		{
			name: "ampersand_first",
			in:   "&lt;",
			want: "&amp;lt;",
		},
		{
			name: "plain_text_untouched",
			in:   "Pris: 10 kr",
			want: "Pris: 10 kr",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestParseError(t *testing.T) {
	inner := assert.AnError
	err := &ParseError{Path: "doc.xml", Offset: 42, Err: inner}

	assert.Contains(t, err.Error(), "doc.xml")
	assert.ErrorIs(t, err, inner)
}
