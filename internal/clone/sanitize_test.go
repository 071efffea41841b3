package clone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "html fence",
			in:   "```html\n<!DOCTYPE html>\n<html></html>\n```",
			want: "<!DOCTYPE html>\n<html></html>",
		},
		{
			name: "bare fence",
			in:   "```\n<!DOCTYPE html>\n<html></html>\n```",
			want: "<!DOCTYPE html>\n<html></html>",
		},
		{
			name: "no fence",
			in:   "<!DOCTYPE html>\n<html></html>",
			want: "<!DOCTYPE html>\n<html></html>",
		},
		{
			name: "missing doctype gets prepended",
			in:   "<html><body></body></html>",
			want: "<!DOCTYPE html>\n<html><body></body></html>",
		},
		{
			name: "fenced without doctype",
			in:   "```html\n<html></html>\n```",
			want: "<!DOCTYPE html>\n<html></html>",
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```html\n<!DOCTYPE html>\n<p>hi</p>\n```\n  ",
			want: "<!DOCTYPE html>\n<p>hi</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "```")
		})
	}
}

func TestSanitize_DoctypePrependedExactlyOnce(t *testing.T) {
	got := Sanitize("<html></html>")
	assert.Equal(t, 1, strings.Count(got, "<!DOCTYPE html>"))

	// Already-declared documents are left alone.
	got = Sanitize("<!DOCTYPE html>\n<html></html>")
	assert.Equal(t, 1, strings.Count(got, "<!DOCTYPE html>"))
}

func TestSanitize_NeverFails(t *testing.T) {
	assert.Equal(t, "<!DOCTYPE html>\n", Sanitize(""))
	assert.True(t, strings.HasPrefix(Sanitize("garbage output"), "<!DOCTYPE html>"))
}
