package blueprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Plain", "Beliefs", "Beliefs", false},
		{"Trimmed", "  Beliefs \n", "Beliefs", false},
		{"ANSI Escape", "\x1b[31mRed\x1b[0m", "[31mRed[0m", false},
		{"Embedded Newline", "Q1\nAwareness", "Q1Awareness", false},
		{"Unicode Kept", "Café ☕", "Café ☕", false},
		{"Decomposed Accent", "Cafe\u0301", "Caf\u00e9", false},
		{"Invalid UTF-8", "bad\xff", "", true},
		{"Exact Limit", strings.Repeat("a", MaxNameLength), strings.Repeat("a", MaxNameLength), false},
		{"Over Limit", strings.Repeat("a", MaxNameLength+1), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizeName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_SanitizesNames(t *testing.T) {
	bp, err := Parse([]byte("document:\n  root:\n    title: \"Root\\u0007\"\n    children: [\" Leaf \"]\ntasks:\n  space: {name: \"Ops\\t\"}\n  lists: [\"In\\u001bbox\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, "Root", bp.Document.Root.Title)
	assert.Equal(t, "Leaf", bp.Document.Root.Children[0].Title)
	assert.Equal(t, "Ops", bp.Tasks.Space.Name)
	assert.Equal(t, "Inbox", bp.Tasks.Lists[0].Name)
}

func TestParse_RejectsOversizedDocument(t *testing.T) {
	_, err := Parse(make([]byte, MaxDocumentSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestParse_WhitespaceOnlyTitleIsInvalid(t *testing.T) {
	_, err := Parse([]byte("document:\n  root:\n    title: \"Root\"\n    children: [\"   \"]\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}
