package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const attestation = "As the attending physician, I have personally reviewed the images, interpreted and/or supervised the study or procedure, and agree with the wording of the above report."

func TestTextNormalizer_Normalize(t *testing.T) {
	n := NewTextNormalizer([]string{attestation}, true)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "  \n\t\n \r\n",
			expected: "",
		},
		{
			name:     "trims lines and unifies line endings",
			input:    "  Impression:\r\n  No acute findings.  \rStable.",
			expected: "Impression:\nNo acute findings.\nStable.",
		},
		{
			name:     "collapses blank line runs into one paragraph break",
			input:    "\n\nFindings one.\n\n\n\nFindings two.\n\n",
			expected: "Findings one.\n\nFindings two.",
		},
		{
			name:     "removes boilerplate line",
			input:    "No pneumothorax.\n\n   " + attestation + "   \n",
			expected: "No pneumothorax.",
		},
		{
			name:     "boilerplate between paragraphs keeps one break",
			input:    "A.\n\n" + attestation + "\n\nB.",
			expected: "A.\n\nB.",
		},
		{
			name:     "boilerplate inside a paragraph joins neighbours",
			input:    "A.\n" + attestation + "\nB.",
			expected: "A.\nB.",
		},
		{
			name:     "partial boilerplate match is kept",
			input:    "As the attending physician, I agree.",
			expected: "As the attending physician, I agree.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestTextNormalizer_UnicodeComposition(t *testing.T) {
	decomposed := "Cafe\u0301 sign."
	composed := "Caf\u00e9 sign."

	assert.Equal(t, composed, NewTextNormalizer(nil, true).Normalize(decomposed))
	assert.Equal(t, decomposed, NewTextNormalizer(nil, false).Normalize(decomposed))
}

func TestTextNormalizer_IsBoilerplate(t *testing.T) {
	n := NewTextNormalizer([]string{"  Signed.  ", "", "   "}, false)

	assert.True(t, n.IsBoilerplate("Signed."))
	assert.True(t, n.IsBoilerplate("\tSigned.  "))
	assert.False(t, n.IsBoilerplate(""))
	assert.False(t, n.IsBoilerplate("Signed"))
}

func TestUnifyLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", UnifyLineEndings("a\r\nb\rc\n"))
	assert.Equal(t, "plain", UnifyLineEndings("plain"))
}
