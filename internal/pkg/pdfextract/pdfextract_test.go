package pdfextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\nrest of file")))
	assert.False(t, IsPDF([]byte("PK\x03\x04 zip archive")))
	assert.False(t, IsPDF(nil))
	assert.False(t, IsPDF([]byte("%PD")))
}

func TestExtractTextEmptyInput(t *testing.T) {
	text, err := ExtractText(nil)
	assert.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractTextMalformedPDF(t *testing.T) {
	// has the magic bytes but no valid structure; must error, not panic
	_, err := ExtractText([]byte("%PDF-1.4\ngarbage body with no xref"))
	assert.Error(t, err)
}
