package pdfextract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether data starts with the PDF file header.
// MIME types from clients are self-declared, so uploads are sniffed too.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// ExtractText extracts plain text from the PDF bytes.
// Returns empty string and nil error if the PDF has no extractable text.
// The upstream reader panics on some malformed cross-reference tables, and
// upload bytes are untrusted, so the panic is converted to an error here.
func ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf failed: %v", r)
		}
	}()
	if len(data) == 0 {
		return "", nil
	}
	readerAt := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
