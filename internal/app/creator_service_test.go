package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvboost/internal/workflow"
)

type fakeCreatorGateway struct {
	docs   []workflow.CVDocument
	result *workflow.FinalizeResult
	err    error
}

func (f *fakeCreatorGateway) GenerateCV(ctx context.Context, userID uint, doc workflow.CVDocument) (*workflow.FinalizeResult, error) {
	f.docs = append(f.docs, doc)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerateRequiresName(t *testing.T) {
	svc := NewCreatorService(&fakeCreatorGateway{})

	_, err := svc.Generate(context.Background(), 1, workflow.CVDocument{FullName: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Generate(context.Background(), 0, workflow.CVDocument{FullName: "Alice"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateNormalizesPhoto(t *testing.T) {
	gateway := &fakeCreatorGateway{result: &workflow.FinalizeResult{DownloadURL: "https://files.example/cv.pdf"}}
	svc := NewCreatorService(gateway)

	result, err := svc.Generate(context.Background(), 1, workflow.CVDocument{
		FullName:    "Alice",
		PhotoBase64: pngDataURL(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example/cv.pdf", result.DownloadURL)

	require.Len(t, gateway.docs, 1)
	assert.Contains(t, gateway.docs[0].PhotoBase64, "data:image/jpeg;base64,")
}

func TestGenerateDropsUndecodablePhoto(t *testing.T) {
	gateway := &fakeCreatorGateway{result: &workflow.FinalizeResult{DownloadURL: "https://files.example/cv.pdf"}}
	svc := NewCreatorService(gateway)

	_, err := svc.Generate(context.Background(), 1, workflow.CVDocument{
		FullName:    "Alice",
		PhotoBase64: "data:image/png;base64,not-valid-base64!!!",
	})
	require.NoError(t, err)

	require.Len(t, gateway.docs, 1)
	assert.Empty(t, gateway.docs[0].PhotoBase64, "a broken photo never blocks generation")
}

func TestGenerateUpstreamFailure(t *testing.T) {
	svc := NewCreatorService(&fakeCreatorGateway{result: &workflow.FinalizeResult{}})

	_, err := svc.Generate(context.Background(), 1, workflow.CVDocument{FullName: "Alice"})
	assert.ErrorIs(t, err, ErrGenerateFailed)
}
