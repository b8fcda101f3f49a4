package photo

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeResult(t *testing.T, dataURL string) image.Image {
	t.Helper()
	payload := strings.TrimPrefix(dataURL, "data:image/jpeg;base64,")
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestNormalizeDataURLDownscales(t *testing.T) {
	out, err := NormalizeDataURL(encodePNG(t, 2048, 1024))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	img := decodeResult(t, out)
	assert.Equal(t, MaxEdge, img.Bounds().Dx())
	assert.Equal(t, MaxEdge/2, img.Bounds().Dy())
}

func TestNormalizeDataURLKeepsSmallImages(t *testing.T) {
	out, err := NormalizeDataURL(encodePNG(t, 100, 80))
	require.NoError(t, err)

	img := decodeResult(t, out)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestNormalizeDataURLRejectsGarbage(t *testing.T) {
	_, err := NormalizeDataURL("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)

	_, err = NormalizeDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")))
	assert.Error(t, err)

	_, err = NormalizeDataURL("data:image/png")
	assert.Error(t, err)
}
