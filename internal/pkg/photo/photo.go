package photo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

// MaxEdge is the longest side a portrait photo keeps before dispatch. CV
// renderers only need thumbnail-scale portraits; shipping multi-megapixel
// camera output to the workflow layer wastes the webhook's payload budget.
const MaxEdge = 512

const jpegQuality = 85

// NormalizeDataURL decodes a base64 image data URL (png or jpeg), downscales
// it so its longest edge is at most MaxEdge, and re-encodes it as a jpeg data
// URL. Images already within bounds are returned re-encoded but unscaled.
func NormalizeDataURL(dataURL string) (string, error) {
	raw, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode photo failed: %w", err)
	}

	scaled := downscale(img)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode photo failed: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

func decodeDataURL(dataURL string) ([]byte, error) {
	payload := dataURL
	if strings.HasPrefix(dataURL, "data:") {
		idx := strings.Index(dataURL, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data url")
		}
		payload = dataURL[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode photo base64 failed: %w", err)
	}
	return raw, nil
}

func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= MaxEdge && h <= MaxEdge {
		return img
	}

	outW, outH := w, h
	if w >= h {
		outW = MaxEdge
		outH = h * MaxEdge / w
	} else {
		outH = MaxEdge
		outW = w * MaxEdge / h
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
