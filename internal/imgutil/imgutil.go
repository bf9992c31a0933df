// Package imgutil handles the source-image round trip: sniffing media types,
// base64 encoding for the wire, and reconstructing the original file bytes
// from a stored asset so the refine workflow needs no re-upload.
package imgutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DetectMediaType sniffs the media type from the leading bytes.
func DetectMediaType(data []byte) string {
	return http.DetectContentType(data)
}

// Encode returns the base64 payload sent inline with a model request.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode reverses Encode, reconstructing the original file bytes.
func Decode(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode source payload: %w", err)
	}
	return data, nil
}

// Dimensions reports the pixel size of a PNG, JPEG, or WebP image without
// decoding the full bitmap.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// DataURL renders image bytes as a browser-resolvable data URL.
func DataURL(data []byte, mediaType string) string {
	return "data:" + mediaType + ";base64," + Encode(data)
}
