package source

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
)

// ImageAnalysis describes clickable regions detected in a screenshot.
// Detection is not implemented yet, so every field stays zero.
type ImageAnalysis struct {
	TotalElementsDetected int     `json:"total_elements_detected"`
	ClickableElements     int     `json:"clickable_elements"`
	NonClickableElements  int     `json:"non_clickable_elements"`
	ClickablePercentage   float64 `json:"clickable_percentage"`
}

// AnalyzeImage returns the clickable-region analysis of img.
// TODO: plug in a vision backend; until then this reports zero regions.
func AnalyzeImage(img []byte) ImageAnalysis {
	return newImageAnalysis(0, 0)
}

func newImageAnalysis(total, clickable int) ImageAnalysis {
	a := ImageAnalysis{
		TotalElementsDetected: total,
		ClickableElements:     clickable,
		NonClickableElements:  total - clickable,
	}
	if total > 0 {
		a.ClickablePercentage = float64(clickable) * 100 / float64(total)
	}
	return a
}

// Image signatures: JPEG, PNG, GIF, RIFF (WebP).
var imageMagic = [][]byte{
	{0xFF, 0xD8, 0xFF},
	{0x89, 0x50, 0x4E, 0x47},
	{0x47, 0x49, 0x46, 0x38},
	{0x52, 0x49, 0x46, 0x46},
}

// IsImage reports whether data starts with a known image signature.
func IsImage(data []byte) bool {
	for _, magic := range imageMagic {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}
	return false
}

// DecodeImage decodes a base64 image, with or without a data: URL prefix,
// and checks its signature.
func DecodeImage(encoded string) ([]byte, error) {
	var data []byte
	var err error
	if IsDataURL(encoded) {
		data, err = DecodeDataURL(encoded)
	} else {
		data, err = decodeBase64(encoded)
	}
	if err != nil {
		return nil, core.ErrInvalidImage.WithCause(err)
	}
	if !IsImage(data) {
		return nil, core.ErrInvalidImage
	}
	return data, nil
}

// IsDataURL reports whether s is a data: URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL returns the payload of a data: URL. Both base64 and plain
// (percent-free) payloads are accepted.
func DecodeDataURL(s string) ([]byte, error) {
	if !IsDataURL(s) {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URL has no payload")
	}
	if strings.HasSuffix(meta, ";base64") {
		return decodeBase64(payload)
	}
	return []byte(payload), nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}
