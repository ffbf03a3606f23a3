package generation

import (
	"encoding/json"
	"strings"
)

// upload policy for the source photo
const maxImageBytes = 10 << 20 // 10 MiB

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// parsed form of the location payload; pointers distinguish absent from zero
type locationPayload struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address"`
	Name    string   `json:"name"`
}

// ParseLocation decodes and validates the location JSON from the client.
// Latitude must be in [-90, 90], longitude in [-180, 180], and the address
// non-empty. All failures are *ValidationError.
func ParseLocation(raw string) (*Location, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Field: "location", Reason: "missing"}
	}

	var payload locationPayload

	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ValidationError{Field: "location", Reason: "not valid JSON"}
	}

	if payload.Lat == nil {
		return nil, &ValidationError{Field: "location.lat", Reason: "missing"}
	}

	if payload.Lng == nil {
		return nil, &ValidationError{Field: "location.lng", Reason: "missing"}
	}

	if *payload.Lat < -90 || *payload.Lat > 90 {
		return nil, &ValidationError{Field: "location.lat", Reason: "must be between -90 and 90"}
	}

	if *payload.Lng < -180 || *payload.Lng > 180 {
		return nil, &ValidationError{Field: "location.lng", Reason: "must be between -180 and 180"}
	}

	if strings.TrimSpace(payload.Address) == "" {
		return nil, &ValidationError{Field: "location.address", Reason: "missing"}
	}

	return &Location{
		Lat:     *payload.Lat,
		Lng:     *payload.Lng,
		Address: payload.Address,
		Name:    payload.Name,
	}, nil
}

// ValidateImage checks presence, size and MIME type of the uploaded photo
func ValidateImage(data []byte, mimeType string) error {
	if len(data) == 0 {
		return &ValidationError{Field: "image", Reason: "missing"}
	}

	if len(data) > maxImageBytes {
		return &ValidationError{Field: "image", Reason: "larger than 10 MiB"}
	}

	if !allowedMIMETypes[mimeType] {
		return &ValidationError{Field: "image", Reason: "unsupported type, use JPEG, PNG or WebP"}
	}

	return nil
}
