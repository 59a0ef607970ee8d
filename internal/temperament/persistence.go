package temperament

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the on-disk shape of a custom-tuning file: name is required,
// description optional, ratios must contain exactly 12 positive finite
// numbers. File I/O itself is external to this package.
type Record struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Ratios      [12]float64 `json:"ratios"`
}

// UnmarshalJSON decodes ratios into a slice first so a wrong-length array
// is rejected outright, rather than silently truncated or zero-padded the
// way decoding straight into a [12]float64 would.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Ratios      []float64 `json:"ratios"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Ratios) != 12 {
		return fmt.Errorf("temperament: ratios must contain exactly 12 entries, got %d", len(raw.Ratios))
	}
	r.Name = raw.Name
	r.Description = raw.Description
	copy(r.Ratios[:], raw.Ratios)
	return nil
}

// ValidateRecord checks the custom-tuning schema: non-empty name, and
// ratios that are all positive and finite. A wrong-length ratios array
// from JSON is already rejected by Record's UnmarshalJSON before this
// ever runs.
func ValidateRecord(rec Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("temperament: record name must not be empty")
	}
	t := Temperament{Name: rec.Name, Description: rec.Description, Ratios: rec.Ratios}
	return t.Validate()
}

// Slug generates a filesystem-safe slug from a temperament name: lowercase
// alphanumerics, with every run of non-alphanumeric characters collapsed
// to a single underscore, trailing underscores trimmed, falling back to
// "custom_tuning" if nothing alphanumeric survives.
func Slug(name string) string {
	var b strings.Builder
	lastWasUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasUnderscore = false
		default:
			if !lastWasUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastWasUnderscore = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "_")
	if slug == "" {
		return "custom_tuning"
	}
	return slug
}
