package metadata

import (
	"errors"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
)

// Tag is one flat EXIF entry.
type Tag struct {
	// Name is the EXIF tag name, e.g. "Make" or "Software".
	Name string `json:"name"`

	// Value is the formatted tag value.
	Value string `json:"value"`
}

// notableTags are the tags the inspect command highlights. Everything else
// still appears in the full dump.
var notableTags = map[string]bool{
	"Make":               true,
	"Model":              true,
	"Software":           true,
	"ProcessingSoftware": true,
	"DateTimeOriginal":   true,
	"Artist":             true,
	"Copyright":          true,
}

// Extract reads the flat EXIF tags from the image file at path.
// A file without an EXIF block yields an empty slice and no error; only
// actual read or parse failures are errors.
func Extract(path string) ([]Tag, error) {
	rawExif, err := exif.SearchFileAndExtractExif(path)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read EXIF data: %w", err)
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EXIF data: %w", err)
	}

	tags := make([]Tag, 0, len(entries))
	for _, entry := range entries {
		if entry.TagName == "" || entry.Formatted == "" {
			continue
		}
		tags = append(tags, Tag{Name: entry.TagName, Value: entry.Formatted})
	}
	return tags, nil
}

// Notable filters tags down to the ones worth surfacing in a summary:
// camera identity, software, capture time, and authorship. GPS tags are
// always included because location data in shared images is usually
// unintended.
func Notable(tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if notableTags[t.Name] || isGPSTag(t.Name) {
			out = append(out, t)
		}
	}
	return out
}

func isGPSTag(name string) bool {
	return len(name) >= 3 && name[:3] == "GPS"
}
