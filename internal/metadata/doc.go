// Package metadata extracts EXIF metadata from image files for the inspect
// command. Extraction is delegated to dsoprea/go-exif; images without an
// EXIF block are simply reported as having no tags.
package metadata
