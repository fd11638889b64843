package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pixeltally/pixeltally/internal/config"
	"github.com/pixeltally/pixeltally/internal/imgio"
	"github.com/pixeltally/pixeltally/internal/metadata"
	"github.com/pixeltally/pixeltally/internal/scan"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "Show image properties and notable EXIF metadata",
		Long: `Inspect prints the dimensions, format, bit depth, and alpha presence of
each discovered image, followed by notable EXIF tags (camera, software,
timestamps, GPS) when the file carries them.

A file that cannot be read or decoded is skipped with a warning, same as
during counting.

Examples:
  # Inspect a single file
  pixeltally inspect photo.jpg

  # Inspect a folder recursively, including all EXIF tags
  pixeltally inspect -r --all /path/to/dir`,
		Args: cobra.ArbitraryArgs,
		RunE: runInspectCmd,
	}

	cmd.Flags().StringSliceP("ext", "e", config.DefaultExtensions(),
		"Allowed file extensions for directory expansion (no dots)")
	cmd.Flags().BoolP("recursive", "r", false,
		"Recurse into subfolders for directories")
	cmd.Flags().Bool("all", false,
		"Print every EXIF tag instead of only the notable ones")

	return cmd
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return config.ErrNoPaths
	}

	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return err
	}
	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return err
	}
	allTags, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	files, missing := scan.Discover(args, exts, recursive)
	for _, m := range missing {
		fmt.Fprintf(stderr, "Warning: not found: %s\n", m)
	}
	if len(files) == 0 {
		return scan.ErrNoFiles
	}

	for i, path := range files {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := inspectFile(stdout, stderr, path, allTags); err != nil {
			fmt.Fprintf(stderr, "Warning: skipping %s: %v\n", path, err)
		}
	}
	return nil
}

// inspectFile prints the properties and metadata of a single image.
// A file that cannot be decoded is an error; a decodable file with broken
// EXIF data keeps its properties block and only warns about the metadata.
func inspectFile(w, errw io.Writer, path string, allTags bool) error {
	info, err := imgio.Stat(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  dimensions: %dx%d\n", info.Width, info.Height)
	fmt.Fprintf(w, "  format:     %s\n", info.Format)
	fmt.Fprintf(w, "  depth:      %d-bit\n", info.BitDepth)
	fmt.Fprintf(w, "  alpha:      %t\n", info.HasAlpha)
	fmt.Fprintf(w, "  size:       %d bytes\n", info.FileSizeBytes)

	tags, err := metadata.Extract(path)
	if err != nil {
		fmt.Fprintf(errw, "Warning: unreadable EXIF data in %s: %v\n", path, err)
		return nil
	}
	if !allTags {
		tags = metadata.Notable(tags)
	}
	if len(tags) == 0 {
		return nil
	}

	fmt.Fprintf(w, "  exif:\n")
	for _, tag := range tags {
		fmt.Fprintf(w, "    %s: %s\n", tag.Name, tag.Value)
	}
	return nil
}
