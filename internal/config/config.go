package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values, chosen to match the long-standing behavior
// of the tool so existing invocations keep producing identical numbers.
const (
	// DefaultThreshold is the 8-bit whiteness threshold. 250 rather than 255
	// because scanned documents and JPEG-compressed photos rarely contain
	// mathematically pure white.
	DefaultThreshold = 250

	// MaxThreshold is the upper bound of the valid threshold range. The
	// threshold lives on the 8-bit scale regardless of image depth; 16-bit
	// images scale it internally.
	MaxThreshold = 255

	// DefaultJobs is the number of decode workers. One worker means strictly
	// sequential processing, which is the documented default behavior.
	DefaultJobs = 1

	// DefaultHistoryLimit is how many stored runs the history command lists.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "pixeltally"
)

// DefaultExtensions is the directory-expansion filter: the common raster
// formats the registered decoders can actually read. Files named explicitly
// on the command line bypass this filter.
func DefaultExtensions() []string {
	return []string{"jpg", "jpeg", "png", "bmp", "tif", "tiff", "webp"}
}

// Config holds all options for a counting run.
// It is populated from CLI flags (plus the optional YAML defaults file) and
// passed through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested structs for
// simplicity. The number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// Paths is the positional list of files and/or directories to process.
	Paths []string

	// Threshold is the 8-bit whiteness threshold, validated to [0, MaxThreshold].
	Threshold int

	// Extensions is the case-insensitive extension filter used only for
	// directory expansion.
	Extensions []string

	// Recursive searches directories recursively instead of only their
	// immediate contents.
	Recursive bool

	// Jobs is the number of concurrent decode workers. At the default of 1
	// files are processed strictly sequentially in sorted order.
	Jobs int

	// CSVPath, when set, writes the per-file CSV report to this path,
	// creating parent directories as needed.
	CSVPath string

	// JSONReport and MarkdownReport select a structured run report instead
	// of nothing beyond the terminal lines. Mutually exclusive.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is where the JSON/Markdown report goes. Empty means stdout.
	ReportFile string

	// ConfigFilePath is the explicit YAML defaults file path. If empty, the
	// tool searches the usual locations.
	ConfigFilePath string

	// SaveHistory stores the run in the SQLite history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on zero
// values because many defaults are non-zero. The constructor also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Threshold:   DefaultThreshold,
		Extensions:  DefaultExtensions(),
		Jobs:        DefaultJobs,
		SaveHistory: true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for pixeltally.
// On Linux: ~/.local/share/pixeltally
// On macOS: ~/Library/Application Support/pixeltally
// On Windows: %LOCALAPPDATA%\pixeltally
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pixeltally.
// On Linux: ~/.config/pixeltally
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid, so the
// command layer can map errors onto exit codes with errors.Is.
//
// Design decision: We validate at the config level rather than at each point
// of use to fail fast and provide clear error messages upfront. The first
// error found is returned because fixing one error often makes others
// irrelevant.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return ErrNoPaths
	}

	if c.Threshold < 0 || c.Threshold > MaxThreshold {
		return ErrThresholdOutOfRange
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}

	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
