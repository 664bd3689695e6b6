package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// UI modes accepted by [format].ui.
const (
	UIAuto = "auto"
	UIOn   = "on"
	UIOff  = "off"
)

var ErrConfigExists = errors.New("configuration file already exists")

// Config is the decoded .taskfmt.toml.
type Config struct {
	Format FormatConfig `toml:"format"`
}

// FormatConfig is the [format] table.
type FormatConfig struct {
	Jobs    int      `toml:"jobs"`
	Exclude []string `toml:"exclude"`
	Cache   bool     `toml:"cache"`
	UI      string   `toml:"ui"`
	Indent  int      `toml:"indent"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{Format: FormatConfig{
		Jobs:    0,
		Exclude: []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		Cache:   true,
		UI:      UIAuto,
		Indent:  2,
	}}
}

// EffectiveJobs resolves jobs = 0 to GOMAXPROCS.
func (c FormatConfig) EffectiveJobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Warning is a non-fatal finding about the configuration file.
type Warning struct {
	Path string
	Key  string
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Path, w.Key, w.Msg)
}

// LoadConfig decodes path over DefaultConfig. Keys the file sets override
// the defaults; unknown keys come back as warnings.
func LoadConfig(path string) (Config, []Warning, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, err
	}
	return decodeConfig(path, data)
}

func decodeConfig(path string, data []byte) (Config, []Warning, error) {
	cfg := DefaultConfig()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("format", "exclude") && cfg.Format.Exclude == nil {
		cfg.Format.Exclude = []string{}
	}

	var warnings []Warning
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, Warning{Path: path, Key: key.String(), Msg: "unknown configuration key"})
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, warnings, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, warnings, nil
}

// Validate checks value ranges and exclude patterns.
func (c Config) Validate() error {
	f := c.Format
	if f.Jobs < 0 {
		return fmt.Errorf("format.jobs must be >= 0, got %d", f.Jobs)
	}
	if !slices.Contains([]string{UIAuto, UIOn, UIOff}, f.UI) {
		return fmt.Errorf("format.ui must be one of auto, on, off; got %q", f.UI)
	}
	if f.Indent < 2 || f.Indent > 9 {
		return fmt.Errorf("format.indent must be between 2 and 9, got %d", f.Indent)
	}
	for _, pattern := range f.Exclude {
		if strings.TrimSpace(pattern) == "" || !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("format.exclude: invalid pattern %q", pattern)
		}
	}
	return nil
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# taskfmt configuration\n")
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// InitConfig writes DefaultConfig to dir/.taskfmt.toml. An existing file is
// never overwritten.
func InitConfig(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	// #nosec G304 -- path is built from the caller's directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
		return path, err
	}
	if err := WriteConfig(f, DefaultConfig()); err != nil {
		_ = f.Close()
		return path, err
	}
	return path, f.Close()
}
