package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// FileName is the config looked up next to the program when none is given.
const FileName = "tools.json"

const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 700
	DefaultTheme        = "flatly"
	DefaultInterpreter  = "python"
	Uncategorized       = "Uncategorized"
)

// Document is the whole config file: global settings and the ordered tool list.
//
// Members the launcher does not know are kept so a save writes them back.
// Extra holds them verbatim for JSON files, ExtraYAML for YAML files.
type Document struct {
	Settings  Settings                  `json:"settings,omitzero" yaml:"settings,omitempty"`
	Tools     []Tool                    `json:"tools,omitzero" yaml:"tools,omitempty"`
	Extra     map[string]jsontext.Value `json:",unknown" yaml:"-"`
	ExtraYAML map[string]any            `json:"-" yaml:",inline"`
}

// Settings holds the optional launcher-wide preferences.
type Settings struct {
	WindowWidth   int            `json:"window_width,omitzero" yaml:"window_width,omitempty"`
	WindowHeight  int            `json:"window_height,omitzero" yaml:"window_height,omitempty"`
	Theme         string         `json:"theme,omitzero" yaml:"theme,omitempty"`
	DefaultPython string         `json:"default_python,omitzero" yaml:"default_python,omitempty"`

	Extra     map[string]jsontext.Value `json:",unknown" yaml:"-"`
	ExtraYAML map[string]any            `json:"-" yaml:",inline"`
}

// Tool describes one launchable entry.
type Tool struct {
	Name        string         `json:"name,omitzero" yaml:"name,omitempty"`
	Type        string         `json:"type,omitzero" yaml:"type,omitempty"`
	Path        string         `json:"path,omitzero" yaml:"path,omitempty"`
	Arguments   []string       `json:"arguments,omitzero" yaml:"arguments,omitempty"`
	WorkingDir  string         `json:"working_dir,omitzero" yaml:"working_dir,omitempty"`
	Env         map[string]any `json:"env,omitzero" yaml:"env,omitempty"`
	Interpreter string         `json:"interpreter,omitzero" yaml:"interpreter,omitempty"`
	Category    string         `json:"category,omitzero" yaml:"category,omitempty"`
	Description string         `json:"description,omitzero" yaml:"description,omitempty"`

	Extra     map[string]jsontext.Value `json:",unknown" yaml:"-"`
	ExtraYAML map[string]any            `json:"-" yaml:",inline"`
}

// DefaultPath returns the config file location inside baseDir.
func DefaultPath(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// WithTheme returns a shallow copy of d whose only difference is the theme.
func (d *Document) WithTheme(name string) *Document {
	cp := *d
	cp.Settings.Theme = name
	return &cp
}

// ThemeOrDefault returns the configured theme name, lowercased.
func (s Settings) ThemeOrDefault() string {
	if t := strings.TrimSpace(s.Theme); t != "" {
		return strings.ToLower(t)
	}
	return DefaultTheme
}

// Interpreter returns the document-level interpreter fallback.
func (s Settings) Interpreter() string {
	if s.DefaultPython != "" {
		return s.DefaultPython
	}
	return DefaultInterpreter
}

// WindowSize returns the preferred window size in pixels.
func (s Settings) WindowSize() (width, height int) {
	width, height = s.WindowWidth, s.WindowHeight
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}
	return width, height
}

// Kind parses the tool's type tag.
func (t Tool) Kind() Kind {
	return ParseKind(t.Type)
}

func (t Tool) DisplayName() string {
	if t.Name == "" {
		return "(unnamed)"
	}
	return t.Name
}

func (t Tool) CategoryOrDefault() string {
	if c := strings.TrimSpace(t.Category); c != "" {
		return c
	}
	return Uncategorized
}

// EnvStrings renders the tool's env overrides as sorted KEY=value pairs.
// Non-string values are formatted the way they appear in the file.
func (t Tool) EnvStrings() []string {
	if len(t.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.Env))
	for k, v := range t.Env {
		out = append(out, k+"="+scalarString(v))
	}
	sort.Strings(out)
	return out
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
