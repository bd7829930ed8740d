// Package paths turns the path strings written in a tool config into
// locations the OS can open.
package paths

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	BasePlaceholder   = "{BASE}"
	ConfigPlaceholder = "{CONFIG}"
)

var uriPrefixes = []string{"http://", "https://", "file://", "mailto:", "ftp://"}

// Resolver expands config paths. Relative results are anchored at ConfigDir,
// not the working directory, so a config can travel with its tools.
type Resolver struct {
	BaseDir   string // directory holding the running program
	ConfigDir string // directory holding the active config file
}

// NewResolver builds a Resolver for the config file at configPath.
func NewResolver(baseDir, configPath string) Resolver {
	dir := filepath.Dir(configPath)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Resolver{BaseDir: baseDir, ConfigDir: dir}
}

// Resolve expands a leading ~, env vars and the {BASE}/{CONFIG} placeholders,
// then anchors relative paths at ConfigDir. Empty input and URI-scheme strings
// come back unchanged.
func (r Resolver) Resolve(raw string) string {
	if raw == "" || HasURIScheme(raw) {
		return raw
	}

	p := expandHome(raw)
	p = expandEnv(p)
	p = strings.NewReplacer(BasePlaceholder, r.BaseDir, ConfigPlaceholder, r.ConfigDir).Replace(p)

	if !filepath.IsAbs(p) {
		return filepath.Join(r.ConfigDir, p)
	}
	return filepath.Clean(p)
}

// HasURIScheme reports whether s starts with one of the URI schemes that must
// never be treated as a filesystem path.
func HasURIScheme(s string) bool {
	lower := strings.ToLower(s)
	for _, prefix := range uriPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// IsWebURL reports whether s is an http or https address.
func IsWebURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FileURI converts an absolute filesystem path to a file:// URI.
func FileURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // drive letters: C:/x -> /C:/x
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// AppBaseDir returns the directory containing the running program.
func AppBaseDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

var (
	dollarVar  = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)
	percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)
)

// expandEnv replaces $NAME and ${NAME} with set variables. Anything that does
// not name a set variable is kept exactly as written.
func expandEnv(p string) string {
	p = dollarVar.ReplaceAllStringFunc(p, func(m string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(m[1:], "{"), "}")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return m
	})
	if runtime.GOOS == "windows" {
		p = expandPercent(p)
	}
	return p
}

func expandPercent(p string) string {
	return percentVar.ReplaceAllStringFunc(p, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
