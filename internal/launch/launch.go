// Package launch routes a tool to the OS action that starts it.
//
// Every launch is fire-and-forget: calls return as soon as the OS has accepted
// the request. Spawned processes are never monitored or waited on by callers.
package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ryan-rushton/unilaunch/internal/config"
	"github.com/ryan-rushton/unilaunch/internal/paths"
)

// documentExts are opened with the default application even when a tool
// claims to be an executable.
var documentExts = map[string]bool{
	".xlsx": true, ".xlsm": true, ".xls": true, ".csv": true,
	".txt": true, ".pdf": true, ".docx": true, ".pptx": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".html": true, ".htm": true,
}

// Command is a process to spawn.
type Command struct {
	Path string
	Args []string
	Dir  string   // empty inherits the launcher's working directory
	Env  []string // nil inherits the launcher's environment
}

// System performs the OS side effects. Implementations must not block on the
// launched program.
type System interface {
	Start(cmd Command) error
	OpenURL(url string) error
	Open(path string) error
}

// Dispatcher maps tools to launch strategies.
type Dispatcher struct {
	sys      System
	resolver paths.Resolver
}

func New(sys System, resolver paths.Resolver) *Dispatcher {
	return &Dispatcher{sys: sys, resolver: resolver}
}

// Launch starts t. Settings supply the document-level interpreter default.
func (d *Dispatcher) Launch(t config.Tool, s config.Settings) error {
	switch t.Kind() {
	case config.KindURL:
		return d.launchURL(t)
	case config.KindPage:
		return d.launchPage(t)
	case config.KindFile:
		return d.launchFile(t)
	case config.KindExecutable:
		return d.launchExecutable(t)
	case config.KindScript:
		return d.launchScript(t, s)
	case config.KindUnknown:
	}
	return &UnsupportedTypeError{Tag: t.Type}
}

// OpenContaining opens the folder holding the tool's path, or the path itself
// when it is a directory.
func (d *Dispatcher) OpenContaining(t config.Tool) error {
	p := d.resolver.Resolve(strings.TrimSpace(t.Path))
	if p == "" {
		return ErrNoPath
	}
	if paths.HasURIScheme(p) {
		return fmt.Errorf("%s is not a local path", p)
	}

	folder := p
	if info, err := os.Stat(p); err != nil || !info.IsDir() {
		folder = filepath.Dir(p)
	}
	if err := d.sys.Open(folder); err != nil {
		return &LaunchFailedError{Target: folder, Err: err}
	}
	return nil
}

// OpenPath hands p to the OS default handler: directories go to the file
// manager, web addresses and local HTML to the browser, anything else to the
// registered application.
func (d *Dispatcher) OpenPath(p string) error {
	switch {
	case p == "":
		return ErrNoPath
	case paths.HasURIScheme(p):
		return d.openURL(p)
	}

	info, err := os.Stat(p)
	if err == nil && !info.IsDir() && isHTML(p) {
		return d.openURL(paths.FileURI(p))
	}
	if err := d.sys.Open(p); err != nil {
		return &LaunchFailedError{Target: p, Err: err}
	}
	return nil
}

func (d *Dispatcher) launchURL(t config.Tool) error {
	// URLs go to the browser exactly as written.
	if strings.TrimSpace(t.Path) == "" {
		return fmt.Errorf("url: %w", ErrNoPath)
	}
	return d.openURL(t.Path)
}

func (d *Dispatcher) launchPage(t config.Tool) error {
	p := d.resolver.Resolve(strings.TrimSpace(t.Path))
	switch {
	case p == "":
		return fmt.Errorf("html: %w", ErrNoPath)
	case paths.HasURIScheme(p):
		return d.openURL(p)
	}
	if !exists(p) {
		return &NotFoundError{What: "HTML file", Path: p}
	}
	return d.openURL(paths.FileURI(p))
}

func (d *Dispatcher) launchFile(t config.Tool) error {
	p := d.resolver.Resolve(strings.TrimSpace(t.Path))
	if p == "" {
		return fmt.Errorf("file: %w", ErrNoPath)
	}
	if !paths.HasURIScheme(p) && !exists(p) {
		return &NotFoundError{What: "File", Path: p}
	}
	return d.OpenPath(p)
}

func (d *Dispatcher) launchExecutable(t config.Tool) error {
	p := d.resolver.Resolve(strings.TrimSpace(t.Path))
	if p == "" {
		return fmt.Errorf("executable: %w", ErrNoPath)
	}
	if documentExts[strings.ToLower(filepath.Ext(p))] {
		return d.OpenPath(p)
	}

	cmd := Command{
		Path: p,
		Args: t.Arguments,
		Dir:  d.resolver.Resolve(t.WorkingDir),
	}
	if err := d.sys.Start(cmd); err != nil {
		return &LaunchFailedError{Target: p, Err: err}
	}
	return nil
}

func (d *Dispatcher) launchScript(t config.Tool, s config.Settings) error {
	script := d.resolver.Resolve(strings.TrimSpace(t.Path))
	if script == "" {
		return fmt.Errorf("python: %w", ErrNoPath)
	}
	if !exists(script) {
		return &NotFoundError{What: "Python script", Path: script}
	}

	interpreter := t.Interpreter
	if interpreter == "" {
		interpreter = s.Interpreter()
	}
	interpreter = d.resolveInterpreter(interpreter)
	if isPathLike(interpreter) && !exists(interpreter) {
		return &InterpreterNotFoundError{Path: interpreter, Err: fs.ErrNotExist}
	}

	dir := d.resolver.Resolve(t.WorkingDir)
	if dir == "" {
		dir = filepath.Dir(script)
	}

	cmd := Command{
		Path: interpreter,
		Args: append([]string{script}, t.Arguments...),
		Dir:  dir,
		Env:  mergeEnv(os.Environ(), t.EnvStrings()),
	}
	if err := d.sys.Start(cmd); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return &InterpreterNotFoundError{Path: interpreter, Err: err}
		}
		return &LaunchFailedError{Target: commandLine(cmd), Err: err}
	}
	return nil
}

// resolveInterpreter treats anything that looks like a path as one; bare
// names such as "python3" are left for PATH lookup.
func (d *Dispatcher) resolveInterpreter(name string) string {
	name = strings.TrimSpace(name)
	if !isPathLike(name) {
		return name
	}
	return d.resolver.Resolve(name)
}

func (d *Dispatcher) openURL(u string) error {
	if err := d.sys.OpenURL(u); err != nil {
		return &LaunchFailedError{Target: u, Err: err}
	}
	return nil
}

func isPathLike(name string) bool {
	return strings.ContainsAny(name, `/\$~`) ||
		strings.Contains(name, paths.BasePlaceholder) ||
		strings.Contains(name, paths.ConfigPlaceholder)
}

func isHTML(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".html" || ext == ".htm"
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// mergeEnv overlays KEY=value pairs onto base, replacing existing keys in
// place and appending new ones.
func mergeEnv(base, overrides []string) []string {
	if len(overrides) == 0 {
		return base
	}
	pending := make(map[string]string, len(overrides))
	var order []string
	for _, kv := range overrides {
		k, _, _ := strings.Cut(kv, "=")
		if _, seen := pending[k]; !seen {
			order = append(order, k)
		}
		pending[k] = kv
	}

	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if v, ok := pending[k]; ok {
			out = append(out, v)
			delete(pending, k)
			continue
		}
		out = append(out, kv)
	}
	for _, k := range order {
		if v, ok := pending[k]; ok {
			out = append(out, v)
		}
	}
	return out
}

func commandLine(c Command) string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, p := range append([]string{c.Path}, c.Args...) {
		if strings.ContainsAny(p, " \t\"'") {
			p = fmt.Sprintf("%q", p)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
