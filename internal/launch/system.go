package launch

import (
	"io"
	"os/exec"

	"github.com/pkg/browser"
	"github.com/skratchdot/open-golang/open"
)

func init() {
	// The terminal belongs to the UI; keep browser helper chatter off it.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// OS is the System backed by the host operating system.
type OS struct{}

// Start spawns the command and returns once the process exists.
func (OS) Start(c Command) error {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }() // reap only
	return nil
}

// OpenURL opens u in the system web browser.
func (OS) OpenURL(u string) error {
	return browser.OpenURL(u)
}

// Open hands path to the OS default handler (file manager for directories).
func (OS) Open(path string) error {
	return open.Start(path)
}
