// Package opener launches the system browser on a watch URL. Commands are run
// with explicit argument slices and the URL is validated first, so nothing
// from a directory document reaches a shell.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"

	"filmwatch/internal/httputil"
)

// Opener opens URLs with an external program.
type Opener interface {
	// Open launches the program on url and returns once it has started.
	Open(url string) error

	// Name returns the program name.
	Name() string

	// Available checks if the program exists in PATH.
	Available() bool
}

// New returns the opener for the given GOOS.
func New(goos string) Opener {
	switch goos {
	case "darwin":
		return &Command{name: "open"}
	case "windows":
		return &Command{name: "rundll32", prefix: []string{"url.dll,FileProtocolHandler"}}
	default:
		return &Command{name: "xdg-open"}
	}
}

// Default returns the opener for the running platform.
func Default() Opener {
	return New(runtime.GOOS)
}

// Command opens URLs by running name with optional leading arguments.
type Command struct {
	name   string
	prefix []string
}

func (c *Command) Name() string { return c.name }

func (c *Command) Available() bool {
	_, err := exec.LookPath(c.name)
	return err == nil
}

// Args returns the argument slice used for url.
func (c *Command) Args(url string) []string {
	return append(append([]string(nil), c.prefix...), url)
}

// Open starts the program without waiting for it to exit.
func (c *Command) Open(url string) error {
	if err := httputil.ValidateURL(url); err != nil {
		return fmt.Errorf("refusing to open %q: %w", url, err)
	}

	path, err := exec.LookPath(c.name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", c.name, err)
	}

	cmd := exec.Command(path, c.Args(url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("running %s: %w", c.name, err)
	}
	go cmd.Wait()

	return nil
}
