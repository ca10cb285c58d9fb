// Package maplink builds map-service URLs for a coordinate pair and opens
// them in the user's browser.
package maplink

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultBaseURL is the Google Maps place endpoint.
const DefaultBaseURL = "http://www.google.com/maps/place"

// ErrNoCoordinates is returned when there is nothing to link to.
var ErrNoCoordinates = errors.New("no coordinates to link")

// URL appends the decimal coordinate string to base as a path element.
func URL(base, decimal string) (string, error) {
	if strings.TrimSpace(decimal) == "" {
		return "", ErrNoCoordinates
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse map base URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("map base URL %q must be absolute", base)
	}
	return u.JoinPath(decimal).String(), nil
}

// Opener launches a URL in the desktop's default browser.
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

// NewOpener returns an Opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			// Reap the launcher without blocking the caller.
			go func() { _ = cmd.Wait() }()
			return nil
		},
	}
}

// Open hands link to the platform launcher.
func (o *Opener) Open(link string) error {
	name, args := command(o.goos, link)
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("open %s with %s: %w", link, name, err)
	}
	return nil
}

func command(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}
