// Package guard checks that the source and destination directories exist
// before a deployment, offering to create a missing destination.
package guard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taigrr/dirdeploy/internal/console"
)

// Role tells the guard which side of a deployment a path is.
type Role int

const (
	RoleSource Role = iota
	RoleDestination
)

// String returns the flag name used for the role in messages.
func (r Role) String() string {
	if r == RoleSource {
		return "dfrom"
	}
	return "dto"
}

// OnMissing selects what happens when a path does not exist.
type OnMissing int

const (
	// Abort reports the missing path and fails.
	Abort OnMissing = iota
	// PromptCreate asks whether the path should be created.
	PromptCreate
)

// Status is the outcome of EnsureExists.
type Status int

const (
	// StatusInvalid accompanies every error.
	StatusInvalid Status = iota
	StatusExists
	StatusCreated
	StatusDeclined
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusExists:
		return "exists"
	case StatusCreated:
		return "created"
	case StatusDeclined:
		return "declined"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var (
	ErrMissingSource      = errors.New("source directory not found")
	ErrMissingDestination = errors.New("destination directory not found")
)

// Guard verifies deployment paths.
type Guard struct {
	printer  *console.Printer
	prompter Prompter
}

// New creates a Guard printing through p and asking questions through pr.
func New(p *console.Printer, pr Prompter) *Guard {
	if p == nil {
		p = console.New(nil, 0)
	}
	if pr == nil {
		pr = FixedPrompter(false)
	}
	return &Guard{printer: p, prompter: pr}
}

// EnsureExists checks that path exists. A missing path fails with Abort; with
// PromptCreate the user is asked whether to create it, and a declined prompt
// returns StatusDeclined without an error.
func (g *Guard) EnsureExists(path string, role Role, onMissing OnMissing) (Status, error) {
	_, err := os.Stat(path)
	if err == nil {
		return StatusExists, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		if errors.Is(err, fs.ErrPermission) {
			return StatusInvalid, fmt.Errorf("permission denied: %s - %w", path, err)
		}
		return StatusInvalid, fmt.Errorf("failed to check %s [%s]: %w", role, path, err)
	}

	notFound := fmt.Sprintf("%s [%s] not found.", role, path)

	if onMissing == Abort {
		g.printer.Framed(console.Asterisk, notFound+" Terminating.")
		return StatusInvalid, fmt.Errorf("%w: %s", missingErr(role), path)
	}

	g.printer.Framed(console.Asterisk, notFound)
	yes, err := g.prompter.Confirm("Create? (y/n)> ")
	if err != nil {
		return StatusInvalid, err
	}
	if !yes {
		return StatusDeclined, nil
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return StatusInvalid, fmt.Errorf("failed to create directory: %s - %w", path, err)
	}
	return StatusCreated, nil
}

// Validate checks the source, offers to create the destination, and checks
// the destination again so that it is known to exist. It returns both paths
// in absolute form.
func (g *Guard) Validate(src, dst string) (string, string, error) {
	if _, err := g.EnsureExists(src, RoleSource, Abort); err != nil {
		return "", "", err
	}
	if _, err := g.EnsureExists(dst, RoleDestination, PromptCreate); err != nil {
		return "", "", err
	}
	if _, err := g.EnsureExists(dst, RoleDestination, Abort); err != nil {
		return "", "", err
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return "", "", err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return "", "", err
	}
	return absSrc, absDst, nil
}

func missingErr(role Role) error {
	if role == RoleSource {
		return ErrMissingSource
	}
	return ErrMissingDestination
}
