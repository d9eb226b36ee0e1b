// Package deploy replicates a source directory into a destination, either
// with all of its contents or as empty subdirectories only.
package deploy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"github.com/taigrr/dirdeploy/internal/console"
	"github.com/taigrr/dirdeploy/internal/pathfilter"
	"github.com/taigrr/dirdeploy/internal/types"
)

// ErrNestedDestination is returned when a full copy would copy a directory
// into itself.
var ErrNestedDestination = errors.New("destination is inside source")

// Engine runs deployments.
type Engine struct {
	printer    *console.Printer
	pathFilter *pathfilter.PathFilter
}

// Result is the outcome of Run. Exactly one of Copy and Shell is set.
type Result struct {
	Operation types.Operation
	Copy      *types.CopyResult
	Shell     *types.ShellResult
}

// New creates a new Engine.
func New(p *console.Printer, pf *pathfilter.PathFilter) *Engine {
	if p == nil {
		p = console.New(nil, 0)
	}
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	return &Engine{printer: p, pathFilter: pf}
}

// Run performs op from src to dst. Both paths must exist.
func (e *Engine) Run(op types.Operation, src, dst string) (Result, error) {
	res := Result{Operation: op}
	var err error

	switch op {
	case types.OpFullCopy:
		var c types.CopyResult
		c, err = e.FullCopy(src, dst)
		res.Copy = &c
	case types.OpEmptyShell:
		var s types.ShellResult
		s, err = e.EmptyShell(src, dst)
		res.Shell = &s
	default:
		err = fmt.Errorf("unsupported operation: %v", op)
	}

	return res, err
}

func (e *Engine) banner(op types.Operation, src, dst string) {
	e.printer.Banner(fmt.Sprintf("%s: %s", op, op.Description()), src, dst)
}

// FullCopy copies src and everything below it into dst. Existing directories
// are merged and existing files overwritten; files only present in dst are
// kept. A failure stops the copy and leaves what was already copied.
//
// The result counts the files and directories below src, not src itself.
// Links are counted as whatever they point to.
func (e *Engine) FullCopy(src, dst string) (types.CopyResult, error) {
	e.banner(types.OpFullCopy, src, dst)

	var result types.CopyResult

	nested, err := isWithin(src, dst)
	if err != nil {
		return result, err
	}
	if nested {
		return result, fmt.Errorf("%w: %s", ErrNestedDestination, dst)
	}

	err = copy.Copy(src, dst, copy.Options{
		// Copy what links point to; a dangling link fails the copy.
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
		OnDirExists: func(string, string) copy.DirExistsAction {
			return copy.Merge
		},
		// A followed link is offered again with its target's info, so only
		// the target is counted.
		Skip: func(info os.FileInfo, _, _ string) (bool, error) {
			switch {
			case info.Mode()&os.ModeSymlink != 0:
			case info.IsDir():
				result.Dirs++
			default:
				result.Files++
			}
			return false, nil
		},
	})
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return result, fmt.Errorf("permission denied: %w", err)
		}
		return result, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	e.printer.Printf("Deployment completed.")
	return result, nil
}

// EmptyShell creates, directly under dst, an empty directory for every
// subdirectory of src that dst does not already have. Nothing in dst is
// removed or changed.
func (e *Engine) EmptyShell(src, dst string) (types.ShellResult, error) {
	e.banner(types.OpEmptyShell, src, dst)

	var result types.ShellResult

	subdirs, err := e.ListSubdirs(src)
	if err != nil {
		return result, err
	}
	if len(subdirs) == 0 {
		e.printer.Printf("dfrom has no subdirectories. Terminating.")
		return result, nil
	}

	err = InDir(dst, func() error {
		for _, name := range subdirs {
			if info, err := os.Stat(name); err == nil && info.IsDir() {
				result.Skipped = append(result.Skipped, name)
				continue
			}
			if err := os.Mkdir(name, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %s - %w", filepath.Join(dst, name), err)
			}
			result.Created = append(result.Created, name)
			e.printer.Printf("[%s] created.", name)
		}
		return nil
	})

	return result, err
}

// ListSubdirs returns the names of the immediate subdirectories of dir that
// are not ignored, in directory listing order.
func (e *Engine) ListSubdirs(dir string) ([]string, error) {
	var subdirs []string

	err := InDir(dir, func() error {
		entries, err := os.ReadDir(".")
		if err != nil {
			return fmt.Errorf("failed to list directory: %s - %w", dir, err)
		}

		var names []string
		for _, entry := range entries {
			// Stat follows links, so a link to a directory counts.
			info, err := os.Stat(entry.Name())
			if err != nil || !info.IsDir() {
				continue
			}
			names = append(names, entry.Name())
		}
		subdirs = e.pathFilter.FilterNames(names)
		return nil
	})

	return subdirs, err
}

// isWithin reports whether target is root or lies below it once links on
// either path are resolved.
func isWithin(root, target string) (bool, error) {
	absRoot, err := resolvePath(root)
	if err != nil {
		return false, err
	}
	absTarget, err := resolvePath(target)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil {
		return false, nil
	}
	if rel == "." {
		return true, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// resolvePath returns the absolute form of path with links evaluated. A path
// that cannot be evaluated is only made absolute.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
