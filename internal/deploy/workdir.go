package deploy

import (
	"fmt"
	"os"
)

// InDir runs fn with the working directory set to dir and restores the
// previous working directory when fn returns, fails, or panics.
func InDir(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to enter directory: %s - %w", dir, err)
	}
	defer func() {
		if cerr := os.Chdir(prev); cerr != nil && err == nil {
			err = fmt.Errorf("failed to restore directory: %s - %w", prev, cerr)
		}
	}()

	return fn()
}
