package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/dirdeploy/internal/config"
	"github.com/taigrr/dirdeploy/internal/guard"
)

func TestHandleDeployDir(t *testing.T) {
	ts := newToolServer(nil)

	t.Run("copies contents", func(t *testing.T) {
		src, dst := t.TempDir(), t.TempDir()
		mkTree(t, src, "a/one.txt", "two.txt")

		res, out, err := ts.handleDeployDir(context.Background(), nil, DeployInput{From: src, To: dst})
		if err != nil {
			t.Fatalf("handleDeployDir() error = %v", err)
		}
		if res != nil && res.IsError {
			t.Error("result marked as error")
		}
		if !out.Success || out.Files != 2 {
			t.Errorf("output = %+v, want success with 2 files", out)
		}
		if !strings.Contains(out.Log, "Deployment completed.") {
			t.Errorf("log missing completion notice: %q", out.Log)
		}
		if _, err := os.Stat(filepath.Join(dst, "a", "one.txt")); err != nil {
			t.Errorf("file not copied: %v", err)
		}
	})

	t.Run("missing destination not created without consent", func(t *testing.T) {
		src := t.TempDir()
		dst := filepath.Join(t.TempDir(), "dst")

		res, out, err := ts.handleDeployDir(context.Background(), nil, DeployInput{From: src, To: dst})
		if !errors.Is(err, guard.ErrMissingDestination) {
			t.Fatalf("error = %v, want ErrMissingDestination", err)
		}
		if res == nil || !res.IsError {
			t.Error("result not marked as error")
		}
		if out.Success {
			t.Error("Success = true, want false")
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Error("destination created without createDestination")
		}
	})

	t.Run("missing destination created on request", func(t *testing.T) {
		src := t.TempDir()
		mkTree(t, src, "f.txt")
		dst := filepath.Join(t.TempDir(), "nested", "dst")

		_, out, err := ts.handleDeployDir(context.Background(), nil, DeployInput{From: src, To: dst, CreateDestination: true})
		if err != nil {
			t.Fatalf("handleDeployDir() error = %v", err)
		}
		if out.To != dst {
			t.Errorf("To = %q, want %q", out.To, dst)
		}
		if _, err := os.Stat(filepath.Join(dst, "f.txt")); err != nil {
			t.Errorf("file not copied: %v", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		_, out, err := ts.handleDeployDir(context.Background(), nil, DeployInput{
			From: filepath.Join(t.TempDir(), "nope"),
			To:   t.TempDir(),
		})
		if !errors.Is(err, guard.ErrMissingSource) {
			t.Fatalf("error = %v, want ErrMissingSource", err)
		}
		if !strings.Contains(out.Log, "not found. Terminating.") {
			t.Errorf("log = %q, want missing source notice", out.Log)
		}
	})

	t.Run("blank paths", func(t *testing.T) {
		if _, _, err := ts.handleDeployDir(context.Background(), nil, DeployInput{From: " ", To: ""}); err == nil {
			t.Error("handleDeployDir() with blank paths succeeded")
		}
	})
}

func TestHandleDeployShell(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	mkTree(t, src, "a/x.txt", "b/", ".git/", "skip-me/")

	ts := newToolServer(&config.Settings{Ignore: []string{"skip-*"}, Border: 10})

	_, out, err := ts.handleDeployShell(context.Background(), nil, DeployInput{From: src, To: dst})
	if err != nil {
		t.Fatalf("handleDeployShell() error = %v", err)
	}
	if !out.Success || len(out.Created) != 2 {
		t.Errorf("output = %+v, want 2 created", out)
	}
	if !strings.Contains(out.Log, strings.Repeat("-", 10)+"\n") || strings.Contains(out.Log, strings.Repeat("-", 11)) {
		t.Errorf("log does not use the configured border width: %q", out.Log)
	}
	if _, err := os.Stat(filepath.Join(dst, "a", "x.txt")); !os.IsNotExist(err) {
		t.Error("file contents copied by empty shell")
	}

	_, out, err = ts.handleDeployShell(context.Background(), nil, DeployInput{From: src, To: dst})
	if err != nil {
		t.Fatalf("second handleDeployShell() error = %v", err)
	}
	if len(out.Created) != 0 || len(out.Skipped) != 2 {
		t.Errorf("second run output = %+v, want 2 skipped", out)
	}
}
