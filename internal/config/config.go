// Package config resolves command-line flags and the optional settings file
// into a Config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/taigrr/dirdeploy/internal/types"
)

// Flag names.
const (
	FlagFunc    = "func"
	FlagFrom    = "dfrom"
	FlagTo      = "dto"
	FlagNoPause = "nopause"
	FlagConfig  = "config"
)

// DefaultBorderWidth is the number of symbols in a banner border line.
const DefaultBorderWidth = 60

// Config is the resolved configuration of a single run.
type Config struct {
	Source      string
	Destination string
	Operation   types.Operation
	NoPause     bool
	Ignore      []string
	BorderWidth int
}

// UsageError reports a problem with how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef formats a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// operationValue is a pflag.Value that only accepts registered operation
// names, so unknown names fail while the flags are parsed.
type operationValue struct {
	op *types.Operation
}

func (v operationValue) String() string {
	if v.op == nil {
		return types.OpFullCopy.String()
	}
	return v.op.String()
}

func (v operationValue) Set(s string) error {
	op, err := types.ParseOperation(s)
	if err != nil {
		return err
	}
	*v.op = op
	return nil
}

func (v operationValue) Type() string { return "operation" }

// RegisterFlags defines the dirdeploy flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	op := types.OpFullCopy
	fs.Var(operationValue{op: &op}, FlagFunc,
		"directory handling function ("+strings.Join(types.OperationNames(), ", ")+")")
	fs.String(FlagFrom, "", "the directory from which information will be retrieved (required)")
	fs.String(FlagTo, "", "the directory to which the retrieved information will be applied (required)")
	fs.Bool(FlagNoPause, false, "do not pause the shell at the end of the program")
	fs.String(FlagConfig, "", "YAML settings file")
}

// Resolve builds a Config from parsed flags. Values from the settings file
// named by --config apply unless the matching flag was set explicitly.
func Resolve(fs *pflag.FlagSet) (Config, error) {
	cfg := Config{BorderWidth: DefaultBorderWidth}

	settingsPath, err := fs.GetString(FlagConfig)
	if err != nil {
		return Config{}, err
	}
	var settings *Settings
	if settingsPath != "" {
		settings, err = LoadSettings(settingsPath)
		if err != nil {
			return Config{}, err
		}
	}

	if cfg.Source, err = fs.GetString(FlagFrom); err != nil {
		return Config{}, err
	}
	if cfg.Destination, err = fs.GetString(FlagTo); err != nil {
		return Config{}, err
	}
	cfg.Source = strings.TrimSpace(cfg.Source)
	cfg.Destination = strings.TrimSpace(cfg.Destination)

	var missing []string
	if cfg.Source == "" {
		missing = append(missing, "--"+FlagFrom)
	}
	if cfg.Destination == "" {
		missing = append(missing, "--"+FlagTo)
	}
	if len(missing) > 0 {
		return Config{}, Usagef("required flag(s) %s not set", strings.Join(missing, ", "))
	}

	funcFlag := fs.Lookup(FlagFunc)
	if funcFlag == nil {
		return Config{}, fmt.Errorf("flag --%s not registered", FlagFunc)
	}
	cfg.Operation, err = types.ParseOperation(funcFlag.Value.String())
	if err != nil {
		return Config{}, &UsageError{Err: err}
	}

	if cfg.NoPause, err = fs.GetBool(FlagNoPause); err != nil {
		return Config{}, err
	}

	if settings != nil {
		if settings.Func != "" && !fs.Changed(FlagFunc) {
			cfg.Operation, err = types.ParseOperation(settings.Func)
			if err != nil {
				return Config{}, &UsageError{Err: fmt.Errorf("%s: %w", settingsPath, err)}
			}
		}
		if settings.NoPause != nil && !fs.Changed(FlagNoPause) {
			cfg.NoPause = *settings.NoPause
		}
		cfg.Ignore = settings.Ignore
		if settings.Border > 0 {
			cfg.BorderWidth = settings.Border
		}
	}

	return cfg, nil
}
