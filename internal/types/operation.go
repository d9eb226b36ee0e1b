// Package types holds the shared types of dirdeploy.
package types

import (
	"fmt"
	"strings"
)

// Operation selects what the deployment engine does with a source tree.
type Operation int

const (
	// OpFullCopy copies a directory and all of its contents.
	OpFullCopy Operation = iota
	// OpEmptyShell recreates the immediate subdirectories of a directory
	// without their contents.
	OpEmptyShell
)

// Registered operation names, as accepted by --func.
const (
	NameFullCopy   = "deploy_dir"
	NameEmptyShell = "deploy_empty_subdirs"
)

// Operations lists every operation in registration order.
var Operations = []Operation{OpFullCopy, OpEmptyShell}

// String returns the registered name of the operation.
func (o Operation) String() string {
	switch o {
	case OpFullCopy:
		return NameFullCopy
	case OpEmptyShell:
		return NameEmptyShell
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Description returns the line printed in the operation banner.
func (o Operation) Description() string {
	switch o {
	case OpFullCopy:
		return "deploying dfrom to dto..."
	case OpEmptyShell:
		return "deploying empty subdirectories..."
	}
	return ""
}

// ParseOperation maps a registered name to its Operation.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q (choose from %s)", name, strings.Join(OperationNames(), ", "))
}

// OperationNames returns the registered names in registration order.
func OperationNames() []string {
	names := make([]string, 0, len(Operations))
	for _, op := range Operations {
		names = append(names, op.String())
	}
	return names
}
