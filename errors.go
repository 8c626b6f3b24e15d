package jadzia

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNestingConflict is returned when one selector path is used both for
	// a property value and for nested rules.
	ErrNestingConflict = errors.New("nesting conflict")
	// ErrUnsupportedValue is returned when a value that is not a scalar,
	// list, mapping, empty or deferred computation reaches a leaf.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrTooDeep is returned when the rule tree, or a chain of deferred
	// computations, nests deeper than MaxDepth.
	ErrTooDeep = errors.New("rule tree too deep")
)

// MaxDepth bounds the nesting of a rule tree, counting every resolved
// deferred computation as one level.
const MaxDepth = 256

// PathError records the rule tree path at which a conversion failed.
type PathError struct {
	Path []string
	Err  error
}

func (e *PathError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", formatPath(e.Path), e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func formatPath(path []string) string {
	quoted := make([]string, len(path))
	for i, p := range path {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, " > ")
}

func pathError(path []string, format string, args ...any) error {
	return &PathError{
		Path: append([]string(nil), path...),
		Err:  fmt.Errorf(format, args...),
	}
}
