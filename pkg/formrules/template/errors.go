package template

import (
	"fmt"
	"strings"
)

// UndefinedVariableError is returned under MissingError when one or more
// referenced variables are not in the map.
type UndefinedVariableError struct {
	// Names is the list of undefined variable names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// SyntaxError reports a malformed variable span.
type SyntaxError struct {
	// Offset is the byte offset in the expression where the problem was found.
	Offset int
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}
