// SPDX-License-Identifier: AGPL-3.0-or-later
package blueprint

import "fmt"

// MissingParamError reports a required field with no resolvable value at
// render time.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Name)
}

// ParamTypeError reports a supplied value whose shape does not match the
// array type the schema declares for its parameter.
type ParamTypeError struct {
	Name string
	Got  string
}

func (e *ParamTypeError) Error() string {
	return fmt.Sprintf("parameter '%s' must be an array, got %s", e.Name, e.Got)
}
