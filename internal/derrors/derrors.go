// Package derrors attaches stack traces to returned errors.
package derrors

import "github.com/k1LoW/errors"

// Wrap adds a stack trace to *errp. Use it as `defer derrors.Wrap(&err)` in
// functions with a named error result.
func Wrap(errp *error) {
	if errp == nil || *errp == nil {
		return
	}
	*errp = errors.WithStack(*errp)
}
