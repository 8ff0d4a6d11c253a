package stringsx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCase is matched by every error returned from ToUnknownCaseErr.
var ErrUnknownCase = errors.New("unknown case")

// RegisteredCases records the cases of a switch statement so that the default
// branch can report which values would have been accepted.
//
//	switch f := stringsx.SwitchExact(format); {
//	case f.AddCase("json"):
//	case f.AddCase("yaml"):
//	default:
//		return f.ToUnknownCaseErr()
//	}
type RegisteredCases struct {
	cases  []string
	actual string
}

type unknownCaseError struct {
	cases  []string
	actual string
}

func SwitchExact(actual string) *RegisteredCases {
	return &RegisteredCases{actual: actual}
}

// AddCase registers c and reports whether it equals the switched value.
func (r *RegisteredCases) AddCase(c string) bool {
	r.cases = append(r.cases, c)
	return r.actual == c
}

// Cases returns the registered cases in order.
func (r *RegisteredCases) Cases() []string {
	return append([]string(nil), r.cases...)
}

func (r *RegisteredCases) ToUnknownCaseErr() error {
	return &unknownCaseError{cases: r.Cases(), actual: r.actual}
}

func (e *unknownCaseError) Error() string {
	return fmt.Sprintf("%s: expected one of [%s] but got %q", ErrUnknownCase, strings.Join(e.cases, ", "), e.actual)
}

func (e *unknownCaseError) Is(err error) bool {
	return err == ErrUnknownCase
}
