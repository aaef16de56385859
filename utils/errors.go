package utils

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidLength is the cause of every error produced by NewInvalidLengthError.
var ErrInvalidLength = errors.New("invalid length")

// NewInvalidLengthError is used when a buffer or vector has a length other than the accepted ones.
// The returned error matches ErrInvalidLength with errors.Is.
func NewInvalidLengthError(what string, got int, accepted ...int) error {
	want := make([]string, 0, len(accepted))
	for _, a := range accepted {
		want = append(want, fmt.Sprint(a))
	}
	return errors.Wrapf(ErrInvalidLength, "%s must have length %s but has %d", what, strings.Join(want, " or "), got)
}

// NewMinLengthError is used when a destination buffer is too short.
func NewMinLengthError(what string, got, minimum int) error {
	return errors.Wrapf(ErrInvalidLength, "%s must have length of at least %d but has %d", what, minimum, got)
}
