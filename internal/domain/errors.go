package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every parse failure in this package.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidName  = fmt.Errorf("%w: invalid subscriber name", ErrValidation)
	ErrInvalidEmail = fmt.Errorf("%w: invalid subscriber email", ErrValidation)
)
