package tupledict

import (
	"errors"
	"fmt"
)

// ErrDuplicateField matches every *ErrDuplicateFieldName via errors.Is.
var ErrDuplicateField = errors.New("duplicate field name")

// ErrDuplicateFieldName is returned by construction when two fields share a
// name. Name is the first repeated name in field order.
type ErrDuplicateFieldName struct {
	Name string
}

func (e *ErrDuplicateFieldName) Error() string {
	return fmt.Sprintf("space field '%s' is duplicate", e.Name)
}

func (e *ErrDuplicateFieldName) Unwrap() error { return ErrDuplicateField }
