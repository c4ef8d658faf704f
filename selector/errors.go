package selector

import (
	"errors"
	"fmt"
)

const (
	duplicateMessage = "Element, id and pseudo-element should not occur more then one time inside the selector"
	orderMessage     = "Selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element"
)

var (
	// ErrDuplicate matches any DuplicateError with errors.Is.
	ErrDuplicate = errors.New("duplicate selector part")
	// ErrOrder matches any OrderError with errors.Is.
	ErrOrder = errors.New("selector parts out of order")
)

// DuplicateError is reported when element, id or pseudo-element is added
// to a selector which already has one.
type DuplicateError struct {
	Kind Kind
}

func (e *DuplicateError) Error() string {
	return duplicateMessage
}

// Is makes errors.Is(err, ErrDuplicate) work for any DuplicateError.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Detail describes the offending part, Error() keeps the fixed message.
func (e *DuplicateError) Detail() string {
	return fmt.Sprintf("%s is already set", e.Kind)
}

// OrderError is reported when a part is added after a part which must
// follow it.
type OrderError struct {
	Kind  Kind // part being added
	After Kind // highest part already present
}

func (e *OrderError) Error() string {
	return orderMessage
}

// Is makes errors.Is(err, ErrOrder) work for any OrderError.
func (e *OrderError) Is(target error) bool {
	return target == ErrOrder
}

// Detail describes the offending pair, Error() keeps the fixed message.
func (e *OrderError) Detail() string {
	return fmt.Sprintf("%s cannot follow %s", e.Kind, e.After)
}
