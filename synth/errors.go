package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredMap is matched by every *MissingRequiredMapError.
	ErrMissingRequiredMap = errors.New("synth: missing required map")

	// ErrMapNotFound is returned by a Source that has no map of the given name.
	ErrMapNotFound = errors.New("synth: map not found")

	// ErrInvalidItem reports an Item whose settings are out of range.
	ErrInvalidItem = errors.New("synth: invalid item")
)

// MissingRequiredMapError reports a diffuse or normal map that is not
// configured or cannot be resolved. Err is the lookup failure, if any.
type MissingRequiredMapError struct {
	Item string
	Map  string
	Name string
	Err  error
}

func (e *MissingRequiredMapError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("synth: item %q: no %s map configured", e.Item, e.Map)
	}
	return fmt.Sprintf("synth: item %q: %s map %q: %v", e.Item, e.Map, e.Name, e.Err)
}

// Is makes errors.Is(err, ErrMissingRequiredMap) succeed.
func (e *MissingRequiredMapError) Is(target error) bool {
	return target == ErrMissingRequiredMap
}

func (e *MissingRequiredMapError) Unwrap() error { return e.Err }

// ItemError ties a conversion failure to the item that caused it.
type ItemError struct {
	Item string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %q: %v", e.Item, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }
