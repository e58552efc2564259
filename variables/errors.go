package variables

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the parent of every error caused by a malformed or contradictory definition.
	ErrConfiguration = errors.New("invalid variable configuration")

	ErrEmptyEntityTypeName   = errors.New("target entity type name must not be empty")
	ErrNoGroups              = errors.New("definition must contain at least one group")
	ErrDuplicateInstanceID   = errors.New("duplicate target instance id")
	ErrNilComponent          = errors.New("group component must not be nil")
	ErrEmptyComposite        = errors.New("composite component must have children")
	ErrInvertedDateRange     = errors.New("date range min is after max")
	ErrIncompleteDateRange   = errors.New("date range needs both min and max")
	ErrEmptyFieldIdentifier  = errors.New("instance list component needs a field identifier")
	ErrUnknownField          = errors.New("field is not known to the field metadata")
	ErrUnexpectedComponent   = errors.New("component kind is not supported by this variable")
	ErrUnknownComponentType  = errors.New("unknown component type")
	ErrUnknownOperator       = errors.New("unknown instance list operator")
	ErrUnknownSeparator      = errors.New("unknown composite separator")
	ErrInvalidCombinationMax = errors.New("combination limit must be greater than zero")

	// ErrUnsupportedShape signals that an optimized variable cannot represent a definition.
	// It is a normal outcome: callers keep using the generic expression variable.
	ErrUnsupportedShape = errors.New("definition shape cannot be optimized")

	// ErrCardinalityMismatch is a programming error: ValueAt was called with the wrong entity values.
	ErrCardinalityMismatch = errors.New("entity values do not match the introduced entity types")

	// ErrUnimplementedPath is a programming error: the variable intentionally does not support the call.
	ErrUnimplementedPath = errors.New("operation is not implemented for this variable")
)

// ConfigurationError reports a definition that cannot be compiled.
// It aborts the build of that one variable only; the metadata layer decides whether to skip or flag it.
type ConfigurationError struct {
	EntityTypeName string
	Err            error
}

// NewConfigurationError wraps err for the definition targeting entityTypeName.
func NewConfigurationError(entityTypeName string, err error) *ConfigurationError {
	return &ConfigurationError{EntityTypeName: entityTypeName, Err: err}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s for %q: %s", ErrConfiguration.Error(), e.EntityTypeName, e.Err.Error())
}

// Unwrap makes both ErrConfiguration and the specific cause reachable with errors.Is.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}
