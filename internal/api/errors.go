package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFoundError represents a resource not found error with contextual
// information. It is used for lookups (capabilities, parked executions,
// manifest files) where the caller may want to branch on the condition.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "capability", "handler", "checker", "resume token")
	ResourceType string

	// ResourceName is the specific identifier that was not found
	ResourceName string

	// Message provides a custom error message if the default format is
	// insufficient
	Message string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// NewNotFoundError creates a new NotFoundError with the specified resource
// type and name.
func NewNotFoundError(resourceType, resourceName string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
	}
}

// Specific NotFoundError constructors for each resource type.
var (
	// NewCapabilityNotFoundError creates a capability not found error.
	NewCapabilityNotFoundError = func(id string) *NotFoundError {
		return NewNotFoundError("capability", id)
	}

	// NewHandlerNotFoundError creates a handler not found error.
	NewHandlerNotFoundError = func(ref string) *NotFoundError {
		return NewNotFoundError("handler", ref)
	}

	// NewCheckerNotFoundError creates a checker not found error.
	NewCheckerNotFoundError = func(ref string) *NotFoundError {
		return NewNotFoundError("checker", ref)
	}
)

// WiringError reports handler references the engine could not resolve at
// construction time. This is the one failure in the whole engine that is
// fatal and immediate: a manifest whose capabilities (or their undo
// capabilities) reference unregistered handlers must not start executing
// intents.
type WiringError struct {
	// Missing holds the unresolved handler references
	Missing []string
}

// Error implements the error interface, naming every missing reference in
// stable order.
func (e *WiringError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("handlers not registered: %s", strings.Join(missing, ", "))
}

// IsWiringError checks if an error is a WiringError using error unwrapping.
func IsWiringError(err error) bool {
	var wiringErr *WiringError
	return errors.As(err, &wiringErr)
}
