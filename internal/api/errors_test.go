package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewCapabilityNotFoundError("checkout")
	assert.Equal(t, "capability checkout not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(errors.New("plain")))

	custom := &NotFoundError{Message: "no such thing"}
	assert.Equal(t, "no such thing", custom.Error())
}

func TestWiringError(t *testing.T) {
	err := &WiringError{Missing: []string{"cart.remove", "cart.add"}}
	assert.Equal(t, "handlers not registered: cart.add, cart.remove", err.Error())
	assert.True(t, IsWiringError(err))
	assert.True(t, IsWiringError(fmt.Errorf("construction: %w", err)))
	assert.False(t, IsWiringError(errors.New("plain")))
}

func TestParameterOnDemand(t *testing.T) {
	assert.False(t, Parameter{}.OnDemand())
	assert.False(t, Parameter{Collect: CollectUpfront}.OnDemand())
	assert.True(t, Parameter{Collect: CollectOnDemand}.OnDemand())
}

func TestPreconditionFailureMessage(t *testing.T) {
	assert.Equal(t, "msg", Precondition{Checker: "c", Description: "d", ErrorMessage: "msg"}.FailureMessage())
	assert.Equal(t, "d", Precondition{Checker: "c", Description: "d"}.FailureMessage())
	assert.Equal(t, "precondition c failed", Precondition{Checker: "c"}.FailureMessage())
}
