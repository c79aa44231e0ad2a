package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOutcome_Ready(t *testing.T) {
	t.Parallel()

	outcome := ReadyOutcome(CheckAPIResult{Success: true}, true)

	assert.True(t, outcome.Ready())
	assert.True(t, outcome.Resynced)
	assert.Equal(t, CauseNone, outcome.Cause)
	assert.NoError(t, outcome.Failure())
}

func TestInitOutcome_Failure(t *testing.T) {
	t.Parallel()

	transportErr := NewTransportError("/checkApi", 0, errors.New("connection refused"))

	tests := []struct {
		name     string
		outcome  InitOutcome
		contains string
	}{
		{
			name:     "initial check transport failure",
			outcome:  InitialCheckFailed(nil, transportErr),
			contains: "connection refused",
		},
		{
			name: "initial check reported failure",
			outcome: InitialCheckFailed(&CheckAPIResult{
				Config:   StatusFailed("[205] db down"),
				Database: StatusOK(),
				Network:  StatusOK(),
			}, nil),
			contains: "config: [205] db down",
		},
		{
			name:     "resync reported failure",
			outcome:  ResyncFailed(&SendDataResult{ErrorCode: "9", Message: "busy"}, nil),
			contains: "[9] busy",
		},
		{
			name:     "bare cause",
			outcome:  InitOutcome{Cause: CauseResync},
			contains: "resync",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.False(t, tt.outcome.Ready())
			require.Error(t, tt.outcome.Failure())
			assert.Contains(t, tt.outcome.Failure().Error(), tt.contains)
		})
	}
}

func TestInitOutcome_FailureWrapsTransportError(t *testing.T) {
	t.Parallel()

	outcome := ResyncFailed(nil, NewTransportError("/sendData", 502, errors.New("bad gateway")))

	assert.True(t, outcome.Resynced)
	assert.ErrorIs(t, outcome.Failure(), ErrTransport)
	assert.True(t, IsTransportError(outcome.Err))
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()

	withStatus := NewTransportError("/put", 500, errors.New("internal"))
	assert.Equal(t, "posapi transport failure /put (HTTP 500): internal", withStatus.Error())

	withoutStatus := NewTransportError("/put", 0, ErrCircuitOpen)
	assert.ErrorIs(t, withoutStatus, ErrCircuitOpen)
	assert.ErrorIs(t, withoutStatus, ErrTransport)
}

func TestDomainError(t *testing.T) {
	t.Parallel()

	err := NewInvalidArgumentError("regNo", "must not be empty")

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "INVALID_ARGUMENT", err.Code)
	assert.Equal(t, "regNo", err.Details["argument"])
	assert.Equal(t, "invalid regNo: must not be empty: invalid argument", err.Error())
}
