package domain

import (
	"fmt"
	"strings"
)

const (
	CauseNone         InitFailureCause = ""
	CauseInitialCheck InitFailureCause = "initial_check"
	CauseResync       InitFailureCause = "resync"
)

type (
	// InitFailureCause tells which step of the initialization protocol failed.
	InitFailureCause string

	// InitOutcome is Ready when Cause is CauseNone. On failure, CheckAPI holds the last health
	// snapshot seen, SendData the service-reported resync failure and Err any transport error.
	InitOutcome struct {
		Cause    InitFailureCause
		CheckAPI *CheckAPIResult
		SendData *SendDataResult
		Err      error
		Resynced bool
	}
)

func ReadyOutcome(result CheckAPIResult, resynced bool) InitOutcome {
	return InitOutcome{CheckAPI: &result, Resynced: resynced}
}

func InitialCheckFailed(result *CheckAPIResult, err error) InitOutcome {
	return InitOutcome{Cause: CauseInitialCheck, CheckAPI: result, Err: err}
}

func ResyncFailed(result *SendDataResult, err error) InitOutcome {
	return InitOutcome{Cause: CauseResync, SendData: result, Err: err, Resynced: true}
}

func (o InitOutcome) Ready() bool {
	return o.Cause == CauseNone
}

// Failure describes a failed outcome as an error, nil when ready.
func (o InitOutcome) Failure() error {
	if o.Ready() {
		return nil
	}

	if o.Err != nil {
		return fmt.Errorf("posapi initialization failed at %s: %w", o.Cause, o.Err)
	}

	switch o.Cause {
	case CauseResync:
		if o.SendData != nil {
			return fmt.Errorf("posapi initialization failed at %s: [%s] %s", o.Cause, o.SendData.ErrorCode, o.SendData.Message)
		}
	case CauseInitialCheck:
		if o.CheckAPI != nil {
			return fmt.Errorf("posapi initialization failed at %s: %s", o.Cause, describeCheck(*o.CheckAPI))
		}
	}

	return fmt.Errorf("posapi initialization failed at %s", o.Cause)
}

func describeCheck(r CheckAPIResult) string {
	var parts []string
	if r.Message != "" {
		parts = append(parts, r.Message)
	}

	for _, s := range r.subsystems() {
		if s.status.Failed() {
			parts = append(parts, fmt.Sprintf("%s: %s", s.name, s.status.Message))
		}
	}

	if len(parts) == 0 {
		return "service reported failure"
	}

	return strings.Join(parts, "; ")
}
