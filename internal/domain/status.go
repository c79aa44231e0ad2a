package domain

import "strings"

// staleDataMarker prefixes a config failure message when the local register data is stale
// and a sendData call repairs it.
const staleDataMarker = "[100]"

type (
	// ServiceStatus is the health of one PosAPI subsystem.
	ServiceStatus struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	}

	// CheckAPIResult is the /checkApi snapshot. Subsystem failures are carried as data.
	CheckAPIResult struct {
		Success  bool          `json:"success"`
		Message  string        `json:"message,omitempty"`
		Config   ServiceStatus `json:"config"`
		Database ServiceStatus `json:"database"`
		Network  ServiceStatus `json:"network"`
	}
)

func StatusOK() ServiceStatus {
	return ServiceStatus{Success: true}
}

func StatusFailed(message string) ServiceStatus {
	return ServiceStatus{Message: message}
}

func (s ServiceStatus) Failed() bool {
	return !s.Success
}

// IsStaleData reports whether the status is the resync-recoverable "[100]" failure.
func (s ServiceStatus) IsStaleData() bool {
	return !s.Success && strings.HasPrefix(s.Message, staleDataMarker)
}

// NeedsResync reports whether the config subsystem asks for a resync.
func (r CheckAPIResult) NeedsResync() bool {
	return r.Config.IsStaleData()
}

// FailedSubsystems lists the names of unhealthy subsystems in config, database, network order.
func (r CheckAPIResult) FailedSubsystems() []string {
	var failed []string

	for _, s := range r.subsystems() {
		if s.status.Failed() {
			failed = append(failed, s.name)
		}
	}

	return failed
}

type namedStatus struct {
	name   string
	status ServiceStatus
}

func (r CheckAPIResult) subsystems() []namedStatus {
	return []namedStatus{
		{"config", r.Config},
		{"database", r.Database},
		{"network", r.Network},
	}
}
