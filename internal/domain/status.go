package domain

type SystemState string

const (
	SystemActive  SystemState = "ACTIVE"
	SystemStopped SystemState = "STOPPED"
	SystemError   SystemState = "ERROR"
)

// SystemStatus is the singleton health view of the remote system:
// overall state plus two independent connectivity flags (venue API and
// push stream).
type SystemStatus struct {
	Status             SystemState `json:"status"`
	IGConnected        bool        `json:"igConnected"`
	StreamConnected    bool        `json:"streamConnected"`
	SessionAgeSec      int64       `json:"sessionAgeSec"`
	SecondsSinceUpdate int64       `json:"secondsSinceUpdate"`
}

// StatusUpdate is a partial patch for SystemStatus. Only fields present
// in the payload overwrite the mirror; absent fields keep their value.
type StatusUpdate struct {
	Status             *SystemState `json:"status,omitempty"`
	IGConnected        *bool        `json:"igConnected,omitempty"`
	StreamConnected    *bool        `json:"streamConnected,omitempty"`
	SessionAgeSec      *int64       `json:"sessionAgeSec,omitempty"`
	SecondsSinceUpdate *int64       `json:"secondsSinceUpdate,omitempty"`
}
