package domain

import (
	"encoding/json"
	"time"
)

// Notification capacities. Both collections keep the newest entry at the
// front and silently evict the oldest beyond capacity.
const (
	NotificationCapacity = 50
	LogLineCapacity      = 500
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

type Notification struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Severity  Severity        `json:"severity"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Epic      string          `json:"epic,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Read      bool            `json:"read"`
}

type LogLine struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     Severity  `json:"level"`
	Message   string    `json:"message"`
	Epic      string    `json:"epic,omitempty"`
}
