package entity

import "time"

type LoginAction string

const (
	ActionRegister LoginAction = "register"
	ActionLogin    LoginAction = "login"
	ActionLogout   LoginAction = "logout"
)

// UnknownUserID marks audit entries whose principal could not be resolved.
const UnknownUserID = "unknown"

// LoginLog is one immutable entry of the audit trail (logins.json).
type LoginLog struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Action         LoginAction `json:"action"`
	Timestamp      time.Time   `json:"timestamp"`
	IPAddress      string      `json:"ipAddress,omitempty"`
	Location       string      `json:"location,omitempty"`
	Success        bool        `json:"success"`
	Reason         string      `json:"reason,omitempty"`
	FailedAttempts *int        `json:"failedAttempts,omitempty"`
}
