package domain

import "encoding/json"

// Stage is the position of the console in the two-step login handshake.
type Stage int

const (
	StageAwaitingCredentials Stage = iota
	StageAwaitingOTP
	StageAuthenticated
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingCredentials:
		return "awaiting_credentials"
	case StageAwaitingOTP:
		return "awaiting_otp"
	case StageAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// StoredSession is what a session store persists between runs.
type StoredSession struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}
