package models

import "time"

// LandingView is the default shell view. A snapshot pointing at it carries
// no state worth offering to restore.
const LandingView = "landing"

// ShellSnapshot is the shell's resume-where-you-left-off state, persisted
// independently of the auth session pointer.
type ShellSnapshot struct {
	IsLoggedIn bool      `json:"isLoggedIn"`
	View       string    `json:"view"`
	Timestamp  time.Time `json:"timestamp"`
}

// WorthRestoring reports whether the snapshot records prior non-landing
// state. Safe on a nil receiver.
func (s *ShellSnapshot) WorthRestoring() bool {
	if s == nil {
		return false
	}
	return s.IsLoggedIn || (s.View != "" && s.View != LandingView)
}
