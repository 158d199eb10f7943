// Package gate holds the passcode check in front of the admin pages.
// It only keeps casual visitors out of the demo and is not access control.
package gate

import "crypto/subtle"

// HeaderName carries the passcode on admin requests
const HeaderName = "X-Admin-Passcode"

// DemoGate compares a submitted passcode with the configured one
type DemoGate struct {
	passcode []byte
}

// New creates a gate for the given passcode
func New(passcode string) *DemoGate {
	return &DemoGate{passcode: []byte(passcode)}
}

// Check reports whether submitted matches the configured passcode
func (g *DemoGate) Check(submitted string) bool {
	if len(g.passcode) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(g.passcode, []byte(submitted)) == 1
}
