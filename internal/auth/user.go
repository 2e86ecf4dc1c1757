// Package auth provides CAS ticket validation and in-process session
// management for the portal's authenticated surface.
package auth

// Error codes returned by authentication operations.
const (
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeSessionExpired = "SESSION_EXPIRED"
	CodeInvalidTicket  = "INVALID_TICKET"
)

// User is the identity resolved from a validated CAS ticket.
type User struct {
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	GivenName   string `json:"givenName,omitempty"`
	Surname     string `json:"surname,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}
