package types

import "github.com/google/uuid"

// Shopper identifies the owner of a cart: an authenticated customer or an
// anonymous session. CustomerID wins when both are present.
type Shopper struct {
	CustomerID *uuid.UUID
	SessionID  *string
}

// CustomerShopper builds an authenticated shopper.
func CustomerShopper(id uuid.UUID) Shopper {
	return Shopper{CustomerID: &id}
}

// SessionShopper builds an anonymous shopper keyed by an opaque session id.
func SessionShopper(sessionID string) Shopper {
	if sessionID == "" {
		return Shopper{}
	}
	return Shopper{SessionID: &sessionID}
}

// Valid reports whether the shopper can own a cart.
func (s Shopper) Valid() bool {
	if s.CustomerID != nil && *s.CustomerID != uuid.Nil {
		return true
	}
	return s.SessionID != nil && *s.SessionID != ""
}

// Key returns a stable string identity, used for logging only.
func (s Shopper) Key() string {
	if s.CustomerID != nil && *s.CustomerID != uuid.Nil {
		return "customer:" + s.CustomerID.String()
	}
	if s.SessionID != nil && *s.SessionID != "" {
		return "session:" + *s.SessionID
	}
	return ""
}
