package models

// Session is the verified identity attached to a request. It is resolved by
// the auth middleware from the bearer token and the session store, and passed
// explicitly into the service layer; nothing below the HTTP boundary reads
// ambient auth state.
type Session struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"` // "student" | "admin"
}

// IsAdmin reports whether the session carries the admin capability.
func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}
