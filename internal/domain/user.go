package domain

// User identifies who a conversation turn runs as. Unauthenticated requests
// run as the shared anonymous user, matching the platform's guest flow.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`
}
