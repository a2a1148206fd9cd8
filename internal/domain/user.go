package domain

// User is a record from the read-only user directory. The booking system
// never writes users, it only joins against them when a caller asks for
// the attendee list of an event.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
