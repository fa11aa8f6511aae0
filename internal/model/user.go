package model

// User identifies the authenticated account holder.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session pairs a bearer token with the user it belongs to. It is
// created from a login or register response and cleared on logout or
// the first 401 from an authenticated call.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
