package models

// Roles assignable to a user. The role lives directly on the user row and is
// re-read from the store on every authenticated request.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
