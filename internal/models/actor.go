package models

// Actor identifies the caller of a service operation.
type Actor struct {
	ID   string
	Role UserRole
}

// SystemActor performs administrative transitions such as auto-completion.
var SystemActor = Actor{ID: "system", Role: RoleAdmin}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
