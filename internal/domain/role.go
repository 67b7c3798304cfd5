package domain

// Role represents an organizational team a member belongs to.
// Roles are read-only from the directory's perspective.
type Role struct {
	ID   int64
	Name string
}
