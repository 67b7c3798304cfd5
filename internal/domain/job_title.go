package domain

// JobTitle represents a member's job function.
// Read-only, same contract as Role.
type JobTitle struct {
	ID   int64
	Name string
}
