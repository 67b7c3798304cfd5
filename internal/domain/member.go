package domain

import "time"

// Gender enumerates the options the directory form offers.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Member is a person record in the directory, linked to a Role and a JobTitle.
// The employee number `No` is the business key; it carries no uniqueness
// guarantee (duplicate submissions are accepted as-is).
type Member struct {
	ID           int64
	No           string
	Name         string
	ProfileImg   string
	Gender       Gender
	Birthday     *time.Time
	JobStartYear *int
	JoinedYear   *int
	RoleID       int64
	JobTitleID   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
