package dto

import "github.com/sukyoungshin/member-directory/internal/domain"

// CreateMemberRequest payload. role_id and job_title_id are the only
// mandatory fields.
type CreateMemberRequest struct {
	RoleID       *int64  `json:"role_id"`
	JobTitleID   *int64  `json:"job_title_id"`
	No           string  `json:"no"`
	Name         string  `json:"name"`
	ProfileImg   string  `json:"profile_img"`
	Gender       string  `json:"gender"`
	Birthday     *string `json:"birthday"`
	JobStartYear *int    `json:"job_start_year"`
	JoinedYear   *int    `json:"joined_year"`
}

// UpdateMemberRequest payload. Every field is optional; only fields present
// in the request overwrite stored values.
type UpdateMemberRequest struct {
	RoleID       *int64  `json:"role_id"`
	JobTitleID   *int64  `json:"job_title_id"`
	No           *string `json:"no"`
	Name         *string `json:"name"`
	ProfileImg   *string `json:"profile_img"`
	Gender       *string `json:"gender"`
	Birthday     *string `json:"birthday"`
	JobStartYear *int    `json:"job_start_year"`
	JoinedYear   *int    `json:"joined_year"`
}

// MemberResponse payload. Role and JobTitle are attached only when the
// caller asks for them via the include parameter.
type MemberResponse struct {
	ID           int64             `json:"id"`
	No           string            `json:"no"`
	Name         string            `json:"name"`
	ProfileImg   string            `json:"profile_img"`
	Gender       domain.Gender     `json:"gender"`
	Birthday     *string           `json:"birthday"`
	JobStartYear *int              `json:"job_start_year"`
	JoinedYear   *int              `json:"joined_year"`
	RoleID       int64             `json:"role_id"`
	JobTitleID   int64             `json:"job_title_id"`
	Role         *RoleResponse     `json:"role,omitempty"`
	JobTitle     *JobTitleResponse `json:"job_title,omitempty"`
}

// RoleResponse payload.
type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JobTitleResponse payload.
type JobTitleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DeleteMemberResponse payload.
type DeleteMemberResponse struct {
	IsSuccess bool `json:"isSuccess"`
}
