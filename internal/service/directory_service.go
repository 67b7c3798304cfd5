package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sukyoungshin/member-directory/internal/domain"
	"github.com/sukyoungshin/member-directory/internal/events"
	"github.com/sukyoungshin/member-directory/internal/repository"
	apperrors "github.com/sukyoungshin/member-directory/pkg/util"
)

// DirectoryService is the single entry point for directory queries and
// mutations. It holds no state of its own: every operation reads or writes
// the store directly.
type DirectoryService struct {
	members    repository.MemberRepository
	roles      repository.RoleRepository
	jobTitles  repository.JobTitleRepository
	dispatcher events.Dispatcher
}

// DirectoryDependencies encapsulates repositories required by the service.
type DirectoryDependencies struct {
	MemberRepo   repository.MemberRepository
	RoleRepo     repository.RoleRepository
	JobTitleRepo repository.JobTitleRepository
	Dispatcher   events.Dispatcher
}

// CreateMemberInput carries the create payload. RoleID and JobTitleID are
// mandatory; everything else is optional and may be left blank.
type CreateMemberInput struct {
	No           string
	Name         string
	ProfileImg   string
	Gender       domain.Gender
	Birthday     *time.Time
	JobStartYear *int
	JoinedYear   *int
	RoleID       int64
	JobTitleID   int64
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		members:    deps.MemberRepo,
		roles:      deps.RoleRepo,
		jobTitles:  deps.JobTitleRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListMembers returns every member satisfying all supplied filter
// predicates, or every member when none are supplied.
func (s *DirectoryService) ListMembers(ctx context.Context, filter repository.MemberFilter) ([]domain.Member, error) {
	list, err := s.members.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetMember fetches a single member by surrogate id.
func (s *DirectoryService) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// CreateMember validates that the referenced role and job title exist, then
// inserts the member. The store assigns the surrogate id.
func (s *DirectoryService) CreateMember(ctx context.Context, input CreateMemberInput) (*domain.Member, error) {
	role, err := s.roles.GetByID(ctx, input.RoleID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if role == nil {
		return nil, apperrors.NewValidationError("role does not exist", map[string]any{"role_id": input.RoleID})
	}

	title, err := s.jobTitles.GetByID(ctx, input.JobTitleID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if title == nil {
		return nil, apperrors.NewValidationError("job title does not exist", map[string]any{"job_title_id": input.JobTitleID})
	}

	member := &domain.Member{
		No:           input.No,
		Name:         input.Name,
		ProfileImg:   input.ProfileImg,
		Gender:       input.Gender,
		Birthday:     input.Birthday,
		JobStartYear: input.JobStartYear,
		JoinedYear:   input.JoinedYear,
		RoleID:       input.RoleID,
		JobTitleID:   input.JobTitleID,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberCreated, member.ID, events.MemberCreatedPayload{
		No:         member.No,
		Name:       member.Name,
		Gender:     member.Gender,
		RoleID:     member.RoleID,
		JobTitleID: member.JobTitleID,
	})
	return member, nil
}

// UpdateMember applies a partial update to the member matching id. Only
// fields present in the update overwrite stored values. Foreign keys are
// not re-validated here; the store's constraints backstop dangling
// references.
func (s *DirectoryService) UpdateMember(ctx context.Context, id int64, update repository.MemberUpdate) (*domain.Member, error) {
	member, err := s.members.Update(ctx, id, update)
	if err != nil {
		if de := apperrors.ToDomainError(err); de.Code == "NOT_FOUND" {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberUpdated, member.ID, events.MemberUpdatedPayload{
		UpdatedFields: updatedFields(update),
	})
	return member, nil
}

// DeleteMember removes the member matching id. Deleting a non-existent id
// reports success all the same; only store failures surface as errors.
func (s *DirectoryService) DeleteMember(ctx context.Context, id int64) (bool, error) {
	affected, err := s.members.Delete(ctx, id)
	if err != nil {
		return false, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMemberDeleted, id, events.MemberDeletedPayload{
		Existed: affected > 0,
	})
	return true, nil
}

// ResolveRole fetches the role referenced by the member, or nil when the
// foreign key matches nothing.
func (s *DirectoryService) ResolveRole(ctx context.Context, member *domain.Member) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, member.RoleID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

// ResolveJobTitle fetches the job title referenced by the member, or nil
// when the foreign key matches nothing.
func (s *DirectoryService) ResolveJobTitle(ctx context.Context, member *domain.Member) (*domain.JobTitle, error) {
	title, err := s.jobTitles.GetByID(ctx, member.JobTitleID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return title, nil
}

// ListRoles returns the fixed set of role options.
func (s *DirectoryService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}

// ListJobTitles returns the fixed set of job title options.
func (s *DirectoryService) ListJobTitles(ctx context.Context) ([]domain.JobTitle, error) {
	titles, err := s.jobTitles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return titles, nil
}

func (s *DirectoryService) publish(ctx context.Context, eventType events.EventType, memberID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MemberID:  memberID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func updatedFields(update repository.MemberUpdate) []string {
	fields := []string{}
	if update.No != nil {
		fields = append(fields, "no")
	}
	if update.Name != nil {
		fields = append(fields, "name")
	}
	if update.ProfileImg != nil {
		fields = append(fields, "profile_img")
	}
	if update.Gender != nil {
		fields = append(fields, "gender")
	}
	if update.Birthday != nil {
		fields = append(fields, "birthday")
	}
	if update.JobStartYear != nil {
		fields = append(fields, "job_start_year")
	}
	if update.JoinedYear != nil {
		fields = append(fields, "joined_year")
	}
	if update.RoleID != nil {
		fields = append(fields, "role_id")
	}
	if update.JobTitleID != nil {
		fields = append(fields, "job_title_id")
	}
	return fields
}
