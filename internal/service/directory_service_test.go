package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukyoungshin/member-directory/internal/domain"
	"github.com/sukyoungshin/member-directory/internal/events"
	"github.com/sukyoungshin/member-directory/internal/repository"
	apperrors "github.com/sukyoungshin/member-directory/pkg/util"
)

// fakeMemberRepo is an in-memory MemberRepository double.
type fakeMemberRepo struct {
	members    map[int64]domain.Member
	nextID     int64
	lastFilter *repository.MemberFilter
	failWith   error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[int64]domain.Member{}, nextID: 1}
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	if f.failWith != nil {
		return f.failWith
	}
	member.ID = f.nextID
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	f.nextID++
	f.members[member.ID] = *member
	return nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, id int64, update repository.MemberUpdate) (*domain.Member, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	member, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Name != nil {
		member.Name = *update.Name
	}
	if update.No != nil {
		member.No = *update.No
	}
	if update.RoleID != nil {
		member.RoleID = *update.RoleID
	}
	f.members[id] = member
	return &member, nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &member, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, filter repository.MemberFilter) ([]domain.Member, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.lastFilter = &filter
	result := make([]domain.Member, 0, len(f.members))
	for _, member := range f.members {
		result = append(result, member)
	}
	return result, nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	if _, ok := f.members[id]; !ok {
		return 0, nil
	}
	delete(f.members, id)
	return 1, nil
}

// fakeRoleRepo serves a fixed role set.
type fakeRoleRepo struct {
	roles    map[int64]domain.Role
	failWith error
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	role, ok := f.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := make([]domain.Role, 0, len(f.roles))
	for _, role := range f.roles {
		result = append(result, role)
	}
	return result, nil
}

// fakeJobTitleRepo serves a fixed job title set.
type fakeJobTitleRepo struct {
	titles   map[int64]domain.JobTitle
	failWith error
}

func (f *fakeJobTitleRepo) GetByID(ctx context.Context, id int64) (*domain.JobTitle, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	title, ok := f.titles[id]
	if !ok {
		return nil, nil
	}
	return &title, nil
}

func (f *fakeJobTitleRepo) List(ctx context.Context) ([]domain.JobTitle, error) {
	result := make([]domain.JobTitle, 0, len(f.titles))
	for _, title := range f.titles {
		result = append(result, title)
	}
	return result, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

type directoryFixture struct {
	service    *DirectoryService
	members    *fakeMemberRepo
	roles      *fakeRoleRepo
	jobTitles  *fakeJobTitleRepo
	dispatcher *recordingDispatcher
}

func newDirectoryFixture() directoryFixture {
	members := newFakeMemberRepo()
	roles := &fakeRoleRepo{roles: map[int64]domain.Role{
		1: {ID: 1, Name: "frontend"},
		2: {ID: 2, Name: "backend"},
	}}
	titles := &fakeJobTitleRepo{titles: map[int64]domain.JobTitle{
		1: {ID: 1, Name: "manager"},
		2: {ID: 2, Name: "staff"},
	}}
	dispatcher := &recordingDispatcher{}

	return directoryFixture{
		service: NewDirectoryService(DirectoryDependencies{
			MemberRepo:   members,
			RoleRepo:     roles,
			JobTitleRepo: titles,
			Dispatcher:   dispatcher,
		}),
		members:    members,
		roles:      roles,
		jobTitles:  titles,
		dispatcher: dispatcher,
	}
}

func TestCreateMember_UnknownRoleFailsValidation(t *testing.T) {
	fx := newDirectoryFixture()

	_, err := fx.service.CreateMember(context.Background(), CreateMemberInput{
		No:         "A1",
		RoleID:     99,
		JobTitleID: 1,
	})

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION", de.Code)
	assert.Equal(t, int64(99), de.Details["role_id"])
	assert.Empty(t, fx.members.members, "no insert must happen")
	assert.Empty(t, fx.dispatcher.published)
}

func TestCreateMember_UnknownJobTitleFailsValidation(t *testing.T) {
	fx := newDirectoryFixture()

	_, err := fx.service.CreateMember(context.Background(), CreateMemberInput{
		RoleID:     1,
		JobTitleID: 42,
	})

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION", de.Code)
	assert.Equal(t, int64(42), de.Details["job_title_id"])
	assert.Empty(t, fx.members.members)
}

func TestCreateMember_Success(t *testing.T) {
	fx := newDirectoryFixture()
	year := 2020

	member, err := fx.service.CreateMember(context.Background(), CreateMemberInput{
		No:           "A1",
		Name:         "Kim",
		Gender:       domain.GenderFemale,
		JobStartYear: &year,
		RoleID:       1,
		JobTitleID:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), member.ID, "store assigns the surrogate id")
	assert.Equal(t, "A1", member.No)
	assert.Len(t, fx.members.members, 1)

	require.Len(t, fx.dispatcher.published, 1)
	assert.Equal(t, events.EventMemberCreated, fx.dispatcher.published[0].Type)
}

func TestCreateMember_EmptyOptionalFieldsStillSucceed(t *testing.T) {
	fx := newDirectoryFixture()

	member, err := fx.service.CreateMember(context.Background(), CreateMemberInput{
		RoleID:     1,
		JobTitleID: 1,
	})

	require.NoError(t, err)
	assert.Zero(t, member.No)
	assert.Len(t, fx.members.members, 1)
}

func TestCreateMember_DuplicateNoIsAccepted(t *testing.T) {
	fx := newDirectoryFixture()
	input := CreateMemberInput{No: "A1", RoleID: 1, JobTitleID: 1}

	first, err := fx.service.CreateMember(context.Background(), input)
	require.NoError(t, err)
	second, err := fx.service.CreateMember(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, fx.members.members, 2)
}

func TestUpdateMember_MissingIDFailsNotFound(t *testing.T) {
	fx := newDirectoryFixture()
	name := "Lee"

	_, err := fx.service.UpdateMember(context.Background(), 123, repository.MemberUpdate{Name: &name})

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Empty(t, fx.dispatcher.published)
}

func TestUpdateMember_PartialUpdateLeavesAbsentFieldsUntouched(t *testing.T) {
	fx := newDirectoryFixture()
	created, err := fx.service.CreateMember(context.Background(), CreateMemberInput{
		No: "A1", Name: "Kim", RoleID: 1, JobTitleID: 1,
	})
	require.NoError(t, err)

	name := "Lee"
	updated, err := fx.service.UpdateMember(context.Background(), created.ID, repository.MemberUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Lee", updated.Name)
	assert.Equal(t, "A1", updated.No, "absent field must not change")
	assert.Equal(t, int64(1), updated.RoleID)
}

func TestUpdateMember_DoesNotRevalidateForeignKeys(t *testing.T) {
	fx := newDirectoryFixture()
	created, err := fx.service.CreateMember(context.Background(), CreateMemberInput{RoleID: 1, JobTitleID: 1})
	require.NoError(t, err)

	// Unlike create, update accepts a role id the validator never checks.
	danglingRole := int64(99)
	updated, err := fx.service.UpdateMember(context.Background(), created.ID, repository.MemberUpdate{RoleID: &danglingRole})

	require.NoError(t, err)
	assert.Equal(t, danglingRole, updated.RoleID)
}

func TestDeleteMember_ExistingAndMissingBothSucceed(t *testing.T) {
	fx := newDirectoryFixture()
	created, err := fx.service.CreateMember(context.Background(), CreateMemberInput{RoleID: 1, JobTitleID: 1})
	require.NoError(t, err)

	ok, err := fx.service.DeleteMember(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fx.members.members)

	ok, err = fx.service.DeleteMember(context.Background(), 999)
	require.NoError(t, err)
	assert.True(t, ok, "deleting a missing id is a successful no-op")
}

func TestDeleteMember_StoreFailureSurfaces(t *testing.T) {
	fx := newDirectoryFixture()
	fx.members.failWith = errors.New("connection refused")

	ok, err := fx.service.DeleteMember(context.Background(), 1)

	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, "STORE_FAILURE", apperrors.ToDomainError(err).Code)
}

func TestListMembers_PassesFilterThrough(t *testing.T) {
	fx := newDirectoryFixture()
	year := 2020
	filter := repository.MemberFilter{JobStartYear: &year, JobStartYearLess: true}

	_, err := fx.service.ListMembers(context.Background(), filter)

	require.NoError(t, err)
	require.NotNil(t, fx.members.lastFilter)
	assert.Equal(t, filter, *fx.members.lastFilter)
}

func TestResolveRole_AbsentForeignKeyYieldsNil(t *testing.T) {
	fx := newDirectoryFixture()
	member := &domain.Member{ID: 1, RoleID: 404, JobTitleID: 404}

	role, err := fx.service.ResolveRole(context.Background(), member)
	require.NoError(t, err)
	assert.Nil(t, role)

	title, err := fx.service.ResolveJobTitle(context.Background(), member)
	require.NoError(t, err)
	assert.Nil(t, title)
}

func TestResolveRole_StoreFailurePropagates(t *testing.T) {
	fx := newDirectoryFixture()
	fx.roles.failWith = errors.New("store unavailable")
	member := &domain.Member{ID: 1, RoleID: 1}

	_, err := fx.service.ResolveRole(context.Background(), member)

	require.Error(t, err)
	assert.Equal(t, "STORE_FAILURE", apperrors.ToDomainError(err).Code)
}
