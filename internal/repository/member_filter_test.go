package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sukyoungshin/member-directory/internal/domain"
)

func strPtr(s string) *string                  { return &s }
func intPtr(i int) *int                        { return &i }
func int64Ptr(i int64) *int64                  { return &i }
func genderPtr(g domain.Gender) *domain.Gender { return &g }

func TestMemberFilter_NoParams(t *testing.T) {
	clauses, args := MemberFilter{}.whereClause()

	assert.Empty(t, clauses)
	assert.Empty(t, args)
}

func TestMemberFilter_SingleExactMatches(t *testing.T) {
	tests := []struct {
		name       string
		filter     MemberFilter
		wantClause string
		wantArg    any
	}{
		{"no", MemberFilter{No: strPtr("A1")}, "no=$1", "A1"},
		{"role_id", MemberFilter{RoleID: int64Ptr(3)}, "role_id=$1", int64(3)},
		{"job_title_id", MemberFilter{JobTitleID: int64Ptr(7)}, "job_title_id=$1", int64(7)},
		{"gender", MemberFilter{Gender: genderPtr(domain.GenderFemale)}, "gender=$1", domain.GenderFemale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses, args := tt.filter.whereClause()

			assert.Equal(t, []string{tt.wantClause}, clauses)
			assert.Equal(t, []any{tt.wantArg}, args)
		})
	}
}

func TestMemberFilter_YearComparisons(t *testing.T) {
	tests := []struct {
		name       string
		filter     MemberFilter
		wantClause string
	}{
		{"no flags means equality", MemberFilter{JobStartYear: intPtr(2020)}, "job_start_year=$1"},
		{"less flag", MemberFilter{JobStartYear: intPtr(2020), JobStartYearLess: true}, "job_start_year<$1"},
		{"greater flag", MemberFilter{JobStartYear: intPtr(2020), JobStartYearGreater: true}, "job_start_year>$1"},
		// Both flags set is ambiguous input; the compiler keeps the
		// deterministic rule that less wins.
		{"both flags keep less", MemberFilter{JobStartYear: intPtr(2020), JobStartYearLess: true, JobStartYearGreater: true}, "job_start_year<$1"},
		{"joined year equality", MemberFilter{JoinedYear: intPtr(2018)}, "joined_year=$1"},
		{"joined year greater", MemberFilter{JoinedYear: intPtr(2018), JoinedYearGreater: true}, "joined_year>$1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses, args := tt.filter.whereClause()

			assert.Equal(t, []string{tt.wantClause}, clauses)
			assert.Len(t, args, 1)
		})
	}
}

func TestMemberFilter_CombinedFiltersKeepStableOrder(t *testing.T) {
	filter := MemberFilter{
		No:                strPtr("A1"),
		RoleID:            int64Ptr(1),
		JobTitleID:        int64Ptr(2),
		Gender:            genderPtr(domain.GenderMale),
		JobStartYear:      intPtr(2020),
		JoinedYear:        intPtr(2021),
		JoinedYearGreater: true,
	}

	clauses, args := filter.whereClause()

	assert.Equal(t, []string{
		"no=$1",
		"role_id=$2",
		"job_title_id=$3",
		"gender=$4",
		"job_start_year=$5",
		"joined_year>$6",
	}, clauses)
	assert.Equal(t, []any{"A1", int64(1), int64(2), domain.GenderMale, 2020, 2021}, args)
}

func TestMemberUpdate_SetClausesTrackPresence(t *testing.T) {
	birthday := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	update := MemberUpdate{
		Name:     strPtr("Kim"),
		Birthday: &birthday,
		RoleID:   int64Ptr(4),
	}

	sets, args := update.setClauses()

	assert.Equal(t, []string{"name=$1", "birthday=$2", "role_id=$3"}, sets)
	assert.Equal(t, []any{"Kim", birthday, int64(4)}, args)
}

func TestMemberUpdate_EmptyUpdateHasNoClauses(t *testing.T) {
	sets, args := MemberUpdate{}.setClauses()

	assert.Empty(t, sets)
	assert.Empty(t, args)
}
