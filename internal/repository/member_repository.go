package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sukyoungshin/member-directory/internal/domain"
)

const memberColumns = `id, no, name, profile_img, gender, birthday, job_start_year, joined_year, role_id, job_title_id, created_at, updated_at`

// MemberFilter captures the optional listing parameters. Nil fields add no
// predicate. For the two year fields the caller supplies the comparison
// value plus independent less/greater flags: neither set means equality,
// less means strict <, greater means strict >. When both flags are set the
// less flag wins (longstanding precedence, kept deterministic rather than
// rejected).
type MemberFilter struct {
	No                  *string
	RoleID              *int64
	JobTitleID          *int64
	Gender              *domain.Gender
	JobStartYear        *int
	JobStartYearLess    bool
	JobStartYearGreater bool
	JoinedYear          *int
	JoinedYearLess      bool
	JoinedYearGreater   bool
}

// MemberUpdate carries a partial update. Only non-nil fields overwrite the
// stored values; absent fields are left untouched.
type MemberUpdate struct {
	No           *string
	Name         *string
	ProfileImg   *string
	Gender       *domain.Gender
	Birthday     *time.Time
	JobStartYear *int
	JoinedYear   *int
	RoleID       *int64
	JobTitleID   *int64
}

// MemberRepository handles persistence for directory members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, id int64, update MemberUpdate) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]domain.Member, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository instantiates the repository.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (no, name, profile_img, gender, birthday, job_start_year, joined_year, role_id, job_title_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.No,
		member.Name,
		member.ProfileImg,
		member.Gender,
		member.Birthday,
		member.JobStartYear,
		member.JoinedYear,
		member.RoleID,
		member.JobTitleID,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) Update(ctx context.Context, id int64, update MemberUpdate) (*domain.Member, error) {
	sets, args := update.setClauses()
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE members SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), memberColumns)

	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, args...).Scan(memberScanTargets(&member)...); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE id=$1`, memberColumns)

	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, id).Scan(memberScanTargets(&member)...); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]domain.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members`, memberColumns)
	clauses, args := filter.whereClause()
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// Delete removes the member row. The affected-row count is informational
// only; deleting a missing id is still a successful no-op.
func (r *memberRepository) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// whereClause compiles the filter into conjunctive predicates with
// positional args. Clause order is fixed for debuggability; conjunction is
// commutative so correctness does not depend on it.
func (f MemberFilter) whereClause() ([]string, []any) {
	clauses := []string{}
	args := []any{}

	if f.No != nil {
		args = append(args, *f.No)
		clauses = append(clauses, fmt.Sprintf("no=$%d", len(args)))
	}
	if f.RoleID != nil {
		args = append(args, *f.RoleID)
		clauses = append(clauses, fmt.Sprintf("role_id=$%d", len(args)))
	}
	if f.JobTitleID != nil {
		args = append(args, *f.JobTitleID)
		clauses = append(clauses, fmt.Sprintf("job_title_id=$%d", len(args)))
	}
	if f.Gender != nil {
		args = append(args, *f.Gender)
		clauses = append(clauses, fmt.Sprintf("gender=$%d", len(args)))
	}
	if f.JobStartYear != nil {
		args = append(args, *f.JobStartYear)
		clauses = append(clauses, fmt.Sprintf("job_start_year%s$%d", yearOperator(f.JobStartYearLess, f.JobStartYearGreater), len(args)))
	}
	if f.JoinedYear != nil {
		args = append(args, *f.JoinedYear)
		clauses = append(clauses, fmt.Sprintf("joined_year%s$%d", yearOperator(f.JoinedYearLess, f.JoinedYearGreater), len(args)))
	}
	return clauses, args
}

// yearOperator picks the comparison for a year predicate. The less flag is
// checked first, so less wins when both flags are set.
func yearOperator(less, greater bool) string {
	switch {
	case less:
		return "<"
	case greater:
		return ">"
	default:
		return "="
	}
}

func (u MemberUpdate) setClauses() ([]string, []any) {
	sets := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if u.No != nil {
		add("no", *u.No)
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.ProfileImg != nil {
		add("profile_img", *u.ProfileImg)
	}
	if u.Gender != nil {
		add("gender", *u.Gender)
	}
	if u.Birthday != nil {
		add("birthday", *u.Birthday)
	}
	if u.JobStartYear != nil {
		add("job_start_year", *u.JobStartYear)
	}
	if u.JoinedYear != nil {
		add("joined_year", *u.JoinedYear)
	}
	if u.RoleID != nil {
		add("role_id", *u.RoleID)
	}
	if u.JobTitleID != nil {
		add("job_title_id", *u.JobTitleID)
	}
	return sets, args
}

func memberScanTargets(member *domain.Member) []any {
	return []any{
		&member.ID,
		&member.No,
		&member.Name,
		&member.ProfileImg,
		&member.Gender,
		&member.Birthday,
		&member.JobStartYear,
		&member.JoinedYear,
		&member.RoleID,
		&member.JobTitleID,
		&member.CreatedAt,
		&member.UpdatedAt,
	}
}

func scanMembers(rows pgx.Rows) ([]domain.Member, error) {
	var result []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(memberScanTargets(&member)...); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}
