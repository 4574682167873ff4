package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
)

// MemberRepo manages a company's authorized-user roster. A user may book a
// company's rooms when they are its admin or appear on this roster.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo constructs a MemberRepo with the given DB handle.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// Add places a user on the company roster. Adding an existing member is a
// no-op thanks to the (company_id, user_id) primary key.
func (r *MemberRepo) Add(ctx context.Context, companyID, userID uint64) error {
	const q = `INSERT INTO company_members (company_id, user_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, companyID, userID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Remove takes a user off the roster and returns the number of rows removed
// (0 when the user was not a member).
func (r *MemberRepo) Remove(ctx context.Context, companyID, userID uint64) (int64, error) {
	const q = `DELETE FROM company_members WHERE company_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, companyID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IsMember reports whether the user appears on the company roster. It does
// not consider the company admin; callers combine both checks.
func (r *MemberRepo) IsMember(ctx context.Context, companyID, userID uint64) (bool, error) {
	const q = `SELECT 1 FROM company_members WHERE company_id = ? AND user_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, companyID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListUsers returns the roster with user display fields joined in, ordered
// by when each member was added.
func (r *MemberRepo) ListUsers(ctx context.Context, companyID uint64) ([]model.User, error) {
	const q = `SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at
	           FROM company_members cm
	           JOIN users u ON u.id = cm.user_id
	           WHERE cm.company_id = ?
	           ORDER BY cm.created_at`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
