// This file defines repository methods for companies. A company is the
// tenant boundary of the system: it is created by an admin, owns rooms and
// keeps the roster of users allowed to book them. Company names are unique
// globally over their normalized form.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/utils"
)

// ErrCompanyNotFound is returned when a company cannot be found in the DB.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepo encapsulates all database queries related to companies.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo constructs a CompanyRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create inserts a new company. The display name is title-cased and the
// normalized form is stored alongside it for the uniqueness constraint. On
// success the ID and timestamp fields of the passed struct are populated.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
	c.Name = utils.TitleName(c.Name)
	c.NameNorm = utils.NormalizeName(c.Name)

	const qInsert = "INSERT INTO companies (admin_id, name, name_norm) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, c.AdminID, c.Name, c.NameNorm)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	// Read the row back so created_at/updated_at defaults are populated.
	const qSelect = "SELECT admin_id, name, name_norm, created_at, updated_at FROM companies WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, c.ID).
		Scan(&c.AdminID, &c.Name, &c.NameNorm, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a company by its ID. It returns ErrCompanyNotFound when no
// row exists.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	const q = "SELECT id, admin_id, name, name_norm, created_at, updated_at FROM companies WHERE id = ?"
	var c model.Company
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.AdminID, &c.Name, &c.NameNorm, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByName fetches a company by display name or slug. Lookup happens over
// the normalized form so URL slugs and cased variants all resolve to the
// same row.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*model.Company, error) {
	norm := utils.SlugToName(name)
	const q = "SELECT id, admin_id, name, name_norm, created_at, updated_at FROM companies WHERE name_norm = ?"
	var c model.Company
	if err := r.db.QueryRowContext(ctx, q, norm).
		Scan(&c.ID, &c.AdminID, &c.Name, &c.NameNorm, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByAdmin returns all companies administered by the given user ordered
// by id.
func (r *CompanyRepo) ListByAdmin(ctx context.Context, adminID uint64) ([]*model.Company, error) {
	const q = `SELECT id, admin_id, name, name_norm, created_at, updated_at
	           FROM companies WHERE admin_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Company
	for rows.Next() {
		c := new(model.Company)
		if err := rows.Scan(&c.ID, &c.AdminID, &c.Name, &c.NameNorm, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
