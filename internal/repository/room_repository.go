package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/utils"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides methods to create and retrieve rooms. Room names are
// unique within their company over the normalized form.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room. CompanyID, AdminID and Name must be set. The
// name is title-cased for storage and the normalized form feeds the
// per-company uniqueness constraint. After insert the ID and timestamp
// fields are populated from the stored row.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	rm.Name = utils.TitleName(rm.Name)
	rm.NameNorm = utils.NormalizeName(rm.Name)

	const qInsert = `INSERT INTO rooms (company_id, admin_id, name, name_norm) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, rm.CompanyID, rm.AdminID, rm.Name, rm.NameNorm)
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
	rm.ID = uint64(id)

	const qSelect = `SELECT id, company_id, admin_id, name, name_norm, created_at, updated_at
	                 FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, rm.ID).
		Scan(&rm.ID, &rm.CompanyID, &rm.AdminID, &rm.Name, &rm.NameNorm, &rm.CreatedAt, &rm.UpdatedAt)
}

// GetByID retrieves a room by its ID regardless of owner. It returns
// ErrRoomNotFound when no row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, company_id, admin_id, name, name_norm, created_at, updated_at FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&rm.ID, &rm.CompanyID, &rm.AdminID, &rm.Name, &rm.NameNorm, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// GetByName retrieves a room inside a company by display name or slug,
// compared on the normalized form.
func (r *RoomRepo) GetByName(ctx context.Context, companyID uint64, name string) (*model.Room, error) {
	norm := utils.SlugToName(name)
	const q = `SELECT id, company_id, admin_id, name, name_norm, created_at, updated_at
	           FROM rooms WHERE company_id = ? AND name_norm = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, companyID, norm).
		Scan(&rm.ID, &rm.CompanyID, &rm.AdminID, &rm.Name, &rm.NameNorm, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByCompany returns all rooms of a company ordered by id.
func (r *RoomRepo) ListByCompany(ctx context.Context, companyID uint64) ([]*model.Room, error) {
	const q = `SELECT id, company_id, admin_id, name, name_norm, created_at, updated_at
	           FROM rooms WHERE company_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		rm := new(model.Room)
		if err := rows.Scan(&rm.ID, &rm.CompanyID, &rm.AdminID, &rm.Name, &rm.NameNorm, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}
