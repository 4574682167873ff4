package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations and the query patterns conflict
// checking needs (by room, by user, by company). Reservations store the
// room and company ids authoritatively plus denormalized display names; the
// list queries resolve the current names by id and fall back to the stored
// copies only when the referenced row has been deleted.
//
// All timestamp columns are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `r.id, r.room_id, COALESCE(rm.name, r.room_name), r.company_id,
       COALESCE(co.name, r.company_name), r.user_id, r.starts_at, r.ends_at,
       r.label, r.duration_min, r.created_at, r.updated_at`

const reservationJoins = ` FROM reservations r
       LEFT JOIN rooms rm ON rm.id = r.room_id
       LEFT JOIN companies co ON co.id = r.company_id`

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
	return row.Scan(
		&res.ID, &res.RoomID, &res.RoomName, &res.CompanyID,
		&res.CompanyName, &res.UserID, &res.StartsAt, &res.EndsAt,
		&res.Label, &res.DurationMin, &res.CreatedAt, &res.UpdatedAt,
	)
}

// Create inserts a new reservation and populates the generated ID and
// timestamp fields on the provided struct. The caller is responsible for
// having validated the range and checked conflicts beforehand.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (room_id, room_name, company_id, company_name, user_id, starts_at, ends_at, label, duration_min)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.RoomID, res.RoomName, res.CompanyID, res.CompanyName,
		res.UserID, res.StartsAt.UTC(), res.EndsAt.UTC(), res.Label, res.DurationMin)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Query the row back to populate timestamps and resolved names.
	const sel = `SELECT ` + reservationColumns + reservationJoins + ` WHERE r.id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + reservationJoins + ` WHERE r.id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateTimes rewrites the interval and label of an existing reservation.
// Authorization and conflict checking happen in the booking service before
// this is called; the row keeps its original values if the check fails
// because nothing is written until then.
func (r *ReservationRepo) UpdateTimes(ctx context.Context, id uint64, start, end time.Time, label string, durationMin int) error {
	const q = `UPDATE reservations SET starts_at = ?, ends_at = ?, label = ?, duration_min = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, start.UTC(), end.UTC(), label, durationMin, id)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for a no-change update;
	// existence was already established by the preceding fetch, so neither
	// case is an error here.
	_, _ = result.RowsAffected()
	return nil
}

// DeleteOwned deletes a reservation only when the caller is its creator or
// the admin who owns its room. The authorization lives inside the delete
// predicate itself so there is no window between check and delete, and a
// missing row is indistinguishable from an unauthorized one: both return 0.
func (r *ReservationRepo) DeleteOwned(ctx context.Context, id, callerID uint64) (int64, error) {
	const q = `DELETE r FROM reservations r
	           LEFT JOIN rooms rm ON rm.id = r.room_id
	           WHERE r.id = ? AND (r.user_id = ? OR rm.admin_id = ?)`
	result, err := r.db.ExecContext(ctx, q, id, callerID, callerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListByRoom returns all reservations for a room ordered by start time.
// Conflict arbitration reads go through this method directly against the
// store; it must never be served from a cache.
func (r *ReservationRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + reservationJoins + `
	           WHERE r.room_id = ? ORDER BY r.starts_at`
	return r.list(ctx, q, roomID)
}

// ListByUser returns all reservations created by a user, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + reservationJoins + `
	           WHERE r.user_id = ? ORDER BY r.created_at DESC`
	return r.list(ctx, q, userID)
}

// ListByCompany returns all reservations across a company's rooms ordered by
// start time.
func (r *ReservationRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + reservationJoins + `
	           WHERE r.company_id = ? ORDER BY r.starts_at`
	return r.list(ctx, q, companyID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, arg uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
