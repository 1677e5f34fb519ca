package rent

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrOverlap        = errors.New("there is already a rent at the same period")
	ErrTokenNotFound  = errors.New("token not found")
	ErrNotBooked      = errors.New("no rent booked for token")
	ErrAlreadyRevoked = errors.New("rent already revoked")
)

// bookingLockKey is the advisory lock key serializing booking writers.
// The fleet is one rental pool, so a single key covers every conflict scope.
const bookingLockKey = 4217

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetRents returns every non-revoked rent whose interval ends at or after
// asOf. Result order is not part of the contract.
func (r *Repository) GetRents(ctx context.Context, asOf time.Time) ([]Rent, error) {
	var rents []Rent
	err := r.db.SelectContext(ctx, &rents, getRents, asOf)
	return rents, err
}

const getRents = `
SELECT * FROM rents
WHERE end_timestamp >= $1
  AND revocation_timestamp IS NULL
`

// CreateBooking inserts a rent and its encrypted detail record in one
// transaction. The pool-wide advisory lock is taken first so two concurrent
// bookings can never both pass the overlap count; without it, read-committed
// isolation would let both writers observe zero overlaps.
func (r *Repository) CreateBooking(ctx context.Context, booking Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, takeBookingLock, bookingLockKey); err != nil {
		return err
	}

	var overlapping int
	err = tx.GetContext(ctx, &overlapping, countOverlappingRents, booking.StartTimestamp, booking.EndTimestamp)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return ErrOverlap
	}

	var tokenID int
	err = tx.GetContext(ctx, &tokenID, getTokenIDByUUID, booking.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTokenNotFound
	}
	if err != nil {
		return err
	}

	var rentID int
	err = tx.GetContext(ctx, &rentID, insertRent,
		tokenID, booking.BikeID, booking.StartTimestamp, booking.EndTimestamp)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, insertRentDetail, rentID, booking.EncryptedDetails)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const takeBookingLock = `SELECT pg_advisory_xact_lock($1)`

// The interval intersection is inclusive on both ends, matching the
// inclusive bounds the overlap check has always had. It does not filter by
// bike: one booking blocks the whole pool for its period.
const countOverlappingRents = `
SELECT count(*) FROM rents
WHERE revocation_timestamp IS NULL
  AND start_timestamp <= $2
  AND end_timestamp >= $1
`

const getTokenIDByUUID = `SELECT id FROM tokens WHERE uuid = $1`

const insertRent = `
INSERT INTO rents (token_id, bike_id, start_timestamp, end_timestamp)
VALUES ($1, $2, $3, $4)
RETURNING id
`

const insertRentDetail = `
INSERT INTO rent_details (rent_id, encrypted_details)
VALUES ($1, $2)
`

// RevokeBooking sets the revocation timestamp on the single active rent held
// by the token. Revoking twice fails with ErrAlreadyRevoked; a token that
// never booked fails with ErrNotBooked.
func (r *Repository) RevokeBooking(ctx context.Context, token uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tokenID int
	err = tx.GetContext(ctx, &tokenID, getTokenIDByUUID, token)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTokenNotFound
	}
	if err != nil {
		return err
	}

	var rentID int
	err = tx.GetContext(ctx, &rentID, getActiveRentForUpdate, tokenID)
	if errors.Is(err, sql.ErrNoRows) {
		var everBooked bool
		if err := tx.GetContext(ctx, &everBooked, hasRentForToken, tokenID); err != nil {
			return err
		}
		if everBooked {
			return ErrAlreadyRevoked
		}
		return ErrNotBooked
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, revokeRent, rentID, time.Now().UTC())
	if err != nil {
		return err
	}

	return tx.Commit()
}

const getActiveRentForUpdate = `
SELECT id FROM rents
WHERE token_id = $1
  AND revocation_timestamp IS NULL
FOR UPDATE
`

const hasRentForToken = `SELECT EXISTS (SELECT 1 FROM rents WHERE token_id = $1)`

const revokeRent = `UPDATE rents SET revocation_timestamp = $2 WHERE id = $1`
