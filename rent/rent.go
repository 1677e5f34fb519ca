// Package rent implements the booking engine: overlap detection against the
// active rental pool, atomic creation of a rent with its encrypted detail
// record, and exactly-once revocation.
package rent

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Rent is a reservation interval for a bike. Lifecycle is
// active -> revoked; a revoked rent is terminal and never deleted.
type Rent struct {
	ID             int       `db:"id"`
	TokenID        int       `db:"token_id"`
	BikeID         int       `db:"bike_id"`
	CreatedAt      time.Time `db:"created_at"`
	StartTimestamp time.Time `db:"start_timestamp"`
	EndTimestamp   time.Time `db:"end_timestamp"`
	// RevocationTimestamp is null while the rent is active.
	RevocationTimestamp sql.NullTime `db:"revocation_timestamp"`
}

// Revoked reports whether the rent has been cancelled.
func (r Rent) Revoked() bool {
	return r.RevocationTimestamp.Valid
}

// Booking is the client-submitted request to create a rent. EncryptedDetails
// is opaque ciphertext prepared by the client; the engine stores it verbatim
// and never decrypts it. ShortToken and Email only feed the post-booking
// notification and are not persisted.
type Booking struct {
	Token            uuid.UUID
	BikeID           int
	StartTimestamp   time.Time
	EndTimestamp     time.Time
	EncryptedDetails string
	ShortToken       string
	Email            *string
}
