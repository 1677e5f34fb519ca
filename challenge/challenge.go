// Package challenge implements the anti-automation gate: a pool of localized
// human-verification questions with pre-computed answer hashes, and the
// single-use tokens minted when a client answers one correctly.
package challenge

import (
	"time"

	"github.com/google/uuid"
)

// Translatable is one locale-specific variant of a verification question.
// The answer hash is an opaque string computed by the data owner; it is
// compared by exact match and never re-hashed here.
type Translatable struct {
	ID               int     `db:"id"`
	TokenChallengeID int     `db:"token_challenge_id"`
	Locale           string  `db:"locale"`
	Question         string  `db:"question"`
	AnswerHash       string  `db:"answer_hash"`
	URL              *string `db:"url"`
}

// Token is a renter credential minted after a passed challenge. The uuid is
// generated by the store on insert, so a client can never choose its own.
type Token struct {
	ID        int       `db:"id"`
	UUID      uuid.UUID `db:"uuid"`
	CreatedAt time.Time `db:"created_at"`
}

// Response is the client's claimed answer for a challenge.
type Response struct {
	TokenChallengeID int    `json:"tokenChallengeId" binding:"required"`
	AnswerHash       string `json:"answerHash" binding:"required"`
}
