package challenge

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound      = errors.New("no challenge for locale")
	ErrInvalidAnswer = errors.New("challenge response is not valid")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetRandomChallenge picks one question variant uniformly at random among
// those matching the locale. Selection is not security-sensitive, so the
// store's random() is good enough.
func (r *Repository) GetRandomChallenge(ctx context.Context, locale string) (Translatable, error) {
	var t Translatable
	err := r.db.GetContext(ctx, &t, getRandomChallenge, locale)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

const getRandomChallenge = `
SELECT * FROM token_challenge_translatables
WHERE locale = $1
ORDER BY random()
LIMIT 1
`

// VerifyChallenge checks the claimed answer against the stored hash for the
// challenge and, on a match, mints a fresh single-use token. A wrong answer
// mints nothing. There is no cap on tokens per challenge; issuance is gated
// only by needing a correct answer per call.
func (r *Repository) VerifyChallenge(ctx context.Context, resp Response) (Token, error) {
	var token Token

	var matches int
	err := r.db.GetContext(ctx, &matches, countMatchingAnswers, resp.TokenChallengeID, resp.AnswerHash)
	if err != nil {
		return token, err
	}
	if matches == 0 {
		return token, ErrInvalidAnswer
	}

	err = r.db.GetContext(ctx, &token, mintToken)
	return token, err
}

const countMatchingAnswers = `
SELECT count(*) FROM token_challenge_translatables
WHERE token_challenge_id = $1 AND answer_hash = $2
`

const mintToken = `INSERT INTO tokens DEFAULT VALUES RETURNING *`
