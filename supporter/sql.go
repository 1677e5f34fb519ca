package supporter

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetSupporters(ctx context.Context) ([]SupporterWithTypeAndTranslatable, error) {
	var supporters []SupporterWithTypeAndTranslatable
	err := r.db.SelectContext(ctx, &supporters, getSupporters)
	return supporters, err
}

const getSupporters = `
SELECT s.id,
       st.title AS supporter_type_title,
       tr.locale,
       tr.title,
       tr.description,
       tr.url,
       tr.logo_url,
       tr.logo_width,
       tr.logo_height
FROM supporters s
JOIN supporter_types st ON s.supporter_type_id = st.id
JOIN supporter_translatables tr ON tr.supporter_id = s.id
`
