// Package supporter
package supporter

// SupporterWithTypeAndTranslatable is the denormalized read projection of a
// sponsor listing: the supporter row joined with its type and one localized
// translatable.
type SupporterWithTypeAndTranslatable struct {
	ID                 int     `db:"id"`
	SupporterTypeTitle string  `db:"supporter_type_title"`
	Locale             string  `db:"locale"`
	Title              string  `db:"title"`
	Description        *string `db:"description"`
	URL                *string `db:"url"`
	LogoURL            *string `db:"logo_url"`
	LogoWidth          *int16  `db:"logo_width"`
	LogoHeight         *int16  `db:"logo_height"`
}
