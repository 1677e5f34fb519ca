// Package bike
package bike

// Translatable is the localized display record for a bike. A bike carries
// one Translatable per locale; the bike row itself is identity only and is
// managed out-of-band.
type Translatable struct {
	ID          int     `db:"id"`
	BikeID      int     `db:"bike_id"`
	Locale      string  `db:"locale"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	URL         *string `db:"url"`
}
