package models

import (
	"time"
)

// AccountSnapshot holds everything derived from one poll of the Discogs
// account. It is built once per cycle and read-only afterwards; sensors
// never mutate it.
type AccountSnapshot struct {
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	Folders         []Folder  `json:"folders"`
	CollectionCount int       `json:"collection_count"`
	WantlistCount   int       `json:"wantlist_count"`
	ValueMin        string    `json:"collection_value_min"`
	ValueMedian     string    `json:"collection_value_median"`
	ValueMax        string    `json:"collection_value_max"`
	CurrencySymbol  string    `json:"currency_symbol"`
	VinylCount      int       `json:"vinyl_count"`
	CDCount         int       `json:"cd_count"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// RandomPick is one randomly selected release plus the descriptive
// attributes derived from it. A nil pick means the collection was empty or
// the lookup failed; there are no partial picks.
type RandomPick struct {
	State      string `json:"state"` // "Artist - Title"
	CatNo      string `json:"cat_no,omitempty"`
	CoverImage string `json:"cover_image,omitempty"`
	Format     string `json:"format,omitempty"`
	Label      string `json:"label,omitempty"`
	Released   int    `json:"released,omitempty"`
}
