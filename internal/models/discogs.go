package models

// Identity is the authenticated account profile.
type Identity struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	NumCollection int    `json:"num_collection"`
	NumWantlist   int    `json:"num_wantlist"`
	CurrAbbr      string `json:"curr_abbr"`

	// Raw holds the undecoded profile fields so callers can fall back to
	// keys the typed struct does not cover.
	Raw map[string]any `json:"-"`
}

// Folder is a named grouping of owned releases. Folder 0 is the special
// "All" folder covering the whole collection.
type Folder struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CollectionValue is the estimated worth of a collection as reported by
// Discogs: locale-formatted currency strings, not numbers.
type CollectionValue struct {
	Minimum string `json:"minimum"`
	Median  string `json:"median"`
	Maximum string `json:"maximum"`
}

type Artist struct {
	Name string `json:"name"`
}

type ReleaseLabel struct {
	Name  string `json:"name"`
	CatNo string `json:"catno"`
}

// Format is a categorical tag on a release (Vinyl, CD, Cassette, ...) with
// optional free-text qualifiers.
type Format struct {
	Name         string   `json:"name"`
	Qty          string   `json:"qty"`
	Descriptions []string `json:"descriptions"`
}

// Release is one owned item in a collection folder.
type Release struct {
	ID         int            `json:"id"`
	InstanceID int            `json:"instance_id"`
	Title      string         `json:"title"`
	Year       int            `json:"year"`
	Artists    []Artist       `json:"artists"`
	Labels     []ReleaseLabel `json:"labels"`
	Formats    []Format       `json:"formats"`
	CoverImage string         `json:"cover_image"`
	Thumb      string         `json:"thumb"`
}
