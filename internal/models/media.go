package models

import "time"

// MediaType tags a catalog entry: anime | manga | videogame.
type MediaType string

const (
	MediaTypeAnime     MediaType = "anime"
	MediaTypeManga     MediaType = "manga"
	MediaTypeVideogame MediaType = "videogame"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeAnime, MediaTypeManga, MediaTypeVideogame:
		return true
	}
	return false
}

type Media struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Type        MediaType     `json:"type"`
	Image       Image         `json:"image"`
	KnownMedias []*KnownMedia `json:"knownMedias"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// KnownMedia is one ledger entry: user X claims to know media Y since KnownAt.
// At most one row exists per (UserID, MediaID); the pair is the primary key.
type KnownMedia struct {
	UserID  int       `json:"userId"`
	MediaID int       `json:"mediaId"`
	User    *User     `json:"user"`
	Media   *Media    `json:"media"`
	KnownAt time.Time `json:"knownAt"`
}

// MediaOptions carries the writable catalog fields for create and update.
type MediaOptions struct {
	Title string
	Type  MediaType
	Image Image
}
