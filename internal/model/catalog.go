package model

// Genre is an artist's musical genre.
type Genre string

// Genres.
const (
	GenreSertanejo  Genre = "Sertanejo"
	GenrePagode     Genre = "Pagode"
	GenreSamba      Genre = "Samba"
	GenreRock       Genre = "Rock"
	GenrePop        Genre = "Pop"
	GenreMPB        Genre = "MPB"
	GenreFunk       Genre = "Funk"
	GenreAxe        Genre = "Axé"
	GenreForro      Genre = "Forró"
	GenreEletronica Genre = "Eletrônica"
	GenreOutro      Genre = "Outro"
)

// Genres lists every genre in display order.
var Genres = []Genre{
	GenreSertanejo, GenrePagode, GenreSamba, GenreRock, GenrePop, GenreMPB,
	GenreFunk, GenreAxe, GenreForro, GenreEletronica, GenreOutro,
}

// Artist is a performer whose music is promoted.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Genre      Genre  `json:"genre"`
	CreatedAt  string `json:"createdAt"`
	IsArchived bool   `json:"isArchived,omitempty"`
	BusinessID string `json:"businessId,omitempty"`
	Bio        string `json:"bio,omitempty"`
}

func (a *Artist) GetID() string      { return a.ID }
func (a *Artist) SetID(id string)    { a.ID = id }
func (a *Artist) Archived() bool     { return a.IsArchived }
func (a *Artist) SetArchived(v bool) { a.IsArchived = v }

// Music is a song belonging to exactly one artist.
type Music struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	ArtistID          string `json:"artistId"`
	WavURL            string `json:"wavUrl,omitempty"`
	CreatedAt         string `json:"createdAt"`
	Composers         string `json:"composers,omitempty"`
	ReleaseDate       string `json:"releaseDate,omitempty"`
	IsArchived        bool   `json:"isArchived,omitempty"`
	HideFromDashboard bool   `json:"hideFromDashboard,omitempty"`
}

func (m *Music) GetID() string      { return m.ID }
func (m *Music) SetID(id string)    { m.ID = id }
func (m *Music) Archived() bool     { return m.IsArchived }
func (m *Music) SetArchived(v bool) { m.IsArchived = v }

// MusicEdit is one song row from the artist editor. Nil fields leave the
// stored value unchanged when merging into an existing song.
type MusicEdit struct {
	ID                string
	Title             *string
	WavURL            *string
	Composers         *string
	ReleaseDate       *string
	HideFromDashboard *bool
}

// Apply merges the edit into m.
func (e MusicEdit) Apply(m *Music) {
	if e.Title != nil {
		m.Title = *e.Title
	}
	if e.WavURL != nil {
		m.WavURL = *e.WavURL
	}
	if e.Composers != nil {
		m.Composers = *e.Composers
	}
	if e.ReleaseDate != nil {
		m.ReleaseDate = *e.ReleaseDate
	}
	if e.HideFromDashboard != nil {
		m.HideFromDashboard = *e.HideFromDashboard
	}
}
