package model

// PromotionType classifies a promotion deal.
type PromotionType string

// Promotion types.
const (
	PromotionVerba      PromotionType = "Verba"
	PromotionBrindes    PromotionType = "Brindes"
	PromotionShow       PromotionType = "Parceria de Show"
	PromotionDivulgacao PromotionType = "Divulgação"
	PromotionOutro      PromotionType = "Outro"
)

// PromotionTypes lists every promotion type in display order.
var PromotionTypes = []PromotionType{
	PromotionVerba, PromotionBrindes, PromotionShow, PromotionDivulgacao, PromotionOutro,
}

// Promotion is a deal with one radio station for an artist or song.
// ArtistID is empty once the artist has been purged.
type Promotion struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	RadioStationID string        `json:"radioStationId"`
	ArtistID       string        `json:"artistId"`
	MusicID        string        `json:"musicId,omitempty"`
	Type           PromotionType `json:"type"`
	Details        string        `json:"details"`
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	IsArchived     bool          `json:"isArchived,omitempty"`
	Value          *float64      `json:"value,omitempty"`
}

func (p *Promotion) GetID() string      { return p.ID }
func (p *Promotion) SetID(id string)    { p.ID = id }
func (p *Promotion) Archived() bool     { return p.IsArchived }
func (p *Promotion) SetArchived(v bool) { p.IsArchived = v }

// AppEvent is a show or gathering linked to artists and businesses.
type AppEvent struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Date              string   `json:"date"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	Venue             string   `json:"venue"`
	Details           string   `json:"details,omitempty"`
	LinkedArtistIDs   []string `json:"linkedArtistIds,omitempty"`
	LinkedBusinessIDs []string `json:"linkedBusinessIds,omitempty"`
	IsArchived        bool     `json:"isArchived,omitempty"`
}

func (e *AppEvent) GetID() string      { return e.ID }
func (e *AppEvent) SetID(id string)    { e.ID = id }
func (e *AppEvent) Archived() bool     { return e.IsArchived }
func (e *AppEvent) SetArchived(v bool) { e.IsArchived = v }

// MusicalBlitz is a scheduled radio visit day for one song.
type MusicalBlitz struct {
	ID         string `json:"id"`
	MusicID    string `json:"musicId"`
	EventDate  string `json:"eventDate"`
	Notes      string `json:"notes,omitempty"`
	IsArchived bool   `json:"isArchived,omitempty"`
}

func (b *MusicalBlitz) GetID() string      { return b.ID }
func (b *MusicalBlitz) SetID(id string)    { b.ID = id }
func (b *MusicalBlitz) Archived() bool     { return b.IsArchived }
func (b *MusicalBlitz) SetArchived(v bool) { b.IsArchived = v }

// RecipientCategory is the audience of an email campaign.
type RecipientCategory string

// Recipient categories.
const (
	RecipientRadios     RecipientCategory = "Rádios"
	RecipientCityHalls  RecipientCategory = "Prefeituras"
	RecipientBusinesses RecipientCategory = "Empresários"
)

// RecipientCategories lists every recipient category.
var RecipientCategories = []RecipientCategory{RecipientRadios, RecipientCityHalls, RecipientBusinesses}

// EmailCampaign is the record of a sent mailing. It is never edited after
// it has been recorded.
type EmailCampaign struct {
	ID                string            `json:"id"`
	Subject           string            `json:"subject"`
	Body              string            `json:"body"`
	RecipientCategory RecipientCategory `json:"recipientCategory"`
	RecipientFilter   string            `json:"recipientFilter"`
	RecipientCount    int               `json:"recipientCount"`
	SentAt            string            `json:"sentAt"`
	AttachedMusicID   string            `json:"attachedMusicId,omitempty"`
	AttachedArtistID  string            `json:"attachedArtistId,omitempty"`
	RecipientIDs      []string          `json:"recipientIds"`
	IsArchived        bool              `json:"isArchived,omitempty"`
}

func (c *EmailCampaign) GetID() string      { return c.ID }
func (c *EmailCampaign) SetID(id string)    { c.ID = id }
func (c *EmailCampaign) Archived() bool     { return c.IsArchived }
func (c *EmailCampaign) SetArchived(v bool) { c.IsArchived = v }
