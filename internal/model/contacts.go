package model

// RadioType is the broadcast type of a station.
type RadioType string

// Radio types.
const (
	RadioFM          RadioType = "FM"
	RadioAM          RadioType = "AM"
	RadioWeb         RadioType = "WEB"
	RadioComunitaria RadioType = "Comunitária"
)

// RadioTypes lists every radio type in display order.
var RadioTypes = []RadioType{RadioFM, RadioAM, RadioWeb, RadioComunitaria}

// RadioProfile is the programming profile of a station.
type RadioProfile string

// Radio profiles.
const (
	ProfilePopular    RadioProfile = "Popular"
	ProfileSertanejo  RadioProfile = "Sertanejo"
	ProfilePopRock    RadioProfile = "Pop/Rock"
	ProfileEvangelica RadioProfile = "Evangélica"
	ProfileJornalismo RadioProfile = "Jornalismo"
	ProfileOutro      RadioProfile = "Outro"
)

// RadioProfiles lists every radio profile in display order.
var RadioProfiles = []RadioProfile{
	ProfilePopular, ProfileSertanejo, ProfilePopRock,
	ProfileEvangelica, ProfileJornalismo, ProfileOutro,
}

// StationInfo holds every radio station field except its identifier.
// Public form submissions carry the same shape.
type StationInfo struct {
	Name              string       `json:"name"`
	Type              RadioType    `json:"type"`
	Frequency         string       `json:"frequency"`
	Website           string       `json:"website"`
	Phone             string       `json:"phone"`
	Street            string       `json:"street"`
	Number            string       `json:"number"`
	Complement        string       `json:"complement,omitempty"`
	Neighborhood      string       `json:"neighborhood"`
	City              string       `json:"city"`
	State             string       `json:"state"`
	ZipCode           string       `json:"zipCode"`
	Slogan            string       `json:"slogan,omitempty"`
	Instagram         string       `json:"instagram,omitempty"`
	Facebook          string       `json:"facebook,omitempty"`
	WhatsApp          string       `json:"whatsapp,omitempty"`
	ListenersWhatsApp string       `json:"listenersWhatsapp,omitempty"`
	LogoURL           string       `json:"logoUrl,omitempty"`
	PixKey            string       `json:"pixKey,omitempty"`
	CNPJ              string       `json:"cnpj,omitempty"`
	CorporateName     string       `json:"corporateName,omitempty"`
	Email             string       `json:"email,omitempty"`
	ArtisticDirector  string       `json:"artisticDirector,omitempty"`
	Profile           RadioProfile `json:"profile,omitempty"`
	IsCrowleyAudited  bool         `json:"isCrowleyAudited,omitempty"`
	CrowleyMarkets    []string     `json:"crowleyMarkets,omitempty"`
	IsArchived        bool         `json:"isArchived,omitempty"`
}

// RadioStation is a radio contact.
type RadioStation struct {
	ID string `json:"id"`
	StationInfo
}

func (r *RadioStation) GetID() string      { return r.ID }
func (r *RadioStation) SetID(id string)    { r.ID = id }
func (r *RadioStation) Archived() bool     { return r.IsArchived }
func (r *RadioStation) SetArchived(v bool) { r.IsArchived = v }

// RadioSubmission is a station registered through the public intake form and
// waiting for review.
type RadioSubmission struct {
	SubmissionID string `json:"submissionId"`
	StationInfo
}

// ToStation converts the submission into a station payload without an id.
func (s RadioSubmission) ToStation() RadioStation {
	info := s.StationInfo
	if len(info.CrowleyMarkets) > 0 {
		info.CrowleyMarkets = append([]string(nil), info.CrowleyMarkets...)
	}
	info.IsArchived = false
	return RadioStation{StationInfo: info}
}

// CityHall is a municipal contact.
type CityHall struct {
	ID           string `json:"id"`
	CityName     string `json:"cityName"`
	State        string `json:"state"`
	Mayor        string `json:"mayor"`
	Website      string `json:"website"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	ZipCode      string `json:"zipCode"`
	Email        string `json:"email,omitempty"`
	WhatsApp     string `json:"whatsapp,omitempty"`
	Instagram    string `json:"instagram,omitempty"`
	Facebook     string `json:"facebook,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`
	IsArchived   bool   `json:"isArchived,omitempty"`
}

func (c *CityHall) GetID() string      { return c.ID }
func (c *CityHall) SetID(id string)    { c.ID = id }
func (c *CityHall) Archived() bool     { return c.IsArchived }
func (c *CityHall) SetArchived(v bool) { c.IsArchived = v }

// Business is a manager or company that represents artists.
type Business struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	ContactPerson      string   `json:"contactPerson"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email"`
	Street             string   `json:"street"`
	Number             string   `json:"number"`
	Complement         string   `json:"complement,omitempty"`
	Neighborhood       string   `json:"neighborhood"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	ZipCode            string   `json:"zipCode"`
	WhatsApp           string   `json:"whatsapp,omitempty"`
	Website            string   `json:"website,omitempty"`
	Instagram          string   `json:"instagram,omitempty"`
	Facebook           string   `json:"facebook,omitempty"`
	RegionsOfOperation []string `json:"regionsOfOperation,omitempty"`
	IsArchived         bool     `json:"isArchived,omitempty"`
	ArtistIDs          []string `json:"artistIds,omitempty"`
}

func (b *Business) GetID() string      { return b.ID }
func (b *Business) SetID(id string)    { b.ID = id }
func (b *Business) Archived() bool     { return b.IsArchived }
func (b *Business) SetArchived(v bool) { b.IsArchived = v }

// HasArtist reports whether the business represents the artist.
func (b *Business) HasArtist(artistID string) bool {
	for _, id := range b.ArtistIDs {
		if id == artistID {
			return true
		}
	}
	return false
}
