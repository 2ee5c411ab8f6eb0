package model

// PromotionFields carries the editable promotion form fields. Value is the
// raw Brazilian-formatted amount, e.g. "1.234,56".
type PromotionFields struct {
	Name      string
	ArtistID  string
	MusicID   string
	Type      PromotionType
	Details   string
	StartDate string
	EndDate   string
	Value     string
}

// FieldsOf returns the form fields of an existing promotion.
func FieldsOf(p Promotion, formatValue func(float64) string) PromotionFields {
	f := PromotionFields{
		Name:      p.Name,
		ArtistID:  p.ArtistID,
		MusicID:   p.MusicID,
		Type:      p.Type,
		Details:   p.Details,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
	}
	if p.Value != nil && formatValue != nil {
		f.Value = formatValue(*p.Value)
	}
	return f
}

// Overlay returns f with every non-empty field of o applied on top.
func (f PromotionFields) Overlay(o PromotionFields) PromotionFields {
	if o.Name != "" {
		f.Name = o.Name
	}
	if o.ArtistID != "" {
		f.ArtistID = o.ArtistID
	}
	if o.MusicID != "" {
		f.MusicID = o.MusicID
	}
	if o.Type != "" {
		f.Type = o.Type
	}
	if o.Details != "" {
		f.Details = o.Details
	}
	if o.StartDate != "" {
		f.StartDate = o.StartDate
	}
	if o.EndDate != "" {
		f.EndDate = o.EndDate
	}
	if o.Value != "" {
		f.Value = o.Value
	}
	return f
}

// PromotionRequest is one of NewPromotionRequest, ClonePromotionRequest or
// EditPromotionRequest.
type PromotionRequest interface {
	promotionRequest()
}

// NewPromotionRequest creates one promotion per radio station.
type NewPromotionRequest struct {
	Fields          PromotionFields
	RadioStationIDs []string
}

// ClonePromotionRequest copies an existing promotion to new radio stations.
// Non-empty Fields override the source values.
type ClonePromotionRequest struct {
	SourceID        string
	Fields          PromotionFields
	RadioStationIDs []string
}

// EditPromotionRequest replaces the form fields of an existing promotion.
type EditPromotionRequest struct {
	ID             string
	Fields         PromotionFields
	RadioStationID string
}

func (NewPromotionRequest) promotionRequest()   {}
func (ClonePromotionRequest) promotionRequest() {}
func (EditPromotionRequest) promotionRequest()  {}
