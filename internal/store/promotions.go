package store

import (
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/textutil"
)

// SavePromotion applies a promotion form submission and returns the ids of
// the saved promotions. New and clone requests create one promotion per
// radio station; an edit updates a single promotion in place.
func (s *Store) SavePromotion(req model.PromotionRequest) ([]string, error) {
	switch r := req.(type) {
	case model.NewPromotionRequest:
		return s.createPromotions(nil, r.Fields, r.RadioStationIDs)
	case *model.NewPromotionRequest:
		return s.createPromotions(nil, r.Fields, r.RadioStationIDs)
	case model.ClonePromotionRequest:
		return s.clonePromotion(r)
	case *model.ClonePromotionRequest:
		return s.clonePromotion(*r)
	case model.EditPromotionRequest:
		return s.editPromotion(r)
	case *model.EditPromotionRequest:
		return s.editPromotion(*r)
	}
	return nil, errors.NewUserError("unsupported promotion request", "")
}

func (s *Store) clonePromotion(r model.ClonePromotionRequest) ([]string, error) {
	s.mu.RLock()
	src, ok := find(s.promotions, r.SourceID)
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("promotion", r.SourceID)
	}
	return s.createPromotions(&src, r.Fields, r.RadioStationIDs)
}

// createPromotions adds one promotion per radio station from fields laid
// over src (when cloning).
func (s *Store) createPromotions(src *model.Promotion, fields model.PromotionFields, radioIDs []string) ([]string, error) {
	if len(radioIDs) == 0 {
		return nil, errors.NewUserError("no radio station selected", "Pass --radio at least once")
	}

	var value *float64
	if src != nil {
		fields = model.FieldsOf(*src, nil).Overlay(fields)
		value = copyValue(src.Value)
	}
	if fields.Value != "" {
		v, err := textutil.ParseDecimalBR(fields.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if fields.ArtistID == "" {
		return nil, errors.NewUserError("promotion has no artist", errors.GetSuggestion(errors.ErrMissingArtist)).
			WithCause(errors.ErrMissingArtist)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rid := range radioIDs {
		if indexOf(s.radios, rid) < 0 {
			return nil, errors.NotFound("radio station", rid)
		}
	}

	ids := make([]string, 0, len(radioIDs))
	for _, rid := range radioIDs {
		p := model.Promotion{ID: model.NewID(), RadioStationID: rid, Value: copyValue(value)}
		applyFields(&p, fields)
		s.promotions = append(s.promotions, p)
		ids = append(ids, p.ID)
	}
	return ids, s.persist(model.KeyPromotions)
}

func (s *Store) editPromotion(r model.EditPromotionRequest) ([]string, error) {
	value, err := textutil.ParseDecimalBR(r.Fields.Value)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.promotions, r.ID)
	if i < 0 {
		return nil, errors.NotFound("promotion", r.ID)
	}
	p := s.promotions[i]
	applyFields(&p, r.Fields)
	p.Value = value
	if r.RadioStationID != "" {
		if indexOf(s.radios, r.RadioStationID) < 0 {
			return nil, errors.NotFound("radio station", r.RadioStationID)
		}
		p.RadioStationID = r.RadioStationID
	}
	s.promotions[i] = p
	return []string{p.ID}, s.persist(model.KeyPromotions)
}

// savePromotionRecord stores an already parsed promotion.
func (s *Store) savePromotionRecord(p model.Promotion) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	s.promotions, id = upsert(s.promotions, p)
	return id, s.persist(model.KeyPromotions)
}

func applyFields(p *model.Promotion, f model.PromotionFields) {
	p.Name = f.Name
	p.ArtistID = f.ArtistID
	p.MusicID = f.MusicID
	p.Type = f.Type
	p.Details = f.Details
	p.StartDate = f.StartDate
	p.EndDate = f.EndDate
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
