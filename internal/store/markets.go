package store

import (
	"slices"
	"strings"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// Markets returns the Crowley market names in insertion order.
func (s *Store) Markets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.markets)
}

// AddMarket appends a market. The name is trimmed; empty names and
// duplicates are rejected.
func (s *Store) AddMarket(name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMarketName(name); err != nil {
		return err
	}
	s.markets = append(slices.Clone(s.markets), name)
	return s.persist(model.KeyCrowleyMarkets)
}

// RenameMarket replaces oldName with newName in place. Stations keep the
// market names they were saved with.
func (s *Store) RenameMarket(oldName, newName string) error {
	newName = strings.TrimSpace(newName)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.markets, oldName)
	if i < 0 {
		return errors.NotFound("market", oldName)
	}
	if newName == oldName {
		return nil
	}
	if err := s.checkMarketName(newName); err != nil {
		return err
	}
	markets := slices.Clone(s.markets)
	markets[i] = newName
	s.markets = markets
	return s.persist(model.KeyCrowleyMarkets)
}

// DeleteMarket removes a market.
func (s *Store) DeleteMarket(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.markets, name)
	if i < 0 {
		return errors.NotFound("market", name)
	}
	s.markets = slices.Delete(slices.Clone(s.markets), i, i+1)
	return s.persist(model.KeyCrowleyMarkets)
}

func (s *Store) checkMarketName(name string) error {
	if name == "" {
		return errors.NewUserError("market name cannot be empty", "Provide a market name")
	}
	if slices.Contains(s.markets, name) {
		return errors.NewUserErrorWithField("market", name,
			"market already exists", errors.GetSuggestion(errors.ErrDuplicateMarket)).
			WithCause(errors.ErrDuplicateMarket)
	}
	return nil
}
