package store

import (
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// Archive soft-deletes a record. Archiving an artist also archives all of
// its songs.
func (s *Store) Archive(kind model.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(kind)
	if err != nil {
		return err
	}
	if !c.setArchived(id, true) {
		return errors.NotFound(kind.Noun(), id)
	}
	keys := append([]string{c.key()}, cascadeFor(kind).archive(s, id)...)
	return s.persist(keys...)
}

// Restore clears the archived flag of one record. Related records archived
// with it stay archived.
func (s *Store) Restore(kind model.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(kind)
	if err != nil {
		return err
	}
	if !c.setArchived(id, false) {
		return errors.NotFound(kind.Noun(), id)
	}
	return s.persist(c.key())
}

// Purge permanently deletes a record. Purging an artist deletes its songs,
// clears it from promotions and unlinks it from events and businesses.
func (s *Store) Purge(kind model.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(kind)
	if err != nil {
		return err
	}
	if !c.exists(id) {
		return errors.NotFound(kind.Noun(), id)
	}
	keys := cascadeFor(kind).purge(s, id)
	c.remove(id)
	return s.persist(append([]string{c.key()}, keys...)...)
}

// PurgeArchived permanently deletes every archived record of kind, applying
// the purge cascade to each, and returns how many were removed.
func (s *Store) PurgeArchived(kind model.Kind) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(kind)
	if err != nil {
		return 0, err
	}
	ids := c.archivedIDs()
	if len(ids) == 0 {
		return 0, nil
	}
	keys := []string{c.key()}
	purge := cascadeFor(kind).purge
	for _, id := range ids {
		keys = append(keys, purge(s, id)...)
	}
	n := c.removeArchived()
	return n, s.persist(keys...)
}

// Counts returns the active and archived record counts of kind.
func (s *Store) Counts(kind model.Kind) (active, archived int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.collection(kind)
	if err != nil {
		return 0, 0, err
	}
	active, archived = c.counts()
	return active, archived, nil
}
