package store

import (
	"slices"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
)

// MergeSubmissions appends incoming submissions whose submissionId is not
// queued yet and returns how many were added. Records without a
// submissionId are skipped, as are repeats within incoming. Nothing is
// written when nothing was added.
func (s *Store) MergeSubmissions(incoming []model.RadioSubmission) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.submissions)+len(incoming))
	for _, sub := range s.submissions {
		seen[sub.SubmissionID] = true
	}

	added := 0
	for _, sub := range incoming {
		if sub.SubmissionID == "" || seen[sub.SubmissionID] {
			continue
		}
		seen[sub.SubmissionID] = true
		s.submissions = append(s.submissions, sub)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.persist(model.KeyRadioSubmissions)
}

// Submissions returns the pending submissions in arrival order.
func (s *Store) Submissions() []model.RadioSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.submissions)
}

// PendingSubmissions returns the number of submissions waiting for review.
func (s *Store) PendingSubmissions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions)
}

// Submission returns the pending submission with the given id.
func (s *Store) Submission(submissionID string) (model.RadioSubmission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.submissionIndex(submissionID)
	if i < 0 {
		return model.RadioSubmission{}, false
	}
	return s.submissions[i], true
}

// PromoteSubmission saves the submission as a new radio station, after
// applying edit when it is non-nil, and removes it from the queue.
func (s *Store) PromoteSubmission(submissionID string, edit func(*model.RadioStation)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.submissionIndex(submissionID)
	if i < 0 {
		return "", errors.NotFound("submission", submissionID)
	}
	station := s.submissions[i].ToStation()
	if edit != nil {
		edit(&station)
	}
	station.ID = ""
	if !station.IsCrowleyAudited {
		station.CrowleyMarkets = nil
	}

	var id string
	s.radios, id = upsert(s.radios, station)
	s.submissions = slices.Delete(slices.Clone(s.submissions), i, i+1)
	return id, s.persist(model.KeyRadios, model.KeyRadioSubmissions)
}

// DeleteSubmission drops a submission from the queue.
func (s *Store) DeleteSubmission(submissionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.submissionIndex(submissionID)
	if i < 0 {
		return errors.NotFound("submission", submissionID)
	}
	s.submissions = slices.Delete(slices.Clone(s.submissions), i, i+1)
	return s.persist(model.KeyRadioSubmissions)
}

func (s *Store) submissionIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.submissions, func(sub model.RadioSubmission) bool {
		return sub.SubmissionID == id
	})
}
