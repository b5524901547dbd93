package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"carconvo/internal/models/domain_models"
	mem "carconvo/pkg/memcache"
	"carconvo/pkg/utils"
)

type SessionServiceInterface interface {
	Create(profile domain_models.ProfileVector) string
	Get(id string) (domain_models.Session, error)
	RecordTurn(id, role, content string) error
	SetBudget(id string, budget int) error
	// Rescore merges the given hints into the session, re-runs the match
	// engine with the session's profile and budget, and replaces the
	// session's ranked results. Identical inputs yield identical orderings.
	Rescore(id string, hints domain_models.FilterHints) ([]domain_models.MatchResult, error)
}

type SessionService struct {
	store   *mem.SessionStore
	matcher MatchServiceInterface
}

func NewSessionService(store *mem.SessionStore, matcher MatchServiceInterface) SessionServiceInterface {
	return &SessionService{store: store, matcher: matcher}
}

// Create opens a session for a completed questionnaire and returns its id.
func (s *SessionService) Create(profile domain_models.ProfileVector) string {
	id := uuid.New().String()
	s.store.Put(domain_models.Session{
		ID:      id,
		Profile: profile,
		History: []domain_models.Turn{},
		Results: []domain_models.MatchResult{},
	})
	return id
}

func (s *SessionService) handle(id string) (*mem.SessionHandle, error) {
	h, ok := s.store.Handle(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrUnknownSession, id)
	}
	return h, nil
}

func (s *SessionService) Get(id string) (domain_models.Session, error) {
	h, err := s.handle(id)
	if err != nil {
		return domain_models.Session{}, err
	}
	return h.Snapshot(), nil
}

func (s *SessionService) RecordTurn(id, role, content string) error {
	h, err := s.handle(id)
	if err != nil {
		return err
	}
	h.Update(func(sess *domain_models.Session) {
		sess.History = append(sess.History, domain_models.Turn{
			Role:      role,
			Content:   content,
			Timestamp: time.Now(),
		})
	})
	return nil
}

func (s *SessionService) SetBudget(id string, budget int) error {
	h, err := s.handle(id)
	if err != nil {
		return err
	}
	h.Update(func(sess *domain_models.Session) {
		if budget > 0 {
			b := budget
			sess.Budget = &b
		}
	})
	return nil
}

func (s *SessionService) Rescore(id string, hints domain_models.FilterHints) ([]domain_models.MatchResult, error) {
	h, err := s.handle(id)
	if err != nil {
		return nil, err
	}

	var results []domain_models.MatchResult
	var scoreErr error

	// The handle lock is held across the whole fetch-score-store cycle, so
	// two concurrent rescores on one session cannot interleave: the stored
	// results always correspond to one complete invocation.
	h.Update(func(sess *domain_models.Session) {
		sess.Hints = sess.Hints.Merge(hints)
		results, scoreErr = s.matcher.FindMatches(sess.Profile, sess.Budget, sess.Hints, DefaultTopN)
		if scoreErr == nil {
			sess.Results = results
		}
	})

	if scoreErr != nil {
		return nil, scoreErr
	}
	return results, nil
}
