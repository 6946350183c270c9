package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"chronicle/internal/modules/session/domain"
	sessionout "chronicle/internal/modules/session/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/id"
	"chronicle/internal/platform/locale"
	"chronicle/internal/platform/logging"
)

var errNoScope = fmt.Errorf("no campaign loaded: %w", apperrors.ErrPrecondition)

// SessionService keeps the active campaign's timeline in memory, sorted
// newest first, and writes every change through to the store.
type SessionService struct {
	idGen id.Generator
	store sessionout.SessionStore
	log   *zap.Logger

	mu    sync.Mutex
	scope string
	list  []domain.Session
}

func NewSessionService(idGen id.Generator, store sessionout.SessionStore, logger *zap.Logger) *SessionService {
	return &SessionService{idGen: idGen, store: store, log: logging.OrNop(logger)}
}

// LoadScope discards the in-memory timeline and reads campaignID's partition.
func (s *SessionService) LoadScope(ctx context.Context, campaignID string) error {
	list, err := s.store.LoadSessions(ctx, campaignID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = campaignID
	s.list = list
	s.log.Debug("sessions loaded", zap.String("campaign_id", campaignID), zap.Int("count", len(list)))
	return nil
}

func (s *SessionService) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

func (s *SessionService) List(_ context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return nil, errNoScope
	}
	out := make([]domain.Session, 0, len(s.list))
	for _, session := range s.list {
		out = append(out, domain.Normalize(session))
	}
	return out, nil
}

func (s *SessionService) Get(_ context.Context, sessionID string) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return domain.Session{}, false, errNoScope
	}
	session, ok := domain.Find(s.list, sessionID)
	if !ok {
		return domain.Session{}, false, nil
	}
	return domain.Normalize(session), true, nil
}

// Create inserts into the active campaign.
func (s *SessionService) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	return s.CreateIn(ctx, s.Scope(), session)
}

// CreateIn inserts into campaignID, which need not be active. Generation
// results that arrive after a campaign switch land in the campaign the user
// started from.
func (s *SessionService) CreateIn(ctx context.Context, campaignID string, session domain.Session) (domain.Session, error) {
	if session.ID == "" {
		session.ID = s.idGen.New()
	}
	session = domain.Normalize(session)
	err := s.mutate(ctx, campaignID, func(list []domain.Session) ([]domain.Session, bool) {
		return domain.Insert(list, session), true
	})
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Update replaces the record with the same id and re-sorts. Unknown ids are a
// no-op.
func (s *SessionService) Update(ctx context.Context, session domain.Session) (domain.Session, bool, error) {
	var updated domain.Session
	var found bool
	err := s.mutate(ctx, s.Scope(), func(list []domain.Session) ([]domain.Session, bool) {
		var next []domain.Session
		next, updated, found = domain.Replace(list, session)
		return next, found
	})
	if err != nil || !found {
		return domain.Session{}, false, err
	}
	return updated, true, nil
}

// Mutate applies fn to the record with sessionID as it is stored right now
// in campaignID, then saves it with Update's rules. It is how results of a
// generation call are written back; a session deleted in the meantime is
// left alone.
func (s *SessionService) Mutate(ctx context.Context, campaignID, sessionID string, fn func(*domain.Session)) (domain.Session, bool, error) {
	var updated domain.Session
	var found bool
	err := s.mutate(ctx, campaignID, func(list []domain.Session) ([]domain.Session, bool) {
		current, ok := domain.Find(list, sessionID)
		if !ok {
			return list, false
		}
		current = domain.Normalize(current)
		fn(&current)
		current.ID = sessionID
		var next []domain.Session
		next, updated, found = domain.Replace(list, current)
		return next, found
	})
	if err != nil || !found {
		return domain.Session{}, false, err
	}
	return updated, true, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID string) (bool, error) {
	var removed bool
	err := s.mutate(ctx, s.Scope(), func(list []domain.Session) ([]domain.Session, bool) {
		var next []domain.Session
		next, removed = domain.Remove(list, sessionID)
		return next, removed
	})
	return removed, err
}

// SetTranslation caches text for lang on a session of the active campaign.
// An existing translation is kept.
func (s *SessionService) SetTranslation(ctx context.Context, sessionID string, lang locale.Language, text string) (domain.TranslationResult, error) {
	result, _, err := s.SetTranslationFor(ctx, s.Scope(), sessionID, lang, text, nil)
	return result, err
}

// SetTranslationFor is SetTranslation for any campaign. With sourceStory set,
// the translation is dropped as stale when the session's story has changed
// since the text was produced. It also returns the translation the record
// holds afterwards, which differs from text when one was already cached.
func (s *SessionService) SetTranslationFor(ctx context.Context, campaignID, sessionID string, lang locale.Language, text string, sourceStory *string) (domain.TranslationResult, string, error) {
	result := domain.TranslationMissing
	var cached string
	err := s.mutate(ctx, campaignID, func(list []domain.Session) ([]domain.Session, bool) {
		var next []domain.Session
		next, result = domain.WithTranslation(list, sessionID, lang, text, sourceStory)
		if idx := slices.IndexFunc(next, func(x domain.Session) bool { return x.ID == sessionID }); idx >= 0 {
			cached, _ = next[idx].Translation(lang)
		}
		return next, result == domain.TranslationStored
	})
	if err != nil {
		return "", "", err
	}
	return result, cached, nil
}

// mutate runs fn over the current list of campaignID under the lock and
// persists the result when fn reports a change. The in-memory timeline only
// moves once the store accepted the write.
func (s *SessionService) mutate(ctx context.Context, campaignID string, fn func([]domain.Session) ([]domain.Session, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if campaignID == "" {
		return errNoScope
	}

	list := s.list
	if campaignID != s.scope {
		stored, err := s.store.LoadSessions(ctx, campaignID)
		if err != nil {
			return err
		}
		list = stored
	}
	next, changed := fn(list)
	if !changed {
		return nil
	}
	if err := s.store.SaveSessions(ctx, campaignID, next); err != nil {
		return err
	}
	if campaignID == s.scope {
		s.list = next
	}
	return nil
}
