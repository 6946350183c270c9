package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chronicle/internal/modules/character/domain"
	characterout "chronicle/internal/modules/character/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/id"
	"chronicle/internal/platform/logging"
)

var errNoScope = fmt.Errorf("no campaign loaded: %w", apperrors.ErrPrecondition)

// CharacterService holds the roster of the active campaign in memory and
// writes every change through to the store.
type CharacterService struct {
	idGen id.Generator
	store characterout.CharacterStore
	log   *zap.Logger

	mu    sync.Mutex
	scope string
	list  []domain.Character
}

func NewCharacterService(idGen id.Generator, store characterout.CharacterStore, logger *zap.Logger) *CharacterService {
	return &CharacterService{idGen: idGen, store: store, log: logging.OrNop(logger)}
}

// LoadScope discards the in-memory roster and reads campaignID's partition.
func (s *CharacterService) LoadScope(ctx context.Context, campaignID string) error {
	list, err := s.store.LoadCharacters(ctx, campaignID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = campaignID
	s.list = list
	s.log.Debug("characters loaded", zap.String("campaign_id", campaignID), zap.Int("count", len(list)))
	return nil
}

func (s *CharacterService) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

func (s *CharacterService) List(_ context.Context) ([]domain.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return nil, errNoScope
	}
	return append([]domain.Character(nil), s.list...), nil
}

func (s *CharacterService) Get(_ context.Context, characterID string) (domain.Character, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return domain.Character{}, false, errNoScope
	}
	c, ok := domain.Find(s.list, characterID)
	return c, ok, nil
}

// Create appends c, assigning an id when it has none.
func (s *CharacterService) Create(ctx context.Context, c domain.Character) (domain.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return domain.Character{}, errNoScope
	}
	if c.ID == "" {
		c.ID = s.idGen.New()
	}
	next := domain.Append(s.list, c)
	if err := s.store.SaveCharacters(ctx, s.scope, next); err != nil {
		return domain.Character{}, err
	}
	s.list = next
	return c, nil
}

// Update replaces the record with the same id; unknown ids are a no-op.
func (s *CharacterService) Update(ctx context.Context, c domain.Character) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return false, errNoScope
	}
	next, ok := domain.Replace(s.list, c)
	if !ok {
		return false, nil
	}
	if err := s.store.SaveCharacters(ctx, s.scope, next); err != nil {
		return false, err
	}
	s.list = next
	return true, nil
}

// Mutate applies fn to the current record with id in the given campaign, if
// it still exists. It is the write-back path for results that arrive after a
// generation call, when the record may have changed in the meantime. A
// campaign that is no longer active is updated in the store directly.
func (s *CharacterService) Mutate(ctx context.Context, campaignID, characterID string, fn func(*domain.Character)) (domain.Character, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if campaignID == "" {
		return domain.Character{}, false, errNoScope
	}

	list := s.list
	if campaignID != s.scope {
		stored, err := s.store.LoadCharacters(ctx, campaignID)
		if err != nil {
			return domain.Character{}, false, err
		}
		list = stored
	}
	current, ok := domain.Find(list, characterID)
	if !ok {
		return domain.Character{}, false, nil
	}
	fn(&current)
	current.ID = characterID
	next, _ := domain.Replace(list, current)
	if err := s.store.SaveCharacters(ctx, campaignID, next); err != nil {
		return domain.Character{}, false, err
	}
	if campaignID == s.scope {
		s.list = next
	}
	return current, true, nil
}

// Delete removes the character. Sessions that reference it are untouched.
func (s *CharacterService) Delete(ctx context.Context, characterID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return false, errNoScope
	}
	next, ok := domain.Remove(s.list, characterID)
	if !ok {
		return false, nil
	}
	if err := s.store.SaveCharacters(ctx, s.scope, next); err != nil {
		return false, err
	}
	s.list = next
	return true, nil
}

func (s *CharacterService) Resolve(_ context.Context, ids []string) ([]domain.Character, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return nil, nil, errNoScope
	}
	known, unknown := domain.Resolve(s.list, ids)
	return known, unknown, nil
}
