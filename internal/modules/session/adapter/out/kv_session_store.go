package out

import (
	"context"

	"chronicle/internal/modules/session/domain"
	sessionout "chronicle/internal/modules/session/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/kv"
)

type KVSessionStore struct {
	store kv.Store
}

func NewKVSessionStore(store kv.Store) sessionout.SessionStore {
	return &KVSessionStore{store: store}
}

// LoadSessions returns the partition in canonical order. Records migrated
// from older data are normalized and re-sorted on the way in.
func (s *KVSessionStore) LoadSessions(ctx context.Context, campaignID string) ([]domain.Session, error) {
	var sessions []domain.Session
	if _, err := kv.GetJSON(ctx, s.store, kv.SessionsKey(campaignID), &sessions); err != nil {
		return nil, apperrors.Storage("load sessions", err)
	}
	out := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, domain.Normalize(session))
	}
	domain.SortByDate(out)
	return out, nil
}

func (s *KVSessionStore) SaveSessions(ctx context.Context, campaignID string, sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	if err := kv.SetJSON(ctx, s.store, kv.SessionsKey(campaignID), sessions); err != nil {
		return apperrors.Storage("save sessions", err)
	}
	return nil
}
