package out

import (
	"context"
	"fmt"

	"chronicle/internal/modules/campaign/domain"
	campaignout "chronicle/internal/modules/campaign/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/kv"
)

type KVPartitionStore struct {
	store kv.Store
}

func NewKVPartitionStore(store kv.Store) campaignout.PartitionStore {
	return &KVPartitionStore{store: store}
}

// MigrateLegacy copies the unscoped pre-campaign collections into the given
// campaign's partition byte for byte. Legacy keys stay where they are, and a
// partition that already holds data is never overwritten.
func (s *KVPartitionStore) MigrateLegacy(ctx context.Context, campaignID string) (domain.Migration, error) {
	sessions, err := s.copyIfAbsent(ctx, kv.KeyLegacySessions, kv.SessionsKey(campaignID))
	if err != nil {
		return domain.Migration{}, err
	}
	characters, err := s.copyIfAbsent(ctx, kv.KeyLegacyCharacters, kv.CharactersKey(campaignID))
	if err != nil {
		return domain.Migration{}, err
	}
	return domain.Migration{Sessions: sessions, Characters: characters}, nil
}

func (s *KVPartitionStore) copyIfAbsent(ctx context.Context, from, to string) (bool, error) {
	raw, found, err := s.store.Get(ctx, from)
	if err != nil {
		return false, apperrors.Storage(fmt.Sprintf("read legacy %s", from), err)
	}
	if !found || len(raw) == 0 {
		return false, nil
	}
	if _, exists, err := s.store.Get(ctx, to); err != nil {
		return false, apperrors.Storage(fmt.Sprintf("read %s", to), err)
	} else if exists {
		return false, nil
	}
	if err := s.store.Set(ctx, to, raw); err != nil {
		return false, apperrors.Storage(fmt.Sprintf("migrate %s", from), err)
	}
	return true, nil
}

func (s *KVPartitionStore) DropPartitions(ctx context.Context, campaignID string) error {
	for _, key := range []string{kv.SessionsKey(campaignID), kv.CharactersKey(campaignID)} {
		if err := s.store.Remove(ctx, key); err != nil {
			return apperrors.Storage("drop partition", err)
		}
	}
	return nil
}
