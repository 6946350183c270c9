package out

import (
	"context"

	"chronicle/internal/modules/session/domain"
)

type SessionStore interface {
	LoadSessions(ctx context.Context, campaignID string) ([]domain.Session, error)
	SaveSessions(ctx context.Context, campaignID string, sessions []domain.Session) error
}

// TimelineExporter renders a campaign snapshot somewhere outside the store.
type TimelineExporter interface {
	Export(ctx context.Context, dir string, snapshot domain.Snapshot) ([]string, error)
}
