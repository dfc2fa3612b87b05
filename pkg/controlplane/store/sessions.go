package store

import (
	"context"
	"time"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// CreateSession persists an editor session, minting an ID when absent.
func (s *GORMStore) CreateSession(ctx context.Context, session *models.EditorSession) (string, error) {
	return createWithID(s.db, ctx, session,
		func(es *models.EditorSession, id string) { es.ID = id },
		session.ID, models.ErrSessionNotFound)
}

// GetSessionByToken retrieves a session by its bearer token.
func (s *GORMStore) GetSessionByToken(ctx context.Context, token string) (*models.EditorSession, error) {
	return getByField[models.EditorSession](s.db, ctx, "token", token, models.ErrSessionNotFound)
}

// ConsumeSession transitions the session from Issued to Consumed. The update
// is guarded on the issued state so exactly one of two racing commits wins;
// the loser sees ErrSessionNotFound and must not apply its write.
func (s *GORMStore) ConsumeSession(ctx context.Context, token string, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.EditorSession{}).
		Where("token = ? AND state = ?", token, models.SessionIssued).
		Updates(map[string]any{
			"state":       models.SessionConsumed,
			"consumed_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}

// ExpireSession transitions the session from Issued to Expired. Sessions
// already in a terminal state are left alone.
func (s *GORMStore) ExpireSession(ctx context.Context, token string) error {
	result := s.db.WithContext(ctx).Model(&models.EditorSession{}).
		Where("token = ? AND state = ?", token, models.SessionIssued).
		Update("state", models.SessionExpired)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
