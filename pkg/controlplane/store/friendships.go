package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// UpsertUser inserts or refreshes a directory entry. Called on every
// authenticated request, so it has to be cheap: a single INSERT ... ON
// CONFLICT that only rewrites the username.
func (s *GORMStore) UpsertUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username"}),
	}).Create(user).Error
}

// GetUser retrieves a directory entry by subject ID.
func (s *GORMStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

// GetUserByUsername retrieves a directory entry by exact username.
func (s *GORMStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "username", username, models.ErrUserNotFound)
}

// SearchUsers returns up to limit directory entries whose username contains
// the query substring.
func (s *GORMStore) SearchUsers(ctx context.Context, query string, limit int) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).
		Where("username LIKE ?", "%"+query+"%").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreateFriendRequest records a pending edge from requester to addressee.
// An edge already existing in either direction, pending or accepted, fails
// with ErrDuplicateFriendship.
func (s *GORMStore) CreateFriendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error) {
	var created *models.Friendship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.WithContext(ctx).Model(&models.Friendship{}).
			Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
				requesterID, addresseeID, addresseeID, requesterID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return models.ErrDuplicateFriendship
		}
		f := &models.Friendship{
			RequesterID: requesterID,
			AddresseeID: addresseeID,
			Status:      models.FriendshipPending,
		}
		if _, err := createWithID(tx, ctx, f,
			func(fr *models.Friendship, id string) { fr.ID = id },
			f.ID, models.ErrDuplicateFriendship); err != nil {
			return err
		}
		created = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AcceptFriendRequest flips a pending edge to accepted. Only the addressee
// may accept; anyone else sees ErrFriendshipNotFound.
func (s *GORMStore) AcceptFriendRequest(ctx context.Context, id string, addresseeID string) (*models.Friendship, error) {
	result := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("id = ? AND addressee_id = ? AND status = ?", id, addresseeID, models.FriendshipPending).
		Update("status", models.FriendshipAccepted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrFriendshipNotFound
	}
	return getByField[models.Friendship](s.db, ctx, "id", id, models.ErrFriendshipNotFound)
}

// ListFriendships returns every edge touching the user, pending and
// accepted, newest first.
func (s *GORMStore) ListFriendships(ctx context.Context, userID string) ([]*models.Friendship, error) {
	var friendships []*models.Friendship
	err := s.db.WithContext(ctx).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

// AreFriends reports whether an accepted edge exists between the two users
// in either direction.
func (s *GORMStore) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("status = ? AND ((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?))",
			models.FriendshipAccepted, a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
