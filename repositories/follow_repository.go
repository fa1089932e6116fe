package repositories

import (
	"errors"

	"github.com/postline/api-go/models"
	"gorm.io/gorm"
)

// FollowRepository manages the directed follower->author subscription edges.
type FollowRepository interface {
	// Create inserts the edge if absent. Creating an edge that already
	// exists is not an error; the relation behaves as a set.
	Create(follow *models.Follow) error
	// Delete removes the edge; deleting an absent edge is a no-op.
	Delete(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
	AuthorIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) Create(follow *models.Follow) error {
	err := r.db.Create(follow).Error
	// A concurrent request may have inserted the same edge after our
	// existence check; the unique index turns that into a duplicate-key
	// error, which means the edge is already there.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *PostgresFollowRepository) Delete(userID, authorID uint) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) AuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return ids, err
}
