package repositories

import (
	"github.com/postline/api-go/models"
	"gorm.io/gorm"
)

// PostRepository defines the explicit query surface for posts. Handlers go
// through these functions instead of lazy relation traversal, so every data
// access is visible at the call site.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	// Update writes text, group and image only. ID, author and creation
	// time are never touched by an edit.
	Update(post *models.Post) error
	// Delete removes the post; its comments go with it (ON DELETE CASCADE).
	Delete(id uint) error
	Newest(limit, offset int) ([]models.Post, error)
	CountAll() (int64, error)
	ByAuthor(authorID uint, limit, offset int) ([]models.Post, error)
	CountByAuthor(authorID uint) (int64, error)
	ByGroup(groupID uint, limit, offset int) ([]models.Post, error)
	CountByGroup(groupID uint) (int64, error)
	ByAuthors(authorIDs []uint, limit, offset int) ([]models.Post, error)
	CountByAuthors(authorIDs []uint) (int64, error)
}

// PostgresPostRepository implements PostRepository on GORM/Postgres
type PostgresPostRepository struct {
	db *gorm.DB
}

func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) Update(post *models.Post) error {
	return r.db.Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "image_url").
		Updates(map[string]interface{}{
			"text":      post.Text,
			"group_id":  post.GroupID,
			"image_url": post.ImageURL,
		}).Error
}

func (r *PostgresPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// newest is the shared base query: posts with their author and group,
// ordered newest-first.
func (r *PostgresPostRepository) newest() *gorm.DB {
	return r.db.Preload("Author").Preload("Group").Order("created_at DESC, id DESC")
}

func (r *PostgresPostRepository) Newest(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.newest().Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) ByAuthor(authorID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.newest().Where("author_id = ?", authorID).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) ByGroup(groupID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.newest().Where("group_id = ?", groupID).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountByGroup(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) ByAuthors(authorIDs []uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.newest().Where("author_id IN (?)", authorIDs).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountByAuthors(authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id IN (?)", authorIDs).Count(&count).Error
	return count, err
}
