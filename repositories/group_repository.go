package repositories

import (
	"github.com/postline/api-go/models"
	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id uint) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	All() ([]models.Group, error)
	// Delete removes the group; its posts survive with group_id set to
	// NULL (ON DELETE SET NULL).
	Delete(id uint) error
}

// PostgresGroupRepository implements GroupRepository for PostgreSQL
type PostgresGroupRepository struct {
	db *gorm.DB
}

func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

func (r *PostgresGroupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) All() ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Order("title").Find(&groups).Error
	return groups, err
}

func (r *PostgresGroupRepository) Delete(id uint) error {
	return r.db.Delete(&models.Group{}, id).Error
}
