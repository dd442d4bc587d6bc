package repositories

import (
	"github.com/frekans/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user directory lookups
type UserRepository interface {
	Exists(id uint) (bool, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	SearchUsers(query string, excludeID uint) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Exists reports whether a user with the given id is present
func (r *PostgresUserRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// SearchUsers searches for users by username (case-insensitive), excluding the
// caller's own row when excludeID is non-zero
func (r *PostgresUserRepository) SearchUsers(query string, excludeID uint) ([]models.User, error) {
	var users []models.User
	q := r.db.Where("LOWER(username) LIKE LOWER(?)", "%"+query+"%")
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
