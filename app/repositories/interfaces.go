package repositories

import "inkwell/app/models"

// PostFilter narrows post listings. Nil fields match everything.
type PostFilter struct {
	Status   *models.Status
	Category *models.Category
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List(filter PostFilter, limit, offset int) ([]*models.Post, error)
	ListNewestFirst() ([]*models.Post, error)
	Count(filter PostFilter) (int, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}
