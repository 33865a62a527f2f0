package models

import "time"

// Category classifies a post. Only two categories exist.
type Category string

const (
	CategoryScientific Category = "Scientific"
	CategoryIT         Category = "IT"
)

// Status is the moderation lifecycle flag controlling public
// visibility of a post.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Role determines moderation authority.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Post represents a blog post subject to moderation.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	Category  Category  `json:"category" validate:"required,oneof=Scientific IT"`
	Tags      []string  `json:"tags"`
	Image     string    `json:"image" validate:"required"`
	UserID    int       `json:"userId" validate:"required,gte=1"`
	Status    Status    `json:"status" validate:"required,oneof=pending approved rejected"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User represents a registered account.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-" validate:"required"`
	Role         Role      `json:"role" validate:"required,oneof=user admin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PostDraft is the input for submitting a new post. Image holds the
// stored asset path, already persisted by the upload layer.
type PostDraft struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category Category `json:"category" validate:"required,oneof=Scientific IT"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image" validate:"required"`
}

// PostPatch is a partial update: nil fields are left untouched.
type PostPatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Category *Category `json:"category"`
	Tags     *[]string `json:"tags"`
	Image    *string   `json:"image"`
}

// Registration is the input for creating an account.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"omitempty,oneof=user admin"`
}

// OwnerInfo is the slice of User attached to posts in admin listings.
type OwnerInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// PostWithOwner annotates a post with its owner for moderation views.
type PostWithOwner struct {
	Post
	Owner OwnerInfo `json:"user"`
}
