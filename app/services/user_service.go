package services

import (
	"context"

	"inkwell/app/auth"
	"inkwell/app/errs"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// Session is a successful login: the account plus a signed credential.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService handles registration and login.
type UserService struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
}

func NewUserService(users repositories.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register creates an account. The email must be unused; the password
// is stored only as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	user, err := reg.NewUser()
	if err != nil {
		return nil, errs.Internal(err)
	}
	err = s.users.Create(user)
	if err == repositories.ErrDuplicateEmail {
		return nil, errs.Conflict("email already registered")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return user, nil
}

// Login checks the credentials and issues a token. Unknown email and
// wrong password fail identically so the response does not reveal
// which one was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(email)
	if err == repositories.ErrNotFound {
		return nil, errs.Authentication("invalid email or password")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	if !user.CheckPassword(password) {
		return nil, errs.Authentication("invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &Session{User: user, Token: token}, nil
}
