package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks a stored user against its field rules.
func (u *User) Validate() error {
	return checkStruct("invalid user", u)
}

// BeforeCreate fills lifecycle fields before first persistence.
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// SetPassword replaces the stored credential with a bcrypt hash of
// plain. The plaintext is never persisted.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// OwnerInfo projects the user fields exposed in admin listings.
func (u *User) OwnerInfo() OwnerInfo {
	return OwnerInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Validate checks a registration request, naming every violated field.
func (r Registration) Validate() error {
	return checkStruct("invalid registration", r)
}

// NewUser builds an account from a validated registration. The role
// defaults to user when the request does not name one.
func (r Registration) NewUser() (*User, error) {
	user := &User{
		Name:  r.Name,
		Email: r.Email,
		Role:  r.Role,
	}
	if err := user.SetPassword(r.Password); err != nil {
		return nil, err
	}
	user.BeforeCreate()
	return user, nil
}
