package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/app/errs"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// Identity is a resolved actor. A nil *Identity means anonymous.
type Identity struct {
	ID   int
	Name string
	Role models.Role
}

// IsAdmin reports whether the identity carries moderation authority.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

type claims struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and parses bearer credentials.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed credential for the user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Parse validates a credential and returns the identity it carries.
// Any signature, format, or expiry problem is an authentication error.
func (s *TokenService) Parse(credential string) (*Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(credential, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.Authentication("invalid or expired token")
	}
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return nil, errs.Authentication("invalid or expired token")
	}
	return &Identity{ID: id, Name: c.Name, Role: c.Role}, nil
}

// Verifier is the identity resolver: it turns a bearer credential into
// an actor identity backed by a live user record.
type Verifier struct {
	tokens *TokenService
	users  repositories.UserRepository
}

func NewVerifier(tokens *TokenService, users repositories.UserRepository) *Verifier {
	return &Verifier{tokens: tokens, users: users}
}

// Verify parses the credential and re-reads the user so the identity
// reflects the current role. A valid token whose user has since been
// removed fails with not found, not an authentication error.
func (v *Verifier) Verify(credential string) (*Identity, error) {
	ident, err := v.tokens.Parse(credential)
	if err != nil {
		return nil, err
	}
	user, err := v.users.GetByID(ident.ID)
	if err == repositories.ErrNotFound {
		return nil, errs.NotFound("user not found")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &Identity{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
