package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mural/internal/config"
	"mural/internal/model"
)

// ErrInvalidSession covers every way a session token can fail to resolve:
// malformed, tampered, expired.
var ErrInvalidSession = errors.New("invalid session")

// SessionService mints and resolves the signed session token carried in
// the client's cookie. The token embeds the identity the handlers need
// (id, username, email, profile-picture reference) so reads never hit the
// store just to know who is asking.
type SessionService struct {
	secret []byte
	maxAge time.Duration
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{
		secret: []byte(cfg.JWTSecret),
		maxAge: time.Duration(cfg.SessionMaxAge) * time.Second,
	}
}

// Mint signs a session token for the identity.
func (s *SessionService) Mint(identity *model.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  identity.UserID,
		"username": identity.Username,
		"email":    identity.Email,
		"exp":      now.Add(s.maxAge).Unix(),
		"iat":      now.Unix(),
	}
	if identity.ProfilePicID != nil {
		claims["profile_pic_id"] = *identity.ProfilePicID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Resolve validates a token and returns the identity it carries, or
// ErrInvalidSession.
func (s *SessionService) Resolve(tokenString string) (*model.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidSession
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	identity := &model.Identity{
		UserID:   int64(userID),
		Username: username,
		Email:    email,
	}
	if picID, ok := claims["profile_pic_id"].(float64); ok {
		id := int64(picID)
		identity.ProfilePicID = &id
	}
	return identity, nil
}

// MaxAge is the cookie lifetime in seconds.
func (s *SessionService) MaxAge() int {
	return int(s.maxAge / time.Second)
}
