package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// AuthService implements registration, login and the stateless token
// lifecycle. Both token kinds are HS256-signed with the same server secret
// and carry the account email as the identity claim.
type AuthService struct {
	users      ports.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.TokenPair, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:            email,
		Username:         username,
		PasswordHash:     string(hash),
		ProfileImagePath: "",
		NumberOfPlanes:   0,
		CreatedAt:        time.Now().UTC(),
	}

	if _, err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueTokenPair(email)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("user registered")
	return pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password, so login cannot be used to
			// enumerate registered emails.
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(email)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("email", email).Msg("user logged in")
	return pair, user.Username, nil
}

// RefreshAccessToken mints a new access token from a valid refresh token.
// The refresh token is left untouched: there is no rotation and no
// server-side revocation list.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrNoToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, s.keyFunc)
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrInvalidToken
	}

	return s.signToken(email, s.accessTTL, false)
}

// VerifyAccessToken is the gate for every identity-bound operation. It is
// pure: verification never touches the store.
func (s *AuthService) VerifyAccessToken(token string) (string, error) {
	if token == "" {
		return "", domain.ErrNoToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			var expiredAt time.Time
			if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
				expiredAt = exp.Time
			}
			return "", &domain.TokenExpiredError{ExpiredAt: expiredAt}
		}
		return "", domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return "", domain.ErrInvalidToken
	}
	// Refresh tokens are not valid as access tokens.
	if typ, _ := claims["typ"].(string); typ == "refresh" {
		return "", domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrInvalidToken
	}
	return email, nil
}

func (s *AuthService) issueTokenPair(email string) (*ports.TokenPair, error) {
	access, err := s.signToken(email, s.accessTTL, false)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(email, s.refreshTTL, true)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(email string, ttl time.Duration, refresh bool) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	if refresh {
		claims["typ"] = "refresh"
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

func (s *AuthService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.jwtSecret, nil
}
