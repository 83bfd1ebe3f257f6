package ports

import "context"

// TokenPair is the credential set issued on registration and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the account and token lifecycle. Token operations
// are pure (no I/O): all session state lives in the client-held token.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*TokenPair, error)
	// Login returns a fresh token pair and the account's display name.
	Login(ctx context.Context, email, password string) (*TokenPair, string, error)
	// RefreshAccessToken mints a new access token from a valid refresh
	// token. The refresh token itself is not rotated or invalidated.
	RefreshAccessToken(refreshToken string) (string, error)
	// VerifyAccessToken returns the email claim of a valid access token.
	// Failures are three-way: domain.ErrNoToken, *domain.TokenExpiredError
	// (carrying the original expiry), or domain.ErrInvalidToken.
	VerifyAccessToken(token string) (string, error)
}
