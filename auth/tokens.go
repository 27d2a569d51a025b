package auth

import (
	"errors"
	"fmt"
	"time"

	"escapenote-server/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenExpireIn   = time.Hour
	RefreshTokenExpireIn  = 30 * 24 * time.Hour
	RegisterTokenExpireIn = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of every token. Subject is the user id for access and
// refresh tokens and the email for register tokens.
type Claims struct {
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewTokenIssuer(cfg config.Config) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AtSecret),
		refreshSecret: []byte(cfg.RtSecret),
		now:           time.Now,
	}
}

func (issuer *TokenIssuer) GenerateTokens(userID string) (TokenPair, error) {
	accessToken, err := issuer.sign(issuer.accessSecret, userID, "", AccessTokenExpireIn)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := issuer.sign(issuer.refreshSecret, userID, "", RefreshTokenExpireIn)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// GenerateRegisterToken is handed out after a social sign-in of an unknown
// email, it authorizes the social sign-up that follows
func (issuer *TokenIssuer) GenerateRegisterToken(email string, provider string) (string, error) {
	return issuer.sign(issuer.accessSecret, email, provider, RegisterTokenExpireIn)
}

// ParseAccessToken shares the secret with register tokens, which are told apart by their provider
func (issuer *TokenIssuer) ParseAccessToken(token string) (*Claims, error) {
	claims, err := issuer.parse(issuer.accessSecret, token)
	if err != nil {
		return nil, err
	}
	if claims.Provider != "" {
		return nil, fmt.Errorf("%w: register token used as access token", ErrInvalidToken)
	}
	return claims, nil
}

func (issuer *TokenIssuer) ParseRefreshToken(token string) (*Claims, error) {
	return issuer.parse(issuer.refreshSecret, token)
}

// ParseRegisterToken returns the claims of a register token, which must carry a provider
func (issuer *TokenIssuer) ParseRegisterToken(token string) (*Claims, error) {
	claims, err := issuer.parse(issuer.accessSecret, token)
	if err != nil {
		return nil, err
	}
	if claims.Provider == "" {
		return nil, fmt.Errorf("%w: not a register token", ErrInvalidToken)
	}
	return claims, nil
}

func (issuer *TokenIssuer) sign(secret []byte, subject string, provider string, expireIn time.Duration) (string, error) {
	now := issuer.now()
	claims := Claims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expireIn)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (issuer *TokenIssuer) parse(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(issuer.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
