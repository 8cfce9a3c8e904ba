package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "mediahub"

// TokenService issues and verifies the signed session tokens that act
// as bearer credentials. Tokens are stateless: nothing is stored
// server-side, and validity is determined entirely by the HMAC
// signature. They carry no expiry claim — a token stays valid until
// the signing secret is rotated.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given HMAC secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Claims is the identity a verified session token asserts.
type Claims struct {
	UserID   string
	Username string
}

// tokenClaims is the JWT payload. The user ID rides in the standard
// "sub" claim; the username is a private claim.
type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue creates and signs a session token for the given identity.
// Signing is HS256; the encoding is deterministic for fixed inputs and
// issue time.
func (s *TokenService) Issue(userID, username string) (string, error) {
	c := tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and verifies a session token, failing closed: any
// structural corruption, signature mismatch, wrong signing method, or
// token minted under a different secret yields an error and never a
// partially-trusted claim.
//
// jwt.WithValidMethods pins HS256 so a token claiming alg "none" (or
// an RSA public-key confusion attack) is rejected outright.
func (s *TokenService) Verify(tokenStr string) (Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("auth: invalid token claims")
	}
	if c.Subject == "" {
		return Claims{}, errors.New("auth: token has no subject")
	}

	return Claims{UserID: c.Subject, Username: c.Username}, nil
}
