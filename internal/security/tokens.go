package security

import (
	"crypto"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or issued for another audience.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims are the claims of an access token. Subject is the user ID; OrgID is the organization the
// session is currently acting in.
type AccessClaims struct {
	jwt.RegisteredClaims
	OrgID     string `json:"org_id"`
	SessionID string `json:"session_id"`
}

// TokenProvider issues and validates access JWTs signed with RS256 or ES256.
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	issuer     string
	audience   string
	accessTTL  time.Duration
}

// NewTokenProvider returns a TokenProvider. privateKey may be nil for a validate-only provider.
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, accessTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
	}
}

// IssueAccess signs an access token for the session. It returns the token and its expiry.
func (p *TokenProvider) IssueAccess(sessionID, userID, orgID string) (string, time.Time, error) {
	if p.privateKey == nil {
		return "", time.Time{}, ErrInvalidKey
	}
	var method jwt.SigningMethod
	switch KeyAlg(p.privateKey.Public()) {
	case "RS256":
		method = jwt.SigningMethodRS256
	case "ES256":
		method = jwt.SigningMethodES256
	default:
		return "", time.Time{}, ErrInvalidKey
	}
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now().UTC()
	expiresAt := now.Add(p.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		OrgID:     orgID,
		SessionID: sessionID,
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(p.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateAccess checks signature, expiry, issuer and audience and returns the session, user and org.
func (p *TokenProvider) ValidateAccess(tokenString string) (sessionID, userID, orgID string, err error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, p.keyFunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", "", "", ErrInvalidToken
	}
	if !slices.Contains([]string(claims.Audience), p.audience) {
		return "", "", "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", "", "", ErrInvalidToken
	}
	return claims.SessionID, claims.Subject, claims.OrgID, nil
}

func (p *TokenProvider) keyFunc(*jwt.Token) (interface{}, error) {
	return p.publicKey, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
