// Package session turns a signed wallet challenge into a bearer token and
// back. It is the server side of "connect wallet" and "disconnect".
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/wallet"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	DefaultNonceTTL = 5 * time.Minute
	DefaultTokenTTL = time.Hour
)

var (
	ErrNonceMismatch   = errors.New("signed message does not contain the challenge nonce")
	ErrAddressMismatch = errors.New("public key does not belong to address")
	ErrInvalidToken    = errors.New("invalid token")
	ErrRevoked         = errors.New("token revoked")
)

// Claims identify a connected wallet.
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

type Challenge struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// VerifyRequest is what the browser wallet returns from signMessage.
type VerifyRequest struct {
	Address     string `json:"address" validate:"required"`
	PublicKey   string `json:"public_key" validate:"required"`
	FullMessage string `json:"full_message" validate:"required"`
	Signature   string `json:"signature" validate:"required"`
}

type Manager struct {
	store    Store
	secret   []byte
	nonceTTL time.Duration
	tokenTTL time.Duration
	now      func() time.Time
}

func NewManager(store Store, secret []byte) *Manager {
	return &Manager{
		store:    store,
		secret:   secret,
		nonceTTL: DefaultNonceTTL,
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
	}
}

// ChallengeMessage is the text the wallet is asked to sign.
func ChallengeMessage(nonce string) string {
	return "Sign in to H2O Bounty\nnonce: " + nonce
}

func (m *Manager) Challenge(ctx context.Context, address string) (*Challenge, error) {
	addr, err := aptos.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	nonce := uuid.NewString()
	if err := m.store.SetNonce(ctx, addr.String(), nonce, m.nonceTTL); err != nil {
		return nil, fmt.Errorf("store nonce: %w", err)
	}
	return &Challenge{Address: addr.String(), Nonce: nonce, Message: ChallengeMessage(nonce)}, nil
}

// Verify consumes the pending challenge and issues a token when the signature
// checks out. A challenge can only be answered once.
func (m *Manager) Verify(ctx context.Context, req VerifyRequest) (string, *Claims, error) {
	addr, err := aptos.ParseAddress(req.Address)
	if err != nil {
		return "", nil, err
	}
	address := addr.String()

	nonce, err := m.store.TakeNonce(ctx, address)
	if err != nil {
		return "", nil, err
	}
	if !strings.Contains(req.FullMessage, nonce) {
		return "", nil, ErrNonceMismatch
	}

	pub, err := wallet.ParsePublicKey(req.PublicKey)
	if err != nil {
		return "", nil, err
	}
	if wallet.AddressFromPublicKey(pub) != address {
		return "", nil, ErrAddressMismatch
	}
	if err := wallet.VerifyMessage(pub, req.FullMessage, req.Signature); err != nil {
		return "", nil, err
	}

	return m.Issue(address)
}

// Issue signs a token for address without a challenge. Used for the server wallet.
func (m *Manager) Issue(address string) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		Address: aptos.NormalizeAddress(address),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   aptos.NormalizeAddress(address),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Parse validates signature, expiry and revocation.
func (m *Manager) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Address == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(m.now()) {
		return nil, ErrInvalidToken
	}

	revoked, err := m.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

// Revoke blocks the token until it would have expired anyway.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	ttl := m.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(m.now())
	}
	return m.store.Revoke(ctx, claims.ID, ttl)
}
