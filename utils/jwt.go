package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type AdminClaims struct {
	AdminID     int64  `json:"adminId"`
	Email       string `json:"email"`
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies admin tokens with HS256.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, sessionTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) SessionTTL() time.Duration {
	return m.sessionTTL
}

func (m *TokenManager) ResetTTL() time.Duration {
	return m.resetTTL
}

func (m *TokenManager) IssueSession(adminID int64, email string) (string, error) {
	return m.issue(AdminClaims{AdminID: adminID, Email: email, Purpose: PurposeSession}, m.sessionTTL)
}

// IssueReset binds the token to the current password hash; once the password
// changes the token stops verifying.
func (m *TokenManager) IssueReset(adminID int64, email, passwordHash string) (string, error) {
	return m.issue(AdminClaims{
		AdminID:     adminID,
		Email:       email,
		Purpose:     PurposeReset,
		Fingerprint: PasswordFingerprint(passwordHash),
	}, m.resetTTL)
}

func (m *TokenManager) issue(claims AdminClaims, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(claims.AdminID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Parse(tokenString, purpose string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func PasswordFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
