package httpapi

import (
	"errors"
	"log"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"mydukaan/backend/internal/domain"
)

// AuthManager validates owner passcodes and issues bearer tokens. There is a
// single implicit owner account; any configured passcode unlocks it.
type AuthManager struct {
	secret         []byte
	tokenTTL       time.Duration
	passcodeHashes [][]byte
}

// defaultPasscodes mirror the passcodes the dashboard originally shipped
// with. Deployments should override them via PASSCODES.
var defaultPasscodes = []string{"admin", "1234"}

func NewAuthManager(secret string, tokenTTL time.Duration, passcodes []string) *AuthManager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	if len(passcodes) == 0 {
		log.Printf("WARN httpapi: no PASSCODES configured, falling back to built-in defaults")
		passcodes = defaultPasscodes
	}

	hashes := make([][]byte, 0, len(passcodes))
	for _, passcode := range passcodes {
		hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		hashes = append(hashes, hash)
	}

	return &AuthManager{
		secret:         []byte(secret),
		tokenTTL:       tokenTTL,
		passcodeHashes: hashes,
	}
}

func (a *AuthManager) Login(req domain.LoginRequest) (domain.LoginResponse, error) {
	if !a.verifyPasscode(req.Passcode) {
		return domain.LoginResponse{}, errors.New("invalid passcode")
	}

	expiresAt := time.Now().UTC().Add(a.tokenTTL)
	token, err := a.sign(expiresAt)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

func (a *AuthManager) verifyPasscode(passcode string) bool {
	if passcode == "" {
		return false
	}
	for _, hash := range a.passcodeHashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(passcode)) == nil {
			return true
		}
	}
	return false
}

func (a *AuthManager) ParseToken(tokenStr string) (domain.Actor, error) {
	claims := &jwtlib.RegisteredClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return domain.Actor{}, errors.New("invalid or expired token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, errors.New("invalid token subject")
	}
	return domain.Actor{Username: sub}, nil
}

func (a *AuthManager) sign(expiresAt time.Time) (string, error) {
	claims := jwtlib.RegisteredClaims{
		Subject:   "owner",
		IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		Issuer:    "mydukaan",
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}
