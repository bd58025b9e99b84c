// Package session emite y valida los tokens de sesión administrativa.
package session

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid session token")
	ErrTokenExpired = errors.New("expired session token")
)

// Issuer firma tokens de sesión con HS256. El token solo transporta el ID de
// sesión (sid) y la expiración; la autoridad final la tiene el registro
// server-side de la sesión.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// TTL retorna la vigencia configurada de las sesiones.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue firma un token para el sid dado y retorna el JWT y su expiración.
func (i *Issuer) Issue(sid string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.ttl)

	claims := jwtv5.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma y expiración, y retorna el sid del token.
func (i *Issuer) Parse(token string) (string, error) {
	return i.parse(token, jwtv5.WithValidMethods([]string{"HS256"}))
}

// ParseAllowExpired valida la firma pero ignora la expiración. Lo usa el
// logout: una sesión vencida todavía se puede revocar.
func (i *Issuer) ParseAllowExpired(token string) (string, error) {
	return i.parse(token, jwtv5.WithValidMethods([]string{"HS256"}), jwtv5.WithoutClaimsValidation())
}

func (i *Issuer) parse(token string, opts ...jwtv5.ParserOption) (string, error) {
	parsed, err := jwtv5.Parse(token, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrTokenInvalid
	}
	return sid, nil
}
