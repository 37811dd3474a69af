package jwtutil

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"bugtracker/backend/app/models"
	"bugtracker/backend/app/session"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrTokenExpired = errors.New("session token expired")

type Claims struct {
	UserName string      `json:"uname"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Signer issues and verifies session tokens. The token carries the
// session snapshot so the user record is not consulted per request.
type Signer struct {
	Secret []byte
	Issuer string
	Now    func() time.Time
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Signer) Sign(u *models.User) (string, session.Context, error) {
	now := s.now()
	sc := session.Context{
		UserID:    u.ID,
		UserName:  u.Name,
		Role:      u.Role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(session.TTL).Truncate(time.Second),
	}
	claims := Claims{
		UserName: sc.UserName, Role: sc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sc.TokenID,
			Subject:   strconv.FormatUint(uint64(sc.UserID), 10),
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sc.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", session.Context{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, sc, nil
}

func (s *Signer) Parse(tokenStr string) (session.Context, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return session.Context{}, ErrTokenExpired
	}
	if err != nil {
		return session.Context{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return session.Context{}, jwt.ErrTokenInvalidClaims
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return session.Context{}, jwt.ErrTokenInvalidClaims
	}
	return session.Context{
		UserID:    uint(uid),
		UserName:  claims.UserName,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
