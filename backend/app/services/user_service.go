package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bugtracker/backend/app/apperr"
	jwtutil "bugtracker/backend/app/jwt"
	"bugtracker/backend/app/models"
	"bugtracker/backend/app/repo"
	"bugtracker/backend/app/session"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UserService struct {
	users   *repo.UserRepository
	signer  *jwtutil.Signer
	revoked repo.RevocationStore
	cost    int
}

func NewUserService(users *repo.UserRepository, signer *jwtutil.Signer, revoked repo.RevocationStore) *UserService {
	return &UserService{users: users, signer: signer, revoked: revoked, cost: bcrypt.DefaultCost}
}

// Register creates a reporter or admin account. Emails are compared
// exactly, so addresses differing only in case are distinct accounts.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("register: %w", apperr.ErrValidation)
	}
	count, err := s.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return nil, storeErr("count users by email", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("register %s: %w", in.Email, apperr.ErrDuplicateEmail)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Name: in.Name, Email: in.Email, PasswordHash: string(hash), Role: models.ParseRole(in.Role)}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("register %s: %w", in.Email, apperr.ErrDuplicateEmail)
		}
		return nil, storeErr("create user", err)
	}
	return u, nil
}

// Login verifies credentials and issues a session token. The returned
// session snapshots the user's name and role at this instant.
func (s *UserService) Login(ctx context.Context, email, password string) (string, session.Context, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", session.Context{}, fmt.Errorf("login: %w", apperr.ErrValidation)
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", session.Context{}, storeErr("find user by email", err)
	}
	if u == nil {
		return "", session.Context{}, fmt.Errorf("login %s: %w", email, apperr.ErrUserNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", session.Context{}, fmt.Errorf("login %s: %w", email, apperr.ErrInvalidCredentials)
	}
	token, sc, err := s.signer.Sign(u)
	if err != nil {
		return "", session.Context{}, err
	}
	return token, sc, nil
}

// Authenticate resolves a session token. Expired, malformed and revoked
// tokens all yield apperr.ErrUnauthenticated.
func (s *UserService) Authenticate(ctx context.Context, token string) (session.Context, error) {
	if token == "" {
		return session.Context{}, apperr.ErrUnauthenticated
	}
	sc, err := s.signer.Parse(token)
	if err != nil {
		return session.Context{}, fmt.Errorf("%w: %w", apperr.ErrUnauthenticated, err)
	}
	revoked, err := s.revoked.IsRevoked(ctx, sc.TokenID)
	if err != nil {
		return session.Context{}, storeErr("check revocation", err)
	}
	if revoked {
		return session.Context{}, fmt.Errorf("session %s revoked: %w", sc.TokenID, apperr.ErrUnauthenticated)
	}
	return sc, nil
}

// Logout revokes the session until its natural expiry.
func (s *UserService) Logout(ctx context.Context, sc session.Context) error {
	if sc.TokenID == "" || sc.Expired(time.Now()) {
		return nil
	}
	if err := s.revoked.Revoke(ctx, sc.TokenID, sc.ExpiresAt); err != nil {
		return storeErr("revoke session", err)
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, sc session.Context) ([]models.User, error) {
	if !sc.IsAdmin() {
		return nil, fmt.Errorf("list users: %w", apperr.ErrAccessDenied)
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

// ReporterNames maps reporter ids to display names for rendering.
func (s *UserService) ReporterNames(ctx context.Context, bugs ...models.Bug) (map[uint]string, error) {
	seen := make(map[uint]bool, len(bugs))
	var ids []uint
	for _, b := range bugs {
		if !seen[b.ReporterID] {
			seen[b.ReporterID] = true
			ids = append(ids, b.ReporterID)
		}
	}
	names, err := s.users.NamesByID(ctx, ids)
	if err != nil {
		return nil, storeErr("reporter names", err)
	}
	return names, nil
}
