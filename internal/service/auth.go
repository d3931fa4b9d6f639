package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BuzzLyutic/todo-api/internal/auth"
	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
)

// PasswordHasher is a one-way password hash with constant-time verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies access tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
	Parse(token string) (int64, error)
}

// Session is the result of a successful login.
type Session struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users     repo.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	dummyHash string
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	// хэш с той же стоимостью, что и настоящие; нужен для логина несуществующего пользователя
	dummy, _ := hasher.Hash("todo-api-dummy-password")
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	// Быстрая проверка; гонку закрывает ограничение UNIQUE в БД
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return model.User{}, ErrUserExists
	case !errors.Is(err, repo.ErrorNotFound):
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return model.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return model.User{}, err
	}

	user, err := s.users.Create(ctx, model.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, repo.ErrorConflict) {
			return model.User{}, ErrUserExists
		}
		return model.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login does not reveal whether the username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			// сравниваем с фиктивным хэшем, чтобы время ответа не выдавало существование пользователя
			s.hasher.Verify(password, s.dummyHash)
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: user.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// Verify returns the user id of a valid token.
func (s *AuthService) Verify(token string) (int64, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return userID, nil
}
