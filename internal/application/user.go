package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// UserService looks up fixture accounts and issues tokens. Accounts are
// read-only for the lifetime of the process.
type UserService struct {
	users    map[string]user.User
	byName   map[string]string
	tokenTTL time.Duration
}

func NewUserService(users []user.User, tokenTTL time.Duration) *UserService {
	s := &UserService{
		users:    make(map[string]user.User, len(users)),
		byName:   make(map[string]string, len(users)),
		tokenTTL: tokenTTL,
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = 24 * time.Hour
	}
	for _, u := range users {
		s.users[u.ID] = u
		s.byName[strings.ToLower(u.Username)] = u.ID
	}
	return s
}

// Login checks the password against the fixture's bcrypt hash and returns a
// signed token for the account.
func (s *UserService) Login(ctx context.Context, username, password string) (user.LoginResponse, error) {
	id, ok := s.byName[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return user.LoginResponse{}, ErrInvalidCredentials
	}
	u := s.users[id]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.LoginResponse{}, ErrInvalidCredentials
	}
	token, err := middleware.GenerateToken(u.Actor(), s.tokenTTL)
	if err != nil {
		return user.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return user.LoginResponse{Token: token, User: u.Actor()}, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return u, nil
}

// List returns all accounts ordered by username.
func (s *UserService) List(ctx context.Context) []user.User {
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
