package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahinestrog/bookorders/internal/apperr"
	"github.com/ahinestrog/bookorders/internal/auth"
	"github.com/ahinestrog/bookorders/internal/events"
)

type Service struct {
	repo   *Repository
	events events.Publisher
}

func NewService(repo *Repository, pub events.Publisher) *Service {
	return &Service{repo: repo, events: pub}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  Address
}

func (in *RegisterInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Name == "":
		return apperr.E(apperr.InvalidInput, "name is required")
	case !strings.Contains(in.Email, "@") || strings.ContainsAny(in.Email, " \t"):
		return apperr.E(apperr.InvalidInput, "malformed email")
	case len(in.Password) < 4:
		return apperr.E(apperr.InvalidInput, "password too short")
	case strings.TrimSpace(in.Address.Street) == "" ||
		strings.TrimSpace(in.Address.City) == "" ||
		strings.TrimSpace(in.Address.PostalCode) == "":
		return apperr.E(apperr.InvalidInput, "shipping address is incomplete")
	}
	return nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	if u, _ := s.repo.GetByEmail(ctx, in.Email); u != nil {
		return 0, apperr.E(apperr.InvalidInput, "email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	u := &User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Address:      in.Address,
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return 0, err
	}
	if s.events != nil {
		_ = s.events.PublishJSON(events.RKUserRegistered, events.UserRegisteredPayload{
			UserID: id, Name: u.Name, Email: u.Email,
		})
	}
	return id, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", apperr.E(apperr.Unauthenticated, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.E(apperr.Unauthenticated, "invalid credentials")
	}
	token := uuid.NewString()
	if err := s.repo.CreateSession(ctx, token, u.ID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Identify implements auth.Provider.
func (s *Service) Identify(ctx context.Context, token string) auth.Identity {
	if token == "" {
		return auth.Anonymous
	}
	id, err := s.repo.UserBySession(ctx, token)
	if err != nil {
		return auth.Anonymous
	}
	return auth.User(id)
}
