package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	users     repository.UserRepo
	languages repository.LanguageRepo
}

func NewUserService(users repository.UserRepo, languages repository.LanguageRepo) UserService {
	return &userService{users: users, languages: languages}
}

func (s *userService) Current(ctx context.Context) (*domain.User, error) {
	return s.users.GetByLogin(ctx, ActorFrom(ctx))
}

func (s *userService) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return s.users.GetByLogin(ctx, login)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.Lang == "" {
		u.Lang = "en_US"
	}
	if err := domain.Validate(u); err != nil {
		return err
	}
	if err := s.requireLanguage(ctx, u.Lang); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *userService) SetLanguage(ctx context.Context, login, lang string) error {
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return err
	}
	if err := s.requireLanguage(ctx, lang); err != nil {
		return err
	}
	u.Lang = lang
	u.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, u)
}

func (s *userService) requireLanguage(ctx context.Context, code string) error {
	if _, err := s.languages.Get(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.ValidationError{Fields: map[string]string{"lang": fmt.Sprintf("unknown language %q", code)}}
		}
		return err
	}
	return nil
}

func (s *userService) Languages(ctx context.Context) ([]*domain.Language, error) {
	return s.languages.List(ctx)
}

// DateFormat fails when the user's language is not installed.
func (s *userService) DateFormat(ctx context.Context) (string, error) {
	u, err := s.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving current user: %w", err)
	}
	lang, err := s.languages.Get(ctx, u.Lang)
	if err != nil {
		return "", fmt.Errorf("resolving language of %s: %w", u.Login, err)
	}
	return lang.DateFormat, nil
}
