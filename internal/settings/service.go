package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/pkg/config"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/security"
)

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo           *Repository
	PasswordConfig config.PasswordConfig
}

// Service exposes the admin settings rows and the admin credential.
type Service interface {
	PublicSettings(ctx context.Context) (map[string]string, error)
	AllSettings(ctx context.Context) (map[string]string, error)
	SetSetting(ctx context.Context, key enums.SettingKey, value string) error
	VerifyAdminPassword(ctx context.Context, password string) error
	ChangeAdminPassword(ctx context.Context, currentPassword, newPassword string) error
	EnsureAdminPassword(ctx context.Context, bootstrapPassword string) error
}

type service struct {
	repo           *Repository
	passwordConfig config.PasswordConfig
}

// NewService builds a settings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings repo is required")
	}
	return &service{
		repo:           params.Repo,
		passwordConfig: params.PasswordConfig,
	}, nil
}

// PublicSettings returns only the rows the storefront may read unauthenticated.
func (s *service) PublicSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx, enums.PublicSettingKeys...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[string(row.Key)] = row.Value
	}
	return out, nil
}

// AllSettings returns every row except the admin credential hash.
func (s *service) AllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Key == enums.SettingAdminPasswordHash {
			continue
		}
		out[string(row.Key)] = row.Value
	}
	return out, nil
}

// SetSetting writes one admin-managed row. The credential hash cannot be set
// this way, and the countdown deadline must be a parseable timestamp.
func (s *service) SetSetting(ctx context.Context, key enums.SettingKey, value string) error {
	if key == enums.SettingAdminPasswordHash {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin password is managed separately")
	}
	if !key.IsPublic() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown setting key")
	}
	if key == enums.SettingCountdownDeadline && strings.TrimSpace(value) != "" {
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "countdown deadline must be RFC3339")
		}
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save setting")
	}
	return nil
}

// VerifyAdminPassword checks the supplied password against the stored hash.
func (s *service) VerifyAdminPassword(ctx context.Context, password string) error {
	row, err := s.repo.Get(ctx, enums.SettingAdminPasswordHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "admin password is not configured")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin credential")
	}
	ok, err := security.VerifyPassword(password, row.Value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid password")
	}
	return nil
}

// ChangeAdminPassword rotates the credential after verifying the current one.
func (s *service) ChangeAdminPassword(ctx context.Context, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if err := s.VerifyAdminPassword(ctx, currentPassword); err != nil {
		return err
	}
	hashed, err := security.HashPassword(newPassword, s.passwordConfig)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.Upsert(ctx, enums.SettingAdminPasswordHash, hashed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save admin credential")
	}
	return nil
}

// EnsureAdminPassword seeds the credential on first boot when none is stored
// yet. A stored hash always wins over the bootstrap value.
func (s *service) EnsureAdminPassword(ctx context.Context, bootstrapPassword string) error {
	if strings.TrimSpace(bootstrapPassword) == "" {
		return nil
	}
	_, err := s.repo.Get(ctx, enums.SettingAdminPasswordHash)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin credential")
	}
	hashed, err := security.HashPassword(bootstrapPassword, s.passwordConfig)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.Upsert(ctx, enums.SettingAdminPasswordHash, hashed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save admin credential")
	}
	return nil
}
