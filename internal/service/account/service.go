package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
	apperrors "github.com/bookwell/booking-api/pkg/errors"
)

// Service resolves per-tenant widget settings. Lookups sit on the hot
// availability path, so results are cached for a short TTL.
type Service struct {
	repo        repository.AccountRepository
	cache       *cache.Cache
	defaultStep int
}

func NewService(repo repository.AccountRepository, cacheTTL time.Duration, defaultStepMinutes int) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	if defaultStepMinutes <= 0 {
		defaultStepMinutes = model.DefaultSlotStepMinutes
	}
	return &Service{
		repo:        repo,
		cache:       cache.New(cacheTTL, 5*time.Minute),
		defaultStep: defaultStepMinutes,
	}
}

// Get returns the account, serving from cache when fresh.
func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	key := accountID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Account), nil
	}

	account, err := s.repo.Get(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("account", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	s.cache.SetDefault(key, account)
	return account, nil
}

// StepMinutes resolves the account's slot grid step, falling back to
// the deployment-wide default when the account has not set one.
func (s *Service) StepMinutes(ctx context.Context, accountID uuid.UUID) (int, error) {
	account, err := s.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account.SlotStepMinutes > 0 {
		return account.SlotStepMinutes, nil
	}
	return s.defaultStep, nil
}

// Location resolves the account's configured timezone. An empty or
// unknown zone falls back to the server's local time, which matches
// how dates were resolved before per-account zones existed.
func (s *Service) Location(ctx context.Context, accountID uuid.UUID) (*time.Location, error) {
	account, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(account.Timezone)
	if err != nil {
		return time.Local, nil
	}
	return loc, nil
}

// Invalidate drops the cached entry, e.g. after a settings update.
func (s *Service) Invalidate(accountID uuid.UUID) {
	s.cache.Delete(accountID.String())
}
