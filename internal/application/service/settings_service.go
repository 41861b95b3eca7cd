package service

import (
	"context"
	"strings"

	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService handles store-wide settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsInput represents the update settings input. Nil fields
// keep their current value.
type UpdateSettingsInput struct {
	StoreName *string
	Currency  *string
	TaxRate   *decimal.Decimal
}

// GetSettings returns the store settings, creating defaults on first read
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings applies a partial update to the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		if name == "" {
			return nil, apperror.NewBadRequestError("Store name cannot be empty")
		}
		settings.StoreName = name
	}

	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if currency == "" {
			return nil, apperror.NewBadRequestError("Currency cannot be empty")
		}
		settings.Currency = currency
	}

	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 1")
		}
		settings.TaxRate = *input.TaxRate
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
