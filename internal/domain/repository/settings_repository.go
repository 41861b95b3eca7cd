package repository

import (
	"context"

	"github.com/pasalhq/pasal-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings operations
type SettingsRepository interface {
	// Get returns the settings row, creating it with defaults when absent.
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Update(ctx context.Context, settings *entity.StoreSettings) error
}
