package repository

import (
	"context"

	"github.com/douradinams/Douradinams/internal/models"
)

// SettingsRepository reads and overwrites the settings singleton.
type SettingsRepository struct {
	c *Collections
}

// NewSettingsRepository constructs a SettingsRepository.
func NewSettingsRepository(c *Collections) *SettingsRepository {
	return &SettingsRepository{c: c}
}

// Get returns the stored settings or the built-in default, which is not persisted.
func (r *SettingsRepository) Get(ctx context.Context) (models.AppSettings, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	raw, found, err := r.c.fetch(ctx, SettingsKey)
	if err != nil {
		return models.AppSettings{}, err
	}
	var settings models.AppSettings
	if !found || !r.c.decode(ctx, SettingsKey, raw, &settings) {
		return models.AppSettings{WelcomeMessage: DefaultWelcomeMessage}, nil
	}
	return settings, nil
}

// Save overwrites the settings unconditionally.
func (r *SettingsRepository) Save(ctx context.Context, settings models.AppSettings) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return r.c.writeJSON(ctx, SettingsKey, settings)
}
