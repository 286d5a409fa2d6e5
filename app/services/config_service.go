package services

import (
	"blogstore/app/models"
	"blogstore/app/repositories"
)

// ConfigService exposes the admin-style configuration calls.
type ConfigService struct {
	store *repositories.ConfigStore
}

// NewConfigService creates a new ConfigService
func NewConfigService(store *repositories.ConfigStore) *ConfigService {
	return &ConfigService{store: store}
}

// GetConfig returns a copy of the current configuration.
func (s *ConfigService) GetConfig() models.Config {
	return s.store.Get()
}

// ReplaceConfig overwrites the configuration. Existing posts are not
// re-validated.
func (s *ConfigService) ReplaceConfig(cfg models.Config) {
	s.store.Replace(cfg)
}

// AddTag whitelists tag, failing with ErrTagExists if it is already present.
func (s *ConfigService) AddTag(tag string) error {
	return s.store.AddTag(tag)
}

// RemoveTag drops tag from the whitelist, failing with ErrTagNotFound if it
// is absent.
func (s *ConfigService) RemoveTag(tag string) error {
	return s.store.RemoveTag(tag)
}
