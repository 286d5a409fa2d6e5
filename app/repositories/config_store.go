package repositories

import (
	"fmt"

	"blogstore/app/models"
)

// ConfigStore holds the process-wide validation limits and tag whitelist.
type ConfigStore struct {
	config models.Config
}

// NewConfigStore creates a store seeded with initial.
func NewConfigStore(initial models.Config) *ConfigStore {
	return &ConfigStore{config: initial.Clone()}
}

// Get returns a copy of the current configuration.
func (s *ConfigStore) Get() models.Config {
	return s.config.Clone()
}

// Replace overwrites the configuration without validating it.
func (s *ConfigStore) Replace(cfg models.Config) {
	s.config = cfg.Clone()
}

// AddTag appends tag to the whitelist.
func (s *ConfigStore) AddTag(tag string) error {
	if s.config.HasTag(tag) {
		return fmt.Errorf("%w: %q", models.ErrTagExists, tag)
	}
	s.config.Tags = append(s.config.Tags, tag)
	return nil
}

// RemoveTag removes every occurrence of tag from the whitelist. Posts that
// already carry the tag keep it.
func (s *ConfigStore) RemoveTag(tag string) error {
	if !s.config.HasTag(tag) {
		return models.Detailf(models.ErrTagNotFound, "Tag %q not found", tag)
	}
	kept := s.config.Tags[:0]
	for _, t := range s.config.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.config.Tags = kept
	return nil
}
