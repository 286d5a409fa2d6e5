package controllers

import (
	"net/http"

	"blogstore/app/models"
	"blogstore/app/services"
)

// ConfigController serves the read-only view of the store configuration.
type ConfigController struct {
	config *services.ConfigService
}

// NewConfigController creates a new ConfigController
func NewConfigController(config *services.ConfigService) *ConfigController {
	return &ConfigController{config: config}
}

// Show returns the current limits and tag whitelist.
func (cc *ConfigController) Show() models.HTTPResponse {
	return sendJSON(http.StatusOK, cc.config.GetConfig())
}
