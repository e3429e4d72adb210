package handlers

import (
	"github.com/senselive/vms-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Admin    *AdminHandler
	Manager  *ManagerHandler
	Security *SecurityHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Auth:     NewAuthHandler(svcs.Auth),
		Admin:    NewAdminHandler(svcs.User, svcs.Visit, svcs.Analytics, svcs.Export, svcs.Audit),
		Manager:  NewManagerHandler(svcs.Visit, svcs.Visitor, svcs.Analytics),
		Security: NewSecurityHandler(svcs.Visit, svcs.Analytics, svcs.Pass),
	}
}
