package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"haven-data/internal/service"
)

// API bundles the handlers over the service layer.
type API struct {
	properties service.PropertyService
	beds       service.BedService
	tenants    service.TenantService
	dashboard  service.DashboardService
	settings   service.SettingsService
	records    service.RecordsService
	logger     *zap.Logger
}

func NewAPI(
	properties service.PropertyService,
	beds service.BedService,
	tenants service.TenantService,
	dashboard service.DashboardService,
	settings service.SettingsService,
	records service.RecordsService,
	logger *zap.Logger,
) *API {
	return &API{
		properties: properties,
		beds:       beds,
		tenants:    tenants,
		dashboard:  dashboard,
		settings:   settings,
		records:    records,
		logger:     logger,
	}
}

// Health is the status/info endpoint.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{
		"service": "haven-data",
		"status":  "ok",
	}))
}

func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	overview, err := a.dashboard.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(overview))
}
