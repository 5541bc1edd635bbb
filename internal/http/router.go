package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard library mux; no third-party routing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterRoutes wires the dashboard API.
func (r *Router) RegisterRoutes(api *API) {
	r.Handle("/healthz", api.Health)

	r.Handle("/api/v1/dashboard", api.Dashboard)

	r.Handle("/api/v1/houses", api.Houses)
	r.Handle("/api/v1/houses/", api.HouseByID)

	r.Handle("/api/v1/beds", api.Beds)
	r.Handle("/api/v1/beds/", api.BedByID)

	r.Handle("/api/v1/tenants", api.Tenants)
	r.Handle("/api/v1/tenants/export", api.ExportTenants)
	r.Handle("/api/v1/tenants/", api.TenantByID)

	r.Handle("/api/v1/settings/voucher-rates", api.VoucherRates)
}

// pathTail splits the path remainder after the prefix into segments:
// "/api/v1/tenants/123/assign" with prefix "/api/v1/tenants/" yields
// ["123", "assign"].
func pathTail(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
