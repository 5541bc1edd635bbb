package httpapi

import (
	"net/http"

	"haven-data/internal/service"
)

// VoucherRates handles GET and PUT of the per-program rate settings.
func (a *API) VoucherRates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rates, err := a.settings.GetVoucherRates(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(rates))

	case http.MethodPut:
		var rates service.VoucherRates
		if !decodeBody(w, r, &rates) {
			return
		}
		if err := a.settings.UpdateVoucherRates(r.Context(), rates); err != nil {
			writeError(w, err)
			return
		}
		updated, err := a.settings.GetVoucherRates(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(updated))

	default:
		methodNotAllowed(w)
	}
}
