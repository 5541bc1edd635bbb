package httpapi

import (
	"net/http"

	"haven-data/internal/service"
)

type createHouseRequest struct {
	Address         string   `json:"address"`
	County          string   `json:"county"`
	TotalBeds       *int     `json:"total_beds"`
	DefaultBaseRent *float64 `json:"default_base_rent"`
	Notes           string   `json:"notes"`
}

type updateHouseRequest struct {
	Address   *string `json:"address"`
	County    *string `json:"county"`
	TotalBeds *int    `json:"total_beds"`
	Notes     *string `json:"notes"`
}

// Houses handles GET (list) and POST (create with beds) on the
// collection route.
func (a *API) Houses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		houses, err := a.properties.ListProperties(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(houseViews(houses)))

	case http.MethodPost:
		var req createHouseRequest
		if !decodeBody(w, r, &req) {
			return
		}
		house, err := a.properties.CreatePropertyWithBeds(r.Context(), service.CreatePropertyRequest{
			Address:         req.Address,
			County:          req.County,
			TotalBeds:       req.TotalBeds,
			DefaultBaseRent: req.DefaultBaseRent,
			Notes:           req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(houseView(house)))

	default:
		methodNotAllowed(w)
	}
}

// HouseByID handles /api/v1/houses/{id} and /api/v1/houses/{id}/beds.
func (a *API) HouseByID(w http.ResponseWriter, r *http.Request) {
	seg := pathTail(r.URL.Path, "/api/v1/houses/")
	if len(seg) == 0 {
		writeJSON(w, http.StatusNotFound, Fail("house id required"))
		return
	}
	houseID := seg[0]

	if len(seg) == 2 && seg[1] == "beds" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		beds, err := a.beds.ListBeds(r.Context(), houseID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(bedViews(beds)))
		return
	}
	if len(seg) != 1 {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		house, err := a.properties.GetProperty(r.Context(), houseID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(houseView(house)))

	case http.MethodPatch:
		var req updateHouseRequest
		if !decodeBody(w, r, &req) {
			return
		}
		house, err := a.properties.UpdateProperty(r.Context(), houseID, service.PropertyUpdates{
			Address:   req.Address,
			County:    req.County,
			TotalBeds: req.TotalBeds,
			Notes:     req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(houseView(house)))

	case http.MethodDelete:
		if err := a.properties.DeleteProperty(r.Context(), houseID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"house_id": houseID}))

	default:
		methodNotAllowed(w)
	}
}
