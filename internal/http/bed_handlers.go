package httpapi

import (
	"net/http"

	"haven-data/internal/service"
)

type createBedRequest struct {
	HouseID    string   `json:"house_id"`
	RoomNumber string   `json:"room_number"`
	BaseRent   *float64 `json:"base_rent"`
	Status     string   `json:"status"`
	Notes      string   `json:"notes"`
}

type updateBedRequest struct {
	RoomNumber *string  `json:"room_number"`
	BaseRent   *float64 `json:"base_rent"`
	Status     *string  `json:"status"`
	Notes      *string  `json:"notes"`
}

func (a *API) Beds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req createBedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	bed, err := a.beds.AddBed(r.Context(), service.AddBedRequest{
		HouseID:    req.HouseID,
		RoomNumber: req.RoomNumber,
		BaseRent:   req.BaseRent,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(bedView(bed)))
}

// BedByID handles /api/v1/beds/{id}. DELETE requires the owning house in
// the house_id query param so the counter decrement can find its row.
func (a *API) BedByID(w http.ResponseWriter, r *http.Request) {
	seg := pathTail(r.URL.Path, "/api/v1/beds/")
	if len(seg) != 1 {
		writeJSON(w, http.StatusNotFound, Fail("bed id required"))
		return
	}
	bedID := seg[0]

	switch r.Method {
	case http.MethodGet:
		bed, err := a.beds.GetBed(r.Context(), bedID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(bedView(bed)))

	case http.MethodPatch:
		var req updateBedRequest
		if !decodeBody(w, r, &req) {
			return
		}
		bed, err := a.beds.UpdateBed(r.Context(), bedID, service.BedUpdates{
			RoomNumber: req.RoomNumber,
			BaseRent:   req.BaseRent,
			Status:     req.Status,
			Notes:      req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(bedView(bed)))

	case http.MethodDelete:
		houseID := r.URL.Query().Get("house_id")
		if houseID == "" {
			writeJSON(w, http.StatusBadRequest, Fail("house_id query parameter is required"))
			return
		}
		if err := a.beds.DeleteBed(r.Context(), bedID, houseID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"bed_id": bedID, "house_id": houseID}))

	default:
		methodNotAllowed(w)
	}
}
