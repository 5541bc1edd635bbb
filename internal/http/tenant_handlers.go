package httpapi

import (
	"net/http"
	"time"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/service"
)

type createTenantRequest struct {
	FullName          string  `json:"full_name"`
	DOB               *string `json:"dob"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	Address           string  `json:"address"`
	Gender            string  `json:"gender"`
	DocNumber         string  `json:"doc_number"`
	TenantType        string  `json:"tenant_type"`
	PaymentType       string  `json:"payment_type"`
	VoucherType       string  `json:"voucher_type"`
	ActualRent        float64 `json:"actual_rent"`
	ApplicationStatus string  `json:"application_status"`
	EntryDate         *string `json:"entry_date"`
	VoucherStart      *string `json:"voucher_start"`
	VoucherEnd        *string `json:"voucher_end"`
	Notes             string  `json:"notes"`
	AccessCode        string  `json:"access_code"`
}

type updateTenantRequest struct {
	FullName          *string  `json:"full_name"`
	Phone             *string  `json:"phone"`
	Email             *string  `json:"email"`
	Address           *string  `json:"address"`
	Gender            *string  `json:"gender"`
	DocNumber         *string  `json:"doc_number"`
	TenantType        *string  `json:"tenant_type"`
	PaymentType       *string  `json:"payment_type"`
	VoucherType       *string  `json:"voucher_type"`
	ActualRent        *float64 `json:"actual_rent"`
	RentDue           *float64 `json:"rent_due"`
	RentPaid          *float64 `json:"rent_paid"`
	ApplicationStatus *string  `json:"application_status"`
	EntryDate         *string  `json:"entry_date"`
	ExitDate          *string  `json:"exit_date"`
	VoucherStart      *string  `json:"voucher_start"`
	VoucherEnd        *string  `json:"voucher_end"`
	Notes             *string  `json:"notes"`
	AccessCode        *string  `json:"access_code"`
}

func (a *API) Tenants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tenants, err := a.tenants.ListTenants(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(tenantViews(tenants)))

	case http.MethodPost:
		var req createTenantRequest
		if !decodeBody(w, r, &req) {
			return
		}
		dob, err := parseDate(req.DOB)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid dob: "+err.Error()))
			return
		}
		entry, err := parseDate(req.EntryDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid entry_date: "+err.Error()))
			return
		}
		vStart, err := parseDate(req.VoucherStart)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid voucher_start: "+err.Error()))
			return
		}
		vEnd, err := parseDate(req.VoucherEnd)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid voucher_end: "+err.Error()))
			return
		}

		tenant, err := a.tenants.CreateTenant(r.Context(), service.CreateTenantRequest{
			FullName:          req.FullName,
			DOB:               nonZeroDate(dob),
			Phone:             req.Phone,
			Email:             req.Email,
			Address:           req.Address,
			Gender:            req.Gender,
			DocNumber:         req.DocNumber,
			TenantType:        req.TenantType,
			PaymentType:       req.PaymentType,
			VoucherType:       req.VoucherType,
			ActualRent:        req.ActualRent,
			ApplicationStatus: req.ApplicationStatus,
			EntryDate:         nonZeroDate(entry),
			VoucherStart:      nonZeroDate(vStart),
			VoucherEnd:        nonZeroDate(vEnd),
			Notes:             req.Notes,
			AccessCode:        req.AccessCode,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(tenantView(tenant)))

	default:
		methodNotAllowed(w)
	}
}

// recordCollections maps URL segments to satellite collections.
var recordCollections = map[string]string{
	"profile":    backend.TenantProfiles,
	"contacts":   backend.EmergencyContacts,
	"forms":      backend.FormSubmissions,
	"agreements": backend.PolicyAgreements,
}

// TenantByID handles /api/v1/tenants/{id} plus the assign/unassign and
// satellite-record subroutes.
func (a *API) TenantByID(w http.ResponseWriter, r *http.Request) {
	seg := pathTail(r.URL.Path, "/api/v1/tenants/")
	if len(seg) == 0 {
		writeJSON(w, http.StatusNotFound, Fail("tenant id required"))
		return
	}
	tenantID := seg[0]

	if len(seg) == 2 {
		switch seg[1] {
		case "assign":
			a.assignTenant(w, r, tenantID)
			return
		case "unassign":
			a.unassignTenant(w, r, tenantID)
			return
		default:
			if collection, ok := recordCollections[seg[1]]; ok {
				a.tenantRecords(w, r, tenantID, collection)
				return
			}
		}
	}
	if len(seg) != 1 {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		tenant, err := a.tenants.GetTenant(r.Context(), tenantID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(tenantView(tenant)))

	case http.MethodPatch:
		a.updateTenant(w, r, tenantID)

	case http.MethodDelete:
		if err := a.tenants.DeleteTenant(r.Context(), tenantID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"tenant_id": tenantID}))

	default:
		methodNotAllowed(w)
	}
}

func (a *API) updateTenant(w http.ResponseWriter, r *http.Request, tenantID string) {
	var req updateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updates := service.TenantUpdates{
		FullName:          req.FullName,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		Gender:            req.Gender,
		DocNumber:         req.DocNumber,
		TenantType:        req.TenantType,
		PaymentType:       req.PaymentType,
		VoucherType:       req.VoucherType,
		ActualRent:        req.ActualRent,
		RentDue:           req.RentDue,
		RentPaid:          req.RentPaid,
		ApplicationStatus: req.ApplicationStatus,
		Notes:             req.Notes,
		AccessCode:        req.AccessCode,
	}

	for _, d := range []struct {
		raw  *string
		dst  **time.Time
		name string
	}{
		{req.EntryDate, &updates.EntryDate, "entry_date"},
		{req.ExitDate, &updates.ExitDate, "exit_date"},
		{req.VoucherStart, &updates.VoucherStart, "voucher_start"},
		{req.VoucherEnd, &updates.VoucherEnd, "voucher_end"},
	} {
		t, err := parseDate(d.raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid "+d.name+": "+err.Error()))
			return
		}
		*d.dst = t
	}

	tenant, err := a.tenants.UpdateTenant(r.Context(), tenantID, updates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(tenantView(tenant)))
}

func (a *API) assignTenant(w http.ResponseWriter, r *http.Request, tenantID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		BedID string `json:"bed_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BedID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("bed_id is required"))
		return
	}
	if err := a.tenants.AssignTenantToBed(r.Context(), tenantID, req.BedID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"tenant_id": tenantID, "bed_id": req.BedID}))
}

func (a *API) unassignTenant(w http.ResponseWriter, r *http.Request, tenantID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := a.tenants.UnassignTenantFromBed(r.Context(), tenantID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"tenant_id": tenantID}))
}

func (a *API) tenantRecords(w http.ResponseWriter, r *http.Request, tenantID, collection string) {
	switch r.Method {
	case http.MethodGet:
		rows, err := a.records.ListRecords(r.Context(), collection, tenantID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(recordViews(collection, rows)))

	case http.MethodPost:
		var payload domain.Row
		if !decodeBody(w, r, &payload) {
			return
		}
		row, err := a.records.AddRecord(r.Context(), collection, tenantID, payload)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(recordView(collection, row)))

	default:
		methodNotAllowed(w)
	}
}
