package httpapi

import (
	"time"

	"haven-data/internal/domain"
)

// JSON views of the domain entities; dates go out as "2006-01-02".

type houseJSON struct {
	HouseID   string  `json:"house_id"`
	Address   string  `json:"address"`
	County    string  `json:"county"`
	TotalBeds int     `json:"total_beds"`
	Notes     *string `json:"notes"`
}

func houseView(h *domain.House) houseJSON {
	return houseJSON{
		HouseID:   h.HouseID,
		Address:   h.Address,
		County:    h.County,
		TotalBeds: h.TotalBeds,
		Notes:     h.Notes,
	}
}

func houseViews(houses []*domain.House) []houseJSON {
	out := make([]houseJSON, 0, len(houses))
	for _, h := range houses {
		out = append(out, houseView(h))
	}
	return out
}

type bedJSON struct {
	BedID      string  `json:"bed_id"`
	HouseID    string  `json:"house_id"`
	RoomNumber string  `json:"room_number"`
	BaseRent   float64 `json:"base_rent"`
	Status     string  `json:"status"`
	TenantID   *string `json:"tenant_id"`
	Notes      *string `json:"notes"`
}

func bedView(b *domain.Bed) bedJSON {
	return bedJSON{
		BedID:      b.BedID,
		HouseID:    b.HouseID,
		RoomNumber: b.RoomNumber,
		BaseRent:   b.BaseRent,
		Status:     b.Status,
		TenantID:   b.TenantID,
		Notes:      b.Notes,
	}
}

func bedViews(beds []*domain.Bed) []bedJSON {
	out := make([]bedJSON, 0, len(beds))
	for _, b := range beds {
		out = append(out, bedView(b))
	}
	return out
}

type tenantJSON struct {
	TenantID          string  `json:"tenant_id"`
	FullName          string  `json:"full_name"`
	DOB               *string `json:"dob"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	Gender            *string `json:"gender"`
	DocNumber         *string `json:"doc_number"`
	TenantType        *string `json:"tenant_type"`
	PaymentType       *string `json:"payment_type"`
	VoucherType       *string `json:"voucher_type"`
	ActualRent        float64 `json:"actual_rent"`
	RentDue           float64 `json:"rent_due"`
	RentPaid          float64 `json:"rent_paid"`
	ApplicationStatus string  `json:"application_status"`
	BedID             *string `json:"bed_id"`
	EntryDate         *string `json:"entry_date"`
	ExitDate          *string `json:"exit_date"`
	VoucherStart      *string `json:"voucher_start"`
	VoucherEnd        *string `json:"voucher_end"`
	Notes             *string `json:"notes"`
	AccessCode        *string `json:"access_code"`
}

func tenantView(t *domain.Tenant) tenantJSON {
	return tenantJSON{
		TenantID:          t.TenantID,
		FullName:          t.FullName,
		DOB:               dateString(t.DOB),
		Phone:             t.Phone,
		Email:             t.Email,
		Address:           t.Address,
		Gender:            t.Gender,
		DocNumber:         t.DocNumber,
		TenantType:        t.TenantType,
		PaymentType:       t.PaymentType,
		VoucherType:       t.VoucherType,
		ActualRent:        t.ActualRent,
		RentDue:           t.RentDue,
		RentPaid:          t.RentPaid,
		ApplicationStatus: t.ApplicationStatus,
		BedID:             t.BedID,
		EntryDate:         dateString(t.EntryDate),
		ExitDate:          dateString(t.ExitDate),
		VoucherStart:      dateString(t.VoucherStart),
		VoucherEnd:        dateString(t.VoucherEnd),
		Notes:             t.Notes,
		AccessCode:        t.AccessCode,
	}
}

func tenantViews(tenants []*domain.Tenant) []tenantJSON {
	out := make([]tenantJSON, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, tenantView(t))
	}
	return out
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateOnly)
	return &s
}
