package domain

import "time"

// Application statuses for a tenant.
const (
	ApplicationPending  = "Pending"
	ApplicationApproved = "Approved"
	ApplicationRejected = "Rejected"
	ApplicationWaitlist = "Waitlist"
	ApplicationActive   = "Active"
)

// Payment classifications seen in the program.
const (
	PaymentVoucher       = "Voucher"
	PaymentERD           = "ERD"
	PaymentPrivatePay    = "Private Pay"
	PaymentFamilySupport = "Family Support"
)

// Tenant is a resident or applicant (tenants table).
//
// BedID is the tenant's side of the Bed<->Tenant pair; nil means
// unassigned (waitlisted or exited). A tenant with a non-nil BedID must be
// the tenant the bed references back. ExitDate soft-retires a tenant
// without deleting the row.
type Tenant struct {
	TenantID          string
	FullName          string
	DOB               *time.Time
	Phone             *string
	Email             *string
	Address           *string
	Gender            *string
	DocNumber         *string
	TenantType        *string
	PaymentType       *string
	VoucherType       *string
	ActualRent        float64
	RentDue           float64
	RentPaid          float64
	ApplicationStatus string
	BedID             *string
	EntryDate         *time.Time
	ExitDate          *time.Time
	VoucherStart      *time.Time
	VoucherEnd        *time.Time
	Notes             *string
	AccessCode        *string
}

func TenantFromRow(r Row) *Tenant {
	return &Tenant{
		TenantID:          rowString(r, "tenant_id"),
		FullName:          rowString(r, "full_name"),
		DOB:               rowDate(r, "dob"),
		Phone:             rowStringPtr(r, "phone"),
		Email:             rowStringPtr(r, "email"),
		Address:           rowStringPtr(r, "address"),
		Gender:            rowStringPtr(r, "gender"),
		DocNumber:         rowStringPtr(r, "doc_number"),
		TenantType:        rowStringPtr(r, "tenant_type"),
		PaymentType:       rowStringPtr(r, "payment_type"),
		VoucherType:       rowStringPtr(r, "voucher_type"),
		ActualRent:        rowFloat(r, "actual_rent"),
		RentDue:           rowFloat(r, "rent_due"),
		RentPaid:          rowFloat(r, "rent_paid"),
		ApplicationStatus: rowString(r, "application_status"),
		BedID:             rowStringPtr(r, "bed_id"),
		EntryDate:         rowDate(r, "entry_date"),
		ExitDate:          rowDate(r, "exit_date"),
		VoucherStart:      rowDate(r, "voucher_start"),
		VoucherEnd:        rowDate(r, "voucher_end"),
		Notes:             rowStringPtr(r, "notes"),
		AccessCode:        rowStringPtr(r, "access_code"),
	}
}
