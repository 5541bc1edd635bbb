package domain

import "time"

// Satellite records keyed by tenant. They carry no lifecycle logic of
// their own beyond insertion against an existing tenant row; payloads are
// kept opaque.

// TenantProfile is the 1:1 extended profile (tenant_profiles table).
type TenantProfile struct {
	ProfileID string
	TenantID  string
	Data      Row
}

func TenantProfileFromRow(r Row) *TenantProfile {
	p := &TenantProfile{
		ProfileID: rowString(r, "profile_id"),
		TenantID:  rowString(r, "tenant_id"),
		Data:      Row{},
	}
	for k, v := range r {
		if k != "profile_id" && k != "tenant_id" {
			p.Data[k] = v
		}
	}
	return p
}

// EmergencyContact is a 1:N contact record (emergency_contacts table).
type EmergencyContact struct {
	ContactID    string
	TenantID     string
	Name         string
	Relationship *string
	Phone        *string
}

func EmergencyContactFromRow(r Row) *EmergencyContact {
	return &EmergencyContact{
		ContactID:    rowString(r, "contact_id"),
		TenantID:     rowString(r, "tenant_id"),
		Name:         rowString(r, "name"),
		Relationship: rowStringPtr(r, "relationship"),
		Phone:        rowStringPtr(r, "phone"),
	}
}

// FormSubmission is a submitted intake/update form (form_submissions table).
type FormSubmission struct {
	SubmissionID string
	TenantID     string
	FormType     string
	SubmittedAt  *time.Time
	Data         Row
}

func FormSubmissionFromRow(r Row) *FormSubmission {
	s := &FormSubmission{
		SubmissionID: rowString(r, "submission_id"),
		TenantID:     rowString(r, "tenant_id"),
		FormType:     rowString(r, "form_type"),
		SubmittedAt:  rowDate(r, "submitted_at"),
		Data:         Row{},
	}
	for k, v := range r {
		switch k {
		case "submission_id", "tenant_id", "form_type", "submitted_at":
		default:
			s.Data[k] = v
		}
	}
	return s
}

// PolicyAgreement is a signed policy acknowledgement (policy_agreements table).
type PolicyAgreement struct {
	AgreementID string
	TenantID    string
	PolicyName  string
	SignedAt    *time.Time
}

func PolicyAgreementFromRow(r Row) *PolicyAgreement {
	return &PolicyAgreement{
		AgreementID: rowString(r, "agreement_id"),
		TenantID:    rowString(r, "tenant_id"),
		PolicyName:  rowString(r, "policy_name"),
		SignedAt:    rowDate(r, "signed_at"),
	}
}

// SystemSetting is a key/value configuration row (system_settings table),
// e.g. per-program voucher rates.
type SystemSetting struct {
	SettingKey   string
	SettingValue string
}

func SystemSettingFromRow(r Row) *SystemSetting {
	return &SystemSetting{
		SettingKey:   rowString(r, "setting_key"),
		SettingValue: rowString(r, "setting_value"),
	}
}
