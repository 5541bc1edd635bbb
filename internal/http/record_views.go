package httpapi

import (
	"haven-data/internal/backend"
	"haven-data/internal/domain"
)

// JSON views of the tenant satellite records. Profile and form payloads
// stay opaque; only the keyed columns are lifted out.

type profileJSON struct {
	ProfileID string     `json:"profile_id"`
	TenantID  string     `json:"tenant_id"`
	Data      domain.Row `json:"data"`
}

type contactJSON struct {
	ContactID    string  `json:"contact_id"`
	TenantID     string  `json:"tenant_id"`
	Name         string  `json:"name"`
	Relationship *string `json:"relationship"`
	Phone        *string `json:"phone"`
}

type submissionJSON struct {
	SubmissionID string     `json:"submission_id"`
	TenantID     string     `json:"tenant_id"`
	FormType     string     `json:"form_type"`
	SubmittedAt  *string    `json:"submitted_at"`
	Data         domain.Row `json:"data"`
}

type agreementJSON struct {
	AgreementID string  `json:"agreement_id"`
	TenantID    string  `json:"tenant_id"`
	PolicyName  string  `json:"policy_name"`
	SignedAt    *string `json:"signed_at"`
}

func recordView(collection string, r domain.Row) any {
	switch collection {
	case backend.TenantProfiles:
		p := domain.TenantProfileFromRow(r)
		return profileJSON{ProfileID: p.ProfileID, TenantID: p.TenantID, Data: p.Data}
	case backend.EmergencyContacts:
		c := domain.EmergencyContactFromRow(r)
		return contactJSON{
			ContactID:    c.ContactID,
			TenantID:     c.TenantID,
			Name:         c.Name,
			Relationship: c.Relationship,
			Phone:        c.Phone,
		}
	case backend.FormSubmissions:
		s := domain.FormSubmissionFromRow(r)
		return submissionJSON{
			SubmissionID: s.SubmissionID,
			TenantID:     s.TenantID,
			FormType:     s.FormType,
			SubmittedAt:  dateString(s.SubmittedAt),
			Data:         s.Data,
		}
	case backend.PolicyAgreements:
		a := domain.PolicyAgreementFromRow(r)
		return agreementJSON{
			AgreementID: a.AgreementID,
			TenantID:    a.TenantID,
			PolicyName:  a.PolicyName,
			SignedAt:    dateString(a.SignedAt),
		}
	}
	return r
}

func recordViews(collection string, rows []domain.Row) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, recordView(collection, r))
	}
	return out
}
