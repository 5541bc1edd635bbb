// Package backend is the data-access boundary to the hosted relational
// store. Everything above it speaks collections, filters, and generic
// rows; the concrete implementation (Postgres, REST, memory) is chosen at
// startup.
package backend

import (
	"context"

	"haven-data/internal/domain"
)

// Collections consumed by the service.
const (
	Houses            = "houses"
	Beds              = "beds"
	Tenants           = "tenants"
	TenantProfiles    = "tenant_profiles"
	EmergencyContacts = "emergency_contacts"
	FormSubmissions   = "form_submissions"
	PolicyAgreements  = "policy_agreements"
	SystemSettings    = "system_settings"
)

// Filter matches rows by column equality. A nil value matches NULL.
type Filter map[string]any

// Client is the generic data-access contract. All calls are synchronous
// from the caller's view and honor ctx cancellation; failures carry a
// human-readable message and are wrapped into the service error taxonomy
// by the mutation layer.
//
// The store provides no transactions across calls. Multi-step mutations
// built on top of this interface use explicit compensating actions.
type Client interface {
	Select(ctx context.Context, collection string, filter Filter) ([]domain.Row, error)
	Insert(ctx context.Context, collection string, rows []domain.Row) ([]domain.Row, error)
	Update(ctx context.Context, collection string, filter Filter, fields domain.Row) ([]domain.Row, error)
	Delete(ctx context.Context, collection string, filter Filter) error
}

// IDColumn returns the primary-key column of a collection.
func IDColumn(collection string) string {
	switch collection {
	case Houses:
		return "house_id"
	case Beds:
		return "bed_id"
	case Tenants:
		return "tenant_id"
	case TenantProfiles:
		return "profile_id"
	case EmergencyContacts:
		return "contact_id"
	case FormSubmissions:
		return "submission_id"
	case PolicyAgreements:
		return "agreement_id"
	case SystemSettings:
		return "setting_key"
	}
	return "id"
}
