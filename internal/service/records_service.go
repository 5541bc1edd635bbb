package service

import (
	"context"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/query"
)

// RecordsService handles the tenant satellite collections (profile,
// emergency contacts, form submissions, policy agreements). These are
// opaque records with a tenant foreign key; the only rule enforced here
// is that inserts target an existing tenant.
type RecordsService interface {
	AddRecord(ctx context.Context, collection, tenantID string, payload domain.Row) (domain.Row, error)
	ListRecords(ctx context.Context, collection, tenantID string) ([]domain.Row, error)
}

type recordsService struct {
	client backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewRecordsService(client backend.Client, cache *query.Cache, logger *zap.Logger) RecordsService {
	return &recordsService{client: client, cache: cache, logger: logger}
}

var satelliteCollections = map[string]bool{
	backend.TenantProfiles:    true,
	backend.EmergencyContacts: true,
	backend.FormSubmissions:   true,
	backend.PolicyAgreements:  true,
}

func (s *recordsService) AddRecord(ctx context.Context, collection, tenantID string, payload domain.Row) (domain.Row, error) {
	if !satelliteCollections[collection] {
		return nil, &domain.ValidationError{Fields: map[string]string{"collection": "Unknown record type"}}
	}

	tenants, err := s.client.Select(ctx, backend.Tenants, backend.Filter{"tenant_id": tenantID})
	if err != nil {
		return nil, persistErr("select", backend.Tenants, err)
	}
	if len(tenants) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Tenants, ID: tenantID}
	}

	row := domain.Row{}
	for k, v := range payload {
		row[k] = v
	}
	row["tenant_id"] = tenantID

	inserted, err := s.client.Insert(ctx, collection, []domain.Row{row})
	if err != nil {
		return nil, persistErr("insert", collection, err)
	}

	s.cache.Invalidate(ctx, collection)
	return inserted[0], nil
}

func (s *recordsService) ListRecords(ctx context.Context, collection, tenantID string) ([]domain.Row, error) {
	if !satelliteCollections[collection] {
		return nil, &domain.ValidationError{Fields: map[string]string{"collection": "Unknown record type"}}
	}
	rows, err := s.client.Select(ctx, collection, backend.Filter{"tenant_id": tenantID})
	if err != nil {
		return nil, persistErr("select", collection, err)
	}
	return rows, nil
}
