package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/query"
	"haven-data/internal/store"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// testEnv bundles a memory backend with the cache the services expect.
type testEnv struct {
	client *faultClient
	cache  *query.Cache
	logger *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	client := &faultClient{inner: backend.NewMemory()}
	logger := zap.NewNop()
	return &testEnv{
		client: client,
		cache:  query.NewCache(client, store.NewMemoryKV(), time.Minute, logger),
		logger: logger,
	}
}

func (e *testEnv) properties() PropertyService {
	return NewPropertyService(e.client, e.cache, e.logger)
}

func (e *testEnv) beds() BedService {
	return NewBedService(e.client, e.cache, e.logger)
}

func (e *testEnv) tenants() TenantService {
	return NewTenantService(e.client, e.cache, e.logger)
}

func (e *testEnv) tenantsAt(now time.Time) TenantService {
	svc := NewTenantService(e.client, e.cache, e.logger).(*tenantService)
	svc.now = func() time.Time { return now }
	return svc
}

func (e *testEnv) dashboardAt(now time.Time) DashboardService {
	svc := NewDashboardService(e.cache, e.logger).(*dashboardService)
	svc.now = func() time.Time { return now }
	return svc
}

func (e *testEnv) settings() SettingsService {
	return NewSettingsService(e.client, e.cache, e.logger)
}

func (e *testEnv) records() RecordsService {
	return NewRecordsService(e.client, e.cache, e.logger)
}

var errInjected = errors.New("injected store failure")

// faultClient passes through to the memory backend until a fault is armed
// for a specific op+collection, then fails that call.
type faultClient struct {
	inner        backend.Client
	failOp       string
	failOn       string
	failAfter    int // number of matching calls allowed through first
	matchedCalls int
}

func (f *faultClient) arm(op, collection string, after int) {
	f.failOp = op
	f.failOn = collection
	f.failAfter = after
	f.matchedCalls = 0
}

func (f *faultClient) shouldFail(op, collection string) bool {
	if f.failOp != op || f.failOn != collection {
		return false
	}
	f.matchedCalls++
	return f.matchedCalls > f.failAfter
}

func (f *faultClient) Select(ctx context.Context, collection string, filter backend.Filter) ([]domain.Row, error) {
	if f.shouldFail("select", collection) {
		return nil, errInjected
	}
	return f.inner.Select(ctx, collection, filter)
}

func (f *faultClient) Insert(ctx context.Context, collection string, rows []domain.Row) ([]domain.Row, error) {
	if f.shouldFail("insert", collection) {
		return nil, errInjected
	}
	return f.inner.Insert(ctx, collection, rows)
}

func (f *faultClient) Update(ctx context.Context, collection string, filter backend.Filter, fields domain.Row) ([]domain.Row, error) {
	if f.shouldFail("update", collection) {
		return nil, errInjected
	}
	return f.inner.Update(ctx, collection, filter, fields)
}

func (f *faultClient) Delete(ctx context.Context, collection string, filter backend.Filter) error {
	if f.shouldFail("delete", collection) {
		return errInjected
	}
	return f.inner.Delete(ctx, collection, filter)
}

// seedProperty creates a house with beds through the service and returns it
// with its bed rows.
func seedProperty(t *testing.T, e *testEnv, address string, bedCount int, rent float64) (*domain.House, []*domain.Bed) {
	t.Helper()
	house, err := e.properties().CreatePropertyWithBeds(context.Background(), CreatePropertyRequest{
		Address:         address,
		County:          "king county",
		TotalBeds:       intPtr(bedCount),
		DefaultBaseRent: floatPtr(rent),
	})
	require.NoError(t, err)

	beds, err := e.beds().ListBeds(context.Background(), house.HouseID)
	require.NoError(t, err)
	require.Len(t, beds, bedCount)
	return house, beds
}

func seedTenant(t *testing.T, e *testEnv, name string) *domain.Tenant {
	t.Helper()
	tenant, err := e.tenants().CreateTenant(context.Background(), CreateTenantRequest{
		FullName: name,
		DOB:      datePtr(1990, time.March, 14),
	})
	require.NoError(t, err)
	return tenant
}
