package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven-data/internal/domain"
	"haven-data/internal/format"
)

func TestDashboardBedMetrics(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 3, 700)
	tenant := seedTenant(t, e, "John Doe")
	require.NoError(t, e.tenants().AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID))
	_, err := e.beds().UpdateBed(ctx, beds[1].BedID, BedUpdates{Status: strPtr(domain.BedHold)})
	require.NoError(t, err)

	overview, err := e.dashboardAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Metrics.TotalBeds)
	assert.Equal(t, 1, overview.Metrics.OccupiedBeds)
	assert.Equal(t, 1, overview.Metrics.AvailableBeds)
	assert.Equal(t, 33, overview.Metrics.OccupancyRate)
}

func TestDashboardPropertiesOverview(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, bedsA := seedProperty(t, e, "123 Main St", 1, 700)
	seedProperty(t, e, "456 Oak Ave", 2, 500)

	tenant := seedTenant(t, e, "John Doe")
	require.NoError(t, e.tenants().AssignTenantToBed(ctx, tenant.TenantID, bedsA[0].BedID))

	overview, err := e.dashboardAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).Overview(ctx)
	require.NoError(t, err)

	p := overview.Properties
	assert.Equal(t, 2, p.TotalProperties)
	assert.Equal(t, 3, p.DeclaredBeds)
	assert.Equal(t, 33, p.OccupancyRate)
	assert.Equal(t, 1, p.AtFullCapacity)
	assert.Equal(t, 1700.0, p.PotentialMonthlyIncome)
}

func TestDashboardExpiringVouchers(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mk := func(name string, voucherEnd, exit *time.Time) {
		t.Helper()
		tenant, err := e.tenants().CreateTenant(ctx, CreateTenantRequest{
			FullName:   name,
			DOB:        datePtr(1990, time.January, 1),
			VoucherEnd: voucherEnd,
		})
		require.NoError(t, err)
		if exit != nil {
			_, err = e.tenants().UpdateTenant(ctx, tenant.TenantID, TenantUpdates{ExitDate: exit})
			require.NoError(t, err)
		}
	}

	mk("Soon Critical", datePtr(2025, time.June, 5), nil)
	mk("Soon Warning", datePtr(2025, time.June, 25), nil)
	mk("Far Away", datePtr(2025, time.August, 1), nil)
	mk("Already Past", datePtr(2025, time.May, 20), nil)
	mk("Exited", datePtr(2025, time.June, 10), datePtr(2025, time.May, 1))

	overview, err := e.dashboardAt(now).Overview(ctx)
	require.NoError(t, err)

	alerts := overview.ExpiringVouchers
	require.Len(t, alerts, 2)
	assert.Equal(t, "Soon Critical", alerts[0].FullName)
	assert.Equal(t, 4, alerts[0].DaysUntil)
	assert.Equal(t, format.UrgencyCritical, alerts[0].Urgency)
	assert.Equal(t, "Soon Warning", alerts[1].FullName)
	assert.Equal(t, format.UrgencyWarning, alerts[1].Urgency)
}

func TestDashboardPendingArrivals(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := e.tenants().CreateTenant(ctx, CreateTenantRequest{
		FullName:  "Arriving Soon",
		DOB:       datePtr(1990, time.January, 1),
		EntryDate: datePtr(2025, time.June, 10),
	})
	require.NoError(t, err)
	_, err = e.tenants().CreateTenant(ctx, CreateTenantRequest{
		FullName:  "Arriving Late",
		DOB:       datePtr(1990, time.January, 1),
		EntryDate: datePtr(2025, time.July, 15),
	})
	require.NoError(t, err)
	_, err = e.tenants().CreateTenant(ctx, CreateTenantRequest{
		FullName: "No Date",
		DOB:      datePtr(1990, time.January, 1),
	})
	require.NoError(t, err)

	overview, err := e.dashboardAt(now).Overview(ctx)
	require.NoError(t, err)

	arrivals := overview.PendingArrivals
	require.Len(t, arrivals, 1)
	assert.Equal(t, "Arriving Soon", arrivals[0].FullName)
	assert.Equal(t, 9, arrivals[0].DaysUntil)
}

func TestDashboardAvailableBeds(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	seedProperty(t, e, "456 Oak Ave", 1, 500)
	_, bedsA := seedProperty(t, e, "123 Main St", 2, 700)

	tenant := seedTenant(t, e, "John Doe")
	require.NoError(t, e.tenants().AssignTenantToBed(ctx, tenant.TenantID, bedsA[0].BedID))

	overview, err := e.dashboardAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).Overview(ctx)
	require.NoError(t, err)

	available := overview.AvailableBeds
	require.Len(t, available, 2)
	// Sorted by address, then room number.
	assert.Equal(t, "123 Main St", available[0].HouseAddress)
	assert.Equal(t, "2", available[0].RoomNumber)
	assert.Equal(t, "King", available[0].County)
	assert.Equal(t, "456 Oak Ave", available[1].HouseAddress)
}
