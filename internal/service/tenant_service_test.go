package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
)

func TestCreateTenant(t *testing.T) {
	e := newTestEnv(t)

	tenant, err := e.tenants().CreateTenant(context.Background(), CreateTenantRequest{
		FullName:    "  John Doe  ",
		DOB:         datePtr(1985, time.July, 4),
		Phone:       "555-0100",
		PaymentType: domain.PaymentVoucher,
		ActualRent:  650,
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", tenant.FullName)
	assert.Equal(t, domain.ApplicationPending, tenant.ApplicationStatus)
	assert.Nil(t, tenant.BedID)
	assert.Equal(t, 0.0, tenant.RentDue)
	assert.Equal(t, 0.0, tenant.RentPaid)
}

func TestCreateTenantValidation(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.tenants().CreateTenant(context.Background(), CreateTenantRequest{FullName: "   "})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Full name is required", ve.Fields["full_name"])
	assert.Equal(t, "Date of birth is required", ve.Fields["dob"])
}

func TestAssignTenantToBed(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	_, beds := seedProperty(t, e, "123 Main St", 2, 700)
	tenant := seedTenant(t, e, "John Doe")
	svc := e.tenantsAt(now)

	require.NoError(t, svc.AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID))

	got, err := svc.GetTenant(ctx, tenant.TenantID)
	require.NoError(t, err)
	require.NotNil(t, got.BedID)
	assert.Equal(t, beds[0].BedID, *got.BedID)
	assert.Equal(t, domain.ApplicationActive, got.ApplicationStatus)
	require.NotNil(t, got.EntryDate)
	assert.Equal(t, "2025-06-01", got.EntryDate.Format(domain.DateOnly))

	bed, err := e.beds().GetBed(ctx, beds[0].BedID)
	require.NoError(t, err)
	assert.Equal(t, domain.BedOccupied, bed.Status)
	require.NotNil(t, bed.TenantID)
	assert.Equal(t, tenant.TenantID, *bed.TenantID)
}

func TestAssignKeepsExistingEntryDate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	tenant, err := e.tenants().CreateTenant(ctx, CreateTenantRequest{
		FullName:  "Jane Smith",
		DOB:       datePtr(1992, time.January, 2),
		EntryDate: datePtr(2025, time.March, 1),
	})
	require.NoError(t, err)

	svc := e.tenantsAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, svc.AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID))

	got, err := svc.GetTenant(ctx, tenant.TenantID)
	require.NoError(t, err)
	require.NotNil(t, got.EntryDate)
	assert.Equal(t, "2025-03-01", got.EntryDate.Format(domain.DateOnly))
}

func TestAssignOccupiedBedConflicts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	first := seedTenant(t, e, "John Doe")
	second := seedTenant(t, e, "Jane Smith")

	require.NoError(t, e.tenants().AssignTenantToBed(ctx, first.TenantID, beds[0].BedID))

	err := e.tenants().AssignTenantToBed(ctx, second.TenantID, beds[0].BedID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, "Bed is already occupied or not available", err.Error())

	// The losing assign changed nothing.
	got, err := e.tenants().GetTenant(ctx, second.TenantID)
	require.NoError(t, err)
	assert.Nil(t, got.BedID)
	assert.Equal(t, domain.ApplicationPending, got.ApplicationStatus)

	bed, err := e.beds().GetBed(ctx, beds[0].BedID)
	require.NoError(t, err)
	require.NotNil(t, bed.TenantID)
	assert.Equal(t, first.TenantID, *bed.TenantID)
}

func TestAssignNonAvailableBedConflicts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	_, err := e.beds().UpdateBed(ctx, beds[0].BedID, BedUpdates{Status: strPtr(domain.BedHold)})
	require.NoError(t, err)

	tenant := seedTenant(t, e, "John Doe")
	err = e.tenants().AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID)
	assert.True(t, domain.IsConflict(err))
}

func TestAssignCompensatesOnBedWriteFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	tenant := seedTenant(t, e, "John Doe")

	e.client.arm("update", backend.Beds, 0)

	err := e.tenants().AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))

	// The tenant-side write was rolled back.
	got, getErr := e.tenants().GetTenant(ctx, tenant.TenantID)
	require.NoError(t, getErr)
	assert.Nil(t, got.BedID)
}

func TestUnassignTenantFromBed(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	tenant := seedTenant(t, e, "John Doe")
	require.NoError(t, e.tenants().AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID))

	require.NoError(t, e.tenants().UnassignTenantFromBed(ctx, tenant.TenantID))

	got, err := e.tenants().GetTenant(ctx, tenant.TenantID)
	require.NoError(t, err)
	assert.Nil(t, got.BedID)

	bed, err := e.beds().GetBed(ctx, beds[0].BedID)
	require.NoError(t, err)
	assert.Equal(t, domain.BedAvailable, bed.Status)
	assert.Nil(t, bed.TenantID)
}

func TestUnassignCompensatesOnBedWriteFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	tenant := seedTenant(t, e, "John Doe")
	require.NoError(t, e.tenants().AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID))

	e.client.arm("update", backend.Beds, 0)

	err := e.tenants().UnassignTenantFromBed(ctx, tenant.TenantID)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))

	// The tenant-side clear was rolled back; the pair is still intact.
	e.client.arm("", "", 0)
	got, getErr := e.tenants().GetTenant(ctx, tenant.TenantID)
	require.NoError(t, getErr)
	require.NotNil(t, got.BedID)
	assert.Equal(t, beds[0].BedID, *got.BedID)

	bed, bedErr := e.beds().GetBed(ctx, beds[0].BedID)
	require.NoError(t, bedErr)
	assert.Equal(t, domain.BedOccupied, bed.Status)
	require.NotNil(t, bed.TenantID)
	assert.Equal(t, tenant.TenantID, *bed.TenantID)
}

func TestUnassignUnassignedTenant(t *testing.T) {
	e := newTestEnv(t)
	tenant := seedTenant(t, e, "John Doe")

	err := e.tenants().UnassignTenantFromBed(context.Background(), tenant.TenantID)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))
	assert.Equal(t, "Tenant is not assigned to any bed", err.Error())
}

func TestDeleteTenantReleasesBed(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, beds := seedProperty(t, e, "123 Main St", 1, 700)
	tenant := seedTenant(t, e, "John Doe")
	require.NoError(t, e.tenants().AssignTenantToBed(ctx, tenant.TenantID, beds[0].BedID))

	require.NoError(t, e.tenants().DeleteTenant(ctx, tenant.TenantID))

	_, err := e.tenants().GetTenant(ctx, tenant.TenantID)
	assert.True(t, domain.IsNotFound(err))

	bed, err := e.beds().GetBed(ctx, beds[0].BedID)
	require.NoError(t, err)
	assert.Equal(t, domain.BedAvailable, bed.Status)
	assert.Nil(t, bed.TenantID)
}

func TestUpdateTenantClearsDates(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	tenant, err := e.tenants().CreateTenant(ctx, CreateTenantRequest{
		FullName:   "John Doe",
		DOB:        datePtr(1990, time.May, 5),
		VoucherEnd: datePtr(2025, time.December, 31),
	})
	require.NoError(t, err)
	require.NotNil(t, tenant.VoucherEnd)

	// Zero time clears the column.
	zero := time.Time{}
	updated, err := e.tenants().UpdateTenant(ctx, tenant.TenantID, TenantUpdates{
		VoucherEnd: &zero,
		ExitDate:   datePtr(2025, time.August, 1),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.VoucherEnd)
	require.NotNil(t, updated.ExitDate)
	assert.Equal(t, "2025-08-01", updated.ExitDate.Format(domain.DateOnly))
}

func TestUpdateTenantNotFound(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.tenants().UpdateTenant(context.Background(), "missing", TenantUpdates{
		FullName: strPtr("Nobody"),
	})
	assert.True(t, domain.IsNotFound(err))
}
