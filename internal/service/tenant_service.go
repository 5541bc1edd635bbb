package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/query"
)

// TenantService owns the tenant lifecycle and is the only writer of the
// Bed<->Tenant reference pair. Assign/Unassign/Delete keep the two
// nullable references mutually consistent; no other code path touches
// either side.
type TenantService interface {
	CreateTenant(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, tenantID string, updates TenantUpdates) (*domain.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID string) error
	AssignTenantToBed(ctx context.Context, tenantID, bedID string) error
	UnassignTenantFromBed(ctx context.Context, tenantID string) error
	GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)
}

type tenantService struct {
	client backend.Client
	cache  *query.Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewTenantService(client backend.Client, cache *query.Cache, logger *zap.Logger) TenantService {
	return &tenantService{client: client, cache: cache, logger: logger, now: time.Now}
}

// CreateTenantRequest carries the add-tenant form. Tenants are always
// created unassigned; bed placement happens through AssignTenantToBed.
type CreateTenantRequest struct {
	FullName          string
	DOB               *time.Time
	Phone             string
	Email             string
	Address           string
	Gender            string
	DocNumber         string
	TenantType        string
	PaymentType       string
	VoucherType       string
	ActualRent        float64
	ApplicationStatus string
	EntryDate         *time.Time
	VoucherStart      *time.Time
	VoucherEnd        *time.Time
	Notes             string
	AccessCode        string
}

func (s *tenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, error) {
	errs := map[string]string{}
	if strings.TrimSpace(req.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	if req.DOB == nil {
		errs["dob"] = "Date of birth is required"
	}
	if len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}

	status := req.ApplicationStatus
	if status == "" {
		status = domain.ApplicationPending
	}

	inserted, err := s.client.Insert(ctx, backend.Tenants, []domain.Row{{
		"full_name":          strings.TrimSpace(req.FullName),
		"dob":                req.DOB.Format(domain.DateOnly),
		"phone":              trimOrNil(req.Phone),
		"email":              trimOrNil(req.Email),
		"address":            trimOrNil(req.Address),
		"gender":             trimOrNil(req.Gender),
		"doc_number":         trimOrNil(req.DocNumber),
		"tenant_type":        trimOrNil(req.TenantType),
		"payment_type":       trimOrNil(req.PaymentType),
		"voucher_type":       trimOrNil(req.VoucherType),
		"actual_rent":        req.ActualRent,
		"rent_due":           0,
		"rent_paid":          0,
		"application_status": status,
		"bed_id":             nil,
		"entry_date":         dateOrNil(req.EntryDate),
		"exit_date":          nil,
		"voucher_start":      dateOrNil(req.VoucherStart),
		"voucher_end":        dateOrNil(req.VoucherEnd),
		"notes":              trimOrNil(req.Notes),
		"access_code":        trimOrNil(req.AccessCode),
	}})
	if err != nil {
		return nil, persistErr("insert", backend.Tenants, err)
	}

	s.cache.Invalidate(ctx, backend.Tenants)
	return domain.TenantFromRow(inserted[0]), nil
}

// TenantUpdates is a partial update; nil fields are left untouched.
// Date pointers use the zero time to mean "clear to NULL". The bed
// reference is deliberately absent: only assign/unassign/delete write it.
type TenantUpdates struct {
	FullName          *string
	Phone             *string
	Email             *string
	Address           *string
	Gender            *string
	DocNumber         *string
	TenantType        *string
	PaymentType       *string
	VoucherType       *string
	ActualRent        *float64
	RentDue           *float64
	RentPaid          *float64
	ApplicationStatus *string
	EntryDate         *time.Time
	ExitDate          *time.Time
	VoucherStart      *time.Time
	VoucherEnd        *time.Time
	Notes             *string
	AccessCode        *string
}

func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, updates TenantUpdates) (*domain.Tenant, error) {
	fields := domain.Row{}
	if updates.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*updates.FullName)
	}
	setTrimmed(fields, "phone", updates.Phone)
	setTrimmed(fields, "email", updates.Email)
	setTrimmed(fields, "address", updates.Address)
	setTrimmed(fields, "gender", updates.Gender)
	setTrimmed(fields, "doc_number", updates.DocNumber)
	setTrimmed(fields, "tenant_type", updates.TenantType)
	setTrimmed(fields, "payment_type", updates.PaymentType)
	setTrimmed(fields, "voucher_type", updates.VoucherType)
	setTrimmed(fields, "notes", updates.Notes)
	setTrimmed(fields, "access_code", updates.AccessCode)
	if updates.ActualRent != nil {
		fields["actual_rent"] = *updates.ActualRent
	}
	if updates.RentDue != nil {
		fields["rent_due"] = *updates.RentDue
	}
	if updates.RentPaid != nil {
		fields["rent_paid"] = *updates.RentPaid
	}
	if updates.ApplicationStatus != nil {
		fields["application_status"] = *updates.ApplicationStatus
	}
	setDate(fields, "entry_date", updates.EntryDate)
	setDate(fields, "exit_date", updates.ExitDate)
	setDate(fields, "voucher_start", updates.VoucherStart)
	setDate(fields, "voucher_end", updates.VoucherEnd)

	rows, err := s.client.Update(ctx, backend.Tenants, backend.Filter{"tenant_id": tenantID}, fields)
	if err != nil {
		return nil, persistErr("update", backend.Tenants, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Tenants, ID: tenantID}
	}

	s.cache.Invalidate(ctx, backend.Tenants)
	return domain.TenantFromRow(rows[0]), nil
}

// AssignTenantToBed places a tenant in an available bed.
//
// The availability check and the two writes are separate store calls, so
// two concurrent assigns can both pass the check before either commits;
// the loser's write wins last. This check-then-act window is accepted
// behavior — callers re-verify on retry rather than locking.
func (s *tenantService) AssignTenantToBed(ctx context.Context, tenantID, bedID string) error {
	bedRows, err := s.client.Select(ctx, backend.Beds, backend.Filter{"bed_id": bedID})
	if err != nil {
		return persistErr("select", backend.Beds, err)
	}
	if len(bedRows) == 0 {
		return &domain.NotFoundError{Collection: backend.Beds, ID: bedID}
	}
	bed := domain.BedFromRow(bedRows[0])
	if bed.Status != domain.BedAvailable || bed.TenantID != nil {
		return &domain.ConflictError{Message: "Bed is already occupied or not available"}
	}

	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	fields := domain.Row{
		"bed_id":             bedID,
		"application_status": domain.ApplicationActive,
	}
	if tenant.EntryDate == nil {
		fields["entry_date"] = s.now().Format(domain.DateOnly)
	}
	if _, err := s.client.Update(ctx, backend.Tenants, backend.Filter{"tenant_id": tenantID}, fields); err != nil {
		return persistErr("update", backend.Tenants, err)
	}

	if _, err := s.client.Update(ctx, backend.Beds, backend.Filter{"bed_id": bedID},
		domain.Row{"tenant_id": tenantID, "status": domain.BedOccupied}); err != nil {
		// Compensation: clear the tenant reference written above. A
		// failure here leaves a transient half-assigned pair.
		if _, compErr := s.client.Update(ctx, backend.Tenants,
			backend.Filter{"tenant_id": tenantID}, domain.Row{"bed_id": nil}); compErr != nil {
			s.logger.Error("failed to revert tenant bed reference after bed update failure",
				zap.String("tenant_id", tenantID), zap.String("bed_id", bedID), zap.Error(compErr))
		}
		return persistErr("update", backend.Beds, err)
	}

	s.cache.Invalidate(ctx, backend.Tenants, backend.Beds)
	s.logger.Info("tenant assigned to bed",
		zap.String("tenant_id", tenantID), zap.String("bed_id", bedID))
	return nil
}

// UnassignTenantFromBed clears both sides of the pair, restoring the
// tenant reference if the bed-side write fails.
func (s *tenantService) UnassignTenantFromBed(ctx context.Context, tenantID string) error {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.BedID == nil {
		return &domain.StateError{Message: "Tenant is not assigned to any bed"}
	}
	bedID := *tenant.BedID

	if _, err := s.client.Update(ctx, backend.Tenants,
		backend.Filter{"tenant_id": tenantID}, domain.Row{"bed_id": nil}); err != nil {
		return persistErr("update", backend.Tenants, err)
	}

	if _, err := s.client.Update(ctx, backend.Beds, backend.Filter{"bed_id": bedID},
		domain.Row{"tenant_id": nil, "status": domain.BedAvailable}); err != nil {
		if _, compErr := s.client.Update(ctx, backend.Tenants,
			backend.Filter{"tenant_id": tenantID}, domain.Row{"bed_id": bedID}); compErr != nil {
			s.logger.Error("failed to restore tenant bed reference after bed update failure",
				zap.String("tenant_id", tenantID), zap.String("bed_id", bedID), zap.Error(compErr))
		}
		return persistErr("update", backend.Beds, err)
	}

	s.cache.Invalidate(ctx, backend.Tenants, backend.Beds)
	s.logger.Info("tenant unassigned from bed",
		zap.String("tenant_id", tenantID), zap.String("bed_id", bedID))
	return nil
}

// DeleteTenant releases the tenant's bed directly (no extra read round
// trip through UnassignTenantFromBed), then deletes the tenant row.
func (s *tenantService) DeleteTenant(ctx context.Context, tenantID string) error {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	if tenant.BedID != nil {
		if _, err := s.client.Update(ctx, backend.Beds, backend.Filter{"bed_id": *tenant.BedID},
			domain.Row{"tenant_id": nil, "status": domain.BedAvailable}); err != nil {
			return persistErr("update", backend.Beds, err)
		}
	}

	if err := s.client.Delete(ctx, backend.Tenants, backend.Filter{"tenant_id": tenantID}); err != nil {
		return persistErr("delete", backend.Tenants, err)
	}

	s.cache.Invalidate(ctx, backend.Tenants, backend.Beds)
	s.logger.Info("tenant deleted",
		zap.String("tenant_id", tenantID), zap.Bool("bed_released", tenant.BedID != nil))
	return nil
}

func (s *tenantService) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	rows, err := s.client.Select(ctx, backend.Tenants, backend.Filter{"tenant_id": tenantID})
	if err != nil {
		return nil, persistErr("select", backend.Tenants, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Tenants, ID: tenantID}
	}
	return domain.TenantFromRow(rows[0]), nil
}

func (s *tenantService) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := s.cache.Select(ctx, backend.Tenants, nil)
	if err != nil {
		return nil, persistErr("select", backend.Tenants, err)
	}
	tenants := make([]*domain.Tenant, 0, len(rows))
	for _, r := range rows {
		tenants = append(tenants, domain.TenantFromRow(r))
	}
	return tenants, nil
}

func setTrimmed(fields domain.Row, key string, v *string) {
	if v != nil {
		fields[key] = trimOrNil(*v)
	}
}

func setDate(fields domain.Row, key string, v *time.Time) {
	if v == nil {
		return
	}
	if v.IsZero() {
		fields[key] = nil
		return
	}
	fields[key] = v.Format(domain.DateOnly)
}

func dateOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateOnly)
}
