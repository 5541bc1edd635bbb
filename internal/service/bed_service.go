package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/query"
	"haven-data/internal/validate"
)

// BedService owns single-bed mutations and the best-effort maintenance of
// the house's denormalized total_beds counter.
type BedService interface {
	AddBed(ctx context.Context, req AddBedRequest) (*domain.Bed, error)
	UpdateBed(ctx context.Context, bedID string, updates BedUpdates) (*domain.Bed, error)
	DeleteBed(ctx context.Context, bedID, houseID string) error
	GetBed(ctx context.Context, bedID string) (*domain.Bed, error)
	ListBeds(ctx context.Context, houseID string) ([]*domain.Bed, error)
}

type bedService struct {
	client backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewBedService(client backend.Client, cache *query.Cache, logger *zap.Logger) BedService {
	return &bedService{client: client, cache: cache, logger: logger}
}

// AddBedRequest carries the add-bed form.
type AddBedRequest struct {
	HouseID    string
	RoomNumber string
	BaseRent   *float64
	Status     string
	Notes      string
}

// AddBed inserts the bed, then increments the house's total_beds counter.
// The increment is best-effort: on failure it is logged and the insert is
// still reported as successful, so the counter can drift low.
func (s *bedService) AddBed(ctx context.Context, req AddBedRequest) (*domain.Bed, error) {
	if req.HouseID == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"house_id": "Property is required"}}
	}

	siblingRows, err := s.client.Select(ctx, backend.Beds, backend.Filter{"house_id": req.HouseID})
	if err != nil {
		return nil, persistErr("select", backend.Beds, err)
	}
	siblings := make([]*domain.Bed, 0, len(siblingRows))
	for _, r := range siblingRows {
		siblings = append(siblings, domain.BedFromRow(r))
	}

	status := req.Status
	if status == "" {
		status = domain.BedAvailable
	}
	if errs := validate.Bed(validate.BedForm{
		RoomNumber: req.RoomNumber,
		BaseRent:   req.BaseRent,
		Status:     status,
		Notes:      req.Notes,
	}, siblings, ""); len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}

	inserted, err := s.client.Insert(ctx, backend.Beds, []domain.Row{{
		"house_id":    req.HouseID,
		"room_number": strings.TrimSpace(req.RoomNumber),
		"base_rent":   *req.BaseRent,
		"status":      status,
		"tenant_id":   nil,
		"notes":       trimOrNil(req.Notes),
	}})
	if err != nil {
		return nil, persistErr("insert", backend.Beds, err)
	}
	bed := domain.BedFromRow(inserted[0])

	s.adjustTotalBeds(ctx, req.HouseID, +1)
	s.cache.Invalidate(ctx, backend.Beds, backend.Houses)
	return bed, nil
}

// BedUpdates is a partial update; nil fields are left untouched. The
// owning house is immutable here — moving beds between properties is a
// different workflow.
type BedUpdates struct {
	RoomNumber *string
	BaseRent   *float64
	Status     *string
	Notes      *string
}

func (s *bedService) UpdateBed(ctx context.Context, bedID string, updates BedUpdates) (*domain.Bed, error) {
	fields := domain.Row{}
	if updates.RoomNumber != nil {
		fields["room_number"] = strings.TrimSpace(*updates.RoomNumber)
	}
	if updates.BaseRent != nil {
		rent := *updates.BaseRent
		if rent < 0 {
			rent = 0
		}
		fields["base_rent"] = rent
	}
	if updates.Status != nil {
		if !domain.ValidBedStatus(*updates.Status) {
			return nil, &domain.ValidationError{Fields: map[string]string{"status": "Invalid status"}}
		}
		fields["status"] = *updates.Status
	}
	if updates.Notes != nil {
		fields["notes"] = trimOrNil(*updates.Notes)
	}

	rows, err := s.client.Update(ctx, backend.Beds, backend.Filter{"bed_id": bedID}, fields)
	if err != nil {
		return nil, persistErr("update", backend.Beds, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Beds, ID: bedID}
	}

	s.cache.Invalidate(ctx, backend.Beds)
	return domain.BedFromRow(rows[0]), nil
}

// DeleteBed removes the bed row, then decrements total_beds best-effort
// (floored at zero, log-not-raise). The caller is responsible for having
// unassigned any occupant first; occupancy is not checked here.
func (s *bedService) DeleteBed(ctx context.Context, bedID, houseID string) error {
	if err := s.client.Delete(ctx, backend.Beds, backend.Filter{"bed_id": bedID}); err != nil {
		return persistErr("delete", backend.Beds, err)
	}

	s.adjustTotalBeds(ctx, houseID, -1)
	s.cache.Invalidate(ctx, backend.Beds, backend.Houses)
	return nil
}

// adjustTotalBeds is the shared best-effort counter update: fetch the
// current value, write the adjusted one, log and continue on any failure.
func (s *bedService) adjustTotalBeds(ctx context.Context, houseID string, delta int) {
	rows, err := s.client.Select(ctx, backend.Houses, backend.Filter{"house_id": houseID})
	if err != nil || len(rows) == 0 {
		s.logger.Warn("failed to fetch house for total_beds update",
			zap.String("house_id", houseID), zap.Error(err))
		return
	}

	total := domain.HouseFromRow(rows[0]).TotalBeds + delta
	if total < 0 {
		total = 0
	}
	if _, err := s.client.Update(ctx, backend.Houses,
		backend.Filter{"house_id": houseID}, domain.Row{"total_beds": total}); err != nil {
		s.logger.Warn("failed to update house total_beds",
			zap.String("house_id", houseID), zap.Int("total_beds", total), zap.Error(err))
	}
}

func (s *bedService) GetBed(ctx context.Context, bedID string) (*domain.Bed, error) {
	rows, err := s.client.Select(ctx, backend.Beds, backend.Filter{"bed_id": bedID})
	if err != nil {
		return nil, persistErr("select", backend.Beds, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Beds, ID: bedID}
	}
	return domain.BedFromRow(rows[0]), nil
}

// ListBeds returns the beds of one house, or every bed when houseID is
// empty (the dashboard join path, served from the cache).
func (s *bedService) ListBeds(ctx context.Context, houseID string) ([]*domain.Bed, error) {
	var filter backend.Filter
	if houseID != "" {
		filter = backend.Filter{"house_id": houseID}
	}
	rows, err := s.cache.Select(ctx, backend.Beds, filter)
	if err != nil {
		return nil, persistErr("select", backend.Beds, err)
	}
	beds := make([]*domain.Bed, 0, len(rows))
	for _, r := range rows {
		beds = append(beds, domain.BedFromRow(r))
	}
	return beds, nil
}
