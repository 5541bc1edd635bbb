package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/format"
	"haven-data/internal/query"
	"haven-data/internal/validate"
)

// DefaultCounty is used when the normalized county comes back empty,
// matching the operator's home region.
const DefaultCounty = "King"

// PropertyService owns the house lifecycle, including the create-with-beds
// saga and the cascading delete.
type PropertyService interface {
	CreatePropertyWithBeds(ctx context.Context, req CreatePropertyRequest) (*domain.House, error)
	UpdateProperty(ctx context.Context, houseID string, updates PropertyUpdates) (*domain.House, error)
	DeleteProperty(ctx context.Context, houseID string) error
	GetProperty(ctx context.Context, houseID string) (*domain.House, error)
	ListProperties(ctx context.Context) ([]*domain.House, error)
}

type propertyService struct {
	client backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewPropertyService(client backend.Client, cache *query.Cache, logger *zap.Logger) PropertyService {
	return &propertyService{client: client, cache: cache, logger: logger}
}

// CreatePropertyRequest carries the add-property form.
type CreatePropertyRequest struct {
	Address         string
	County          string
	TotalBeds       *int
	DefaultBaseRent *float64
	Notes           string
}

// CreatePropertyWithBeds inserts the house, then bulk-inserts its beds
// with sequential room numbers "1".."N". The two writes are not atomic:
// if the bed insert fails, the house row is deleted as compensation. A
// crash between the writes leaves an orphaned house with zero beds.
func (s *propertyService) CreatePropertyWithBeds(ctx context.Context, req CreatePropertyRequest) (*domain.House, error) {
	if errs := validate.Property(validate.PropertyForm{
		Address:         req.Address,
		County:          req.County,
		TotalBeds:       req.TotalBeds,
		DefaultBaseRent: req.DefaultBaseRent,
		Notes:           req.Notes,
	}); len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}

	county := format.NormalizeCounty(req.County)
	if county == "" {
		county = DefaultCounty
	}

	inserted, err := s.client.Insert(ctx, backend.Houses, []domain.Row{{
		"address":    strings.TrimSpace(req.Address),
		"county":     county,
		"total_beds": *req.TotalBeds,
		"notes":      trimOrNil(req.Notes),
	}})
	if err != nil {
		return nil, persistErr("insert", backend.Houses, err)
	}
	house := domain.HouseFromRow(inserted[0])

	rent := 0.0
	if req.DefaultBaseRent != nil {
		rent = *req.DefaultBaseRent
	}
	bedRows := make([]domain.Row, 0, *req.TotalBeds)
	for i := 0; i < *req.TotalBeds; i++ {
		bedRows = append(bedRows, domain.Row{
			"house_id":    house.HouseID,
			"room_number": strconv.Itoa(i + 1),
			"base_rent":   rent,
			"status":      domain.BedAvailable,
			"tenant_id":   nil,
			"notes":       nil,
		})
	}

	if _, err := s.client.Insert(ctx, backend.Beds, bedRows); err != nil {
		// Compensation: remove the house created in step 1.
		if delErr := s.client.Delete(ctx, backend.Houses, backend.Filter{"house_id": house.HouseID}); delErr != nil {
			s.logger.Error("rollback of created house failed",
				zap.String("house_id", house.HouseID), zap.Error(delErr))
		}
		return nil, persistErr("insert", backend.Beds, err)
	}

	s.cache.Invalidate(ctx, backend.Houses, backend.Beds)
	s.logger.Info("property created",
		zap.String("house_id", house.HouseID), zap.Int("beds", *req.TotalBeds))
	return house, nil
}

// PropertyUpdates is a partial update; nil fields are left untouched.
type PropertyUpdates struct {
	Address   *string
	County    *string
	TotalBeds *int
	Notes     *string
}

// UpdateProperty applies a partial update to the house row. total_beds is
// written verbatim and never reconciled against actual bed rows; the
// counter is advisory and allowed to drift.
func (s *propertyService) UpdateProperty(ctx context.Context, houseID string, updates PropertyUpdates) (*domain.House, error) {
	fields := domain.Row{}
	if updates.Address != nil {
		fields["address"] = strings.TrimSpace(*updates.Address)
	}
	if updates.County != nil {
		county := format.NormalizeCounty(*updates.County)
		if county == "" {
			county = DefaultCounty
		}
		fields["county"] = county
	}
	if updates.TotalBeds != nil {
		fields["total_beds"] = *updates.TotalBeds
	}
	if updates.Notes != nil {
		fields["notes"] = trimOrNil(*updates.Notes)
	}

	rows, err := s.client.Update(ctx, backend.Houses, backend.Filter{"house_id": houseID}, fields)
	if err != nil {
		return nil, persistErr("update", backend.Houses, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Houses, ID: houseID}
	}

	s.cache.Invalidate(ctx, backend.Houses)
	return domain.HouseFromRow(rows[0]), nil
}

// DeleteProperty unassigns every tenant occupying one of the house's
// beds, then deletes the house and lets the store cascade the bed rows.
// The tenant step must come first so no tenant is left pointing at a
// deleted bed.
func (s *propertyService) DeleteProperty(ctx context.Context, houseID string) error {
	beds, err := s.client.Select(ctx, backend.Beds, backend.Filter{"house_id": houseID})
	if err != nil {
		return persistErr("select", backend.Beds, err)
	}

	for _, row := range beds {
		bed := domain.BedFromRow(row)
		if _, err := s.client.Update(ctx, backend.Tenants,
			backend.Filter{"bed_id": bed.BedID}, domain.Row{"bed_id": nil}); err != nil {
			return persistErr("update", backend.Tenants, err)
		}
	}

	if err := s.client.Delete(ctx, backend.Houses, backend.Filter{"house_id": houseID}); err != nil {
		return persistErr("delete", backend.Houses, err)
	}

	s.cache.Invalidate(ctx, backend.Houses, backend.Beds, backend.Tenants)
	s.logger.Info("property deleted", zap.String("house_id", houseID), zap.Int("beds", len(beds)))
	return nil
}

func (s *propertyService) GetProperty(ctx context.Context, houseID string) (*domain.House, error) {
	rows, err := s.client.Select(ctx, backend.Houses, backend.Filter{"house_id": houseID})
	if err != nil {
		return nil, persistErr("select", backend.Houses, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{Collection: backend.Houses, ID: houseID}
	}
	return domain.HouseFromRow(rows[0]), nil
}

func (s *propertyService) ListProperties(ctx context.Context) ([]*domain.House, error) {
	rows, err := s.cache.Select(ctx, backend.Houses, nil)
	if err != nil {
		return nil, persistErr("select", backend.Houses, err)
	}
	houses := make([]*domain.House, 0, len(rows))
	for _, r := range rows {
		houses = append(houses, domain.HouseFromRow(r))
	}
	return houses, nil
}
