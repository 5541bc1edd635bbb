package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/format"
	"haven-data/internal/query"
)

// voucher and arrival alerts look this many days ahead.
const alertWindowDays = 30

// DashboardService derives the view-level aggregates. It fetches whole
// collections through the query cache and joins them in memory with
// lookup maps keyed by primary id.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type dashboardService struct {
	cache  *query.Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(cache *query.Cache, logger *zap.Logger) DashboardService {
	return &dashboardService{cache: cache, logger: logger, now: time.Now}
}

type DashboardOverview struct {
	Metrics          BedMetrics         `json:"metrics"`
	Properties       PropertiesOverview `json:"properties"`
	ExpiringVouchers []VoucherAlert     `json:"expiring_vouchers"`
	PendingArrivals  []ArrivalAlert     `json:"pending_arrivals"`
	AvailableBeds    []AvailableBed     `json:"available_beds"`
}

// BedMetrics are the headline occupancy numbers over actual bed rows.
type BedMetrics struct {
	TotalBeds     int `json:"total_beds"`
	OccupiedBeds  int `json:"occupied_beds"`
	AvailableBeds int `json:"available_beds"`
	OccupancyRate int `json:"occupancy_rate"`
}

// PropertiesOverview aggregates per-house numbers. DeclaredBeds sums the
// advisory total_beds counters, which is also what the at-capacity and
// occupancy figures compare against, drift included.
type PropertiesOverview struct {
	TotalProperties        int     `json:"total_properties"`
	DeclaredBeds           int     `json:"declared_beds"`
	OccupancyRate          int     `json:"occupancy_rate"`
	AtFullCapacity         int     `json:"at_full_capacity"`
	PotentialMonthlyIncome float64 `json:"potential_monthly_income"`
}

type VoucherAlert struct {
	TenantID   string    `json:"tenant_id"`
	FullName   string    `json:"full_name"`
	VoucherEnd time.Time `json:"voucher_end"`
	DaysUntil  int       `json:"days_until"`
	Urgency    string    `json:"urgency"`
}

type ArrivalAlert struct {
	TenantID  string    `json:"tenant_id"`
	FullName  string    `json:"full_name"`
	EntryDate time.Time `json:"entry_date"`
	DaysUntil int       `json:"days_until"`
}

type AvailableBed struct {
	BedID        string  `json:"bed_id"`
	RoomNumber   string  `json:"room_number"`
	BaseRent     float64 `json:"base_rent"`
	HouseAddress string  `json:"house_address"`
	County       string  `json:"county"`
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	houseRows, err := s.cache.Select(ctx, backend.Houses, nil)
	if err != nil {
		return nil, persistErr("select", backend.Houses, err)
	}
	bedRows, err := s.cache.Select(ctx, backend.Beds, nil)
	if err != nil {
		return nil, persistErr("select", backend.Beds, err)
	}
	tenantRows, err := s.cache.Select(ctx, backend.Tenants, nil)
	if err != nil {
		return nil, persistErr("select", backend.Tenants, err)
	}

	houses := make([]*domain.House, 0, len(houseRows))
	houseByID := make(map[string]*domain.House, len(houseRows))
	for _, r := range houseRows {
		h := domain.HouseFromRow(r)
		houses = append(houses, h)
		houseByID[h.HouseID] = h
	}
	beds := make([]*domain.Bed, 0, len(bedRows))
	for _, r := range bedRows {
		beds = append(beds, domain.BedFromRow(r))
	}
	tenants := make([]*domain.Tenant, 0, len(tenantRows))
	for _, r := range tenantRows {
		tenants = append(tenants, domain.TenantFromRow(r))
	}

	now := s.now()
	return &DashboardOverview{
		Metrics:          bedMetrics(beds),
		Properties:       propertiesOverview(houses, beds),
		ExpiringVouchers: expiringVouchers(tenants, now),
		PendingArrivals:  pendingArrivals(tenants, now),
		AvailableBeds:    availableBeds(beds, houseByID),
	}, nil
}

func bedMetrics(beds []*domain.Bed) BedMetrics {
	m := BedMetrics{TotalBeds: len(beds)}
	for _, b := range beds {
		switch b.Status {
		case domain.BedOccupied:
			m.OccupiedBeds++
		case domain.BedAvailable:
			m.AvailableBeds++
		}
	}
	if m.TotalBeds > 0 {
		m.OccupancyRate = roundPercent(m.OccupiedBeds, m.TotalBeds)
	}
	return m
}

func propertiesOverview(houses []*domain.House, beds []*domain.Bed) PropertiesOverview {
	o := PropertiesOverview{TotalProperties: len(houses)}

	occupiedByHouse := map[string]int{}
	occupied := 0
	for _, b := range beds {
		o.PotentialMonthlyIncome += b.BaseRent
		if b.Status == domain.BedOccupied {
			occupiedByHouse[b.HouseID]++
			occupied++
		}
	}
	for _, h := range houses {
		o.DeclaredBeds += h.TotalBeds
		if h.TotalBeds > 0 && occupiedByHouse[h.HouseID] == h.TotalBeds {
			o.AtFullCapacity++
		}
	}
	if o.DeclaredBeds > 0 {
		o.OccupancyRate = roundPercent(occupied, o.DeclaredBeds)
	}
	return o
}

func expiringVouchers(tenants []*domain.Tenant, now time.Time) []VoucherAlert {
	alerts := []VoucherAlert{}
	for _, t := range tenants {
		if t.VoucherEnd == nil || t.ExitDate != nil {
			continue
		}
		if !format.IsWithinDays(*t.VoucherEnd, alertWindowDays, now) {
			continue
		}
		days := format.DaysUntil(*t.VoucherEnd, now)
		alerts = append(alerts, VoucherAlert{
			TenantID:   t.TenantID,
			FullName:   t.FullName,
			VoucherEnd: *t.VoucherEnd,
			DaysUntil:  days,
			Urgency:    format.UrgencyLevel(days),
		})
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].VoucherEnd.Before(alerts[j].VoucherEnd)
	})
	return alerts
}

func pendingArrivals(tenants []*domain.Tenant, now time.Time) []ArrivalAlert {
	arrivals := []ArrivalAlert{}
	for _, t := range tenants {
		if t.EntryDate == nil || t.ExitDate != nil {
			continue
		}
		if !format.IsWithinDays(*t.EntryDate, alertWindowDays, now) {
			continue
		}
		arrivals = append(arrivals, ArrivalAlert{
			TenantID:  t.TenantID,
			FullName:  t.FullName,
			EntryDate: *t.EntryDate,
			DaysUntil: format.DaysUntil(*t.EntryDate, now),
		})
	}
	sort.Slice(arrivals, func(i, j int) bool {
		return arrivals[i].EntryDate.Before(arrivals[j].EntryDate)
	})
	return arrivals
}

func availableBeds(beds []*domain.Bed, houseByID map[string]*domain.House) []AvailableBed {
	out := []AvailableBed{}
	for _, b := range beds {
		if b.Status != domain.BedAvailable {
			continue
		}
		entry := AvailableBed{
			BedID:        b.BedID,
			RoomNumber:   b.RoomNumber,
			BaseRent:     b.BaseRent,
			HouseAddress: "Unknown",
		}
		if h, ok := houseByID[b.HouseID]; ok {
			entry.HouseAddress = h.Address
			entry.County = h.County
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HouseAddress != out[j].HouseAddress {
			return out[i].HouseAddress < out[j].HouseAddress
		}
		return out[i].RoomNumber < out[j].RoomNumber
	})
	return out
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
