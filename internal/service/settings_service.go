package service

import (
	"context"

	"go.uber.org/zap"

	"haven-data/internal/backend"
	"haven-data/internal/domain"
	"haven-data/internal/query"
)

// Voucher-rate setting keys. erd_rate supersedes the legacy voucher_rate
// key, which is still read as a fallback for rows written before the
// rename.
const (
	SettingERDRate      = "erd_rate"
	SettingLegacyRate   = "voucher_rate"
	SettingGRERate      = "gre_rate"
	SettingSection8Rate = "section8_rate"
	SettingTelecareRate = "telecare_rate"
)

// VoucherRates holds the per-program monthly rates as stored, string
// typed like the underlying key/value rows.
type VoucherRates struct {
	ERDRate      string `json:"erd_rate"`
	GRERate      string `json:"gre_rate"`
	Section8Rate string `json:"section8_rate"`
	TelecareRate string `json:"telecare_rate"`
}

// SettingsService reads and writes system_settings key/value rows.
type SettingsService interface {
	GetVoucherRates(ctx context.Context) (*VoucherRates, error)
	UpdateVoucherRates(ctx context.Context, rates VoucherRates) error
}

type settingsService struct {
	client backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewSettingsService(client backend.Client, cache *query.Cache, logger *zap.Logger) SettingsService {
	return &settingsService{client: client, cache: cache, logger: logger}
}

func (s *settingsService) GetVoucherRates(ctx context.Context) (*VoucherRates, error) {
	rows, err := s.cache.Select(ctx, backend.SystemSettings, nil)
	if err != nil {
		return nil, persistErr("select", backend.SystemSettings, err)
	}

	values := map[string]string{}
	for _, r := range rows {
		setting := domain.SystemSettingFromRow(r)
		values[setting.SettingKey] = setting.SettingValue
	}

	rates := &VoucherRates{
		ERDRate:      values[SettingERDRate],
		GRERate:      values[SettingGRERate],
		Section8Rate: values[SettingSection8Rate],
		TelecareRate: values[SettingTelecareRate],
	}
	if rates.ERDRate == "" {
		rates.ERDRate = values[SettingLegacyRate]
	}
	return rates, nil
}

// UpdateVoucherRates upserts each non-empty rate individually; the rows
// are independent keys, not a single document.
func (s *settingsService) UpdateVoucherRates(ctx context.Context, rates VoucherRates) error {
	pairs := map[string]string{
		SettingERDRate:      rates.ERDRate,
		SettingGRERate:      rates.GRERate,
		SettingSection8Rate: rates.Section8Rate,
		SettingTelecareRate: rates.TelecareRate,
	}

	for key, value := range pairs {
		if value == "" {
			continue
		}
		updated, err := s.client.Update(ctx, backend.SystemSettings,
			backend.Filter{"setting_key": key}, domain.Row{"setting_value": value})
		if err != nil {
			return persistErr("update", backend.SystemSettings, err)
		}
		if len(updated) == 0 {
			if _, err := s.client.Insert(ctx, backend.SystemSettings, []domain.Row{{
				"setting_key":   key,
				"setting_value": value,
			}}); err != nil {
				return persistErr("insert", backend.SystemSettings, err)
			}
		}
	}

	s.cache.Invalidate(ctx, backend.SystemSettings)
	s.logger.Info("voucher rates updated")
	return nil
}
