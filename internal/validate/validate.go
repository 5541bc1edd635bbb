// Package validate checks form input before it reaches the store.
// Each validator returns a field->message map; an empty map means valid.
package validate

import (
	"strings"

	"haven-data/internal/domain"
)

// PropertyForm is the add/edit property input. Pointer fields distinguish
// "absent" from zero so required/optional rules match the form contract.
type PropertyForm struct {
	Address         string
	County          string
	TotalBeds       *int
	DefaultBaseRent *float64
	Notes           string
}

// Property validates a property form.
// Required: address (min 5 trimmed chars), total beds (1..50).
// Optional: default base rent, non-negative when present.
func Property(f PropertyForm) map[string]string {
	errs := map[string]string{}

	addr := strings.TrimSpace(f.Address)
	if addr == "" {
		errs["address"] = "Address is required"
	} else if len(addr) < 5 {
		errs["address"] = "Address must be at least 5 characters"
	}

	if f.TotalBeds == nil {
		errs["total_beds"] = "Number of beds is required"
	} else if *f.TotalBeds < 1 {
		errs["total_beds"] = "Must have at least 1 bed"
	} else if *f.TotalBeds > 50 {
		errs["total_beds"] = "Maximum 50 beds per property"
	}

	if f.DefaultBaseRent != nil && *f.DefaultBaseRent < 0 {
		errs["default_base_rent"] = "Rent cannot be negative"
	}

	return errs
}

// BedForm is the add/edit bed input.
type BedForm struct {
	RoomNumber string
	BaseRent   *float64
	Status     string
	Notes      string
}

// Bed validates a bed form against the sibling beds of the same house.
// excludeID identifies the bed being edited so it does not collide with
// its own room number.
func Bed(f BedForm, siblings []*domain.Bed, excludeID string) map[string]string {
	errs := map[string]string{}

	room := strings.TrimSpace(f.RoomNumber)
	if room == "" {
		errs["room_number"] = "Room number is required"
	} else {
		for _, b := range siblings {
			if b.RoomNumber == room && b.BedID != excludeID {
				errs["room_number"] = "Room number already exists in this property"
				break
			}
		}
	}

	if f.BaseRent == nil {
		errs["base_rent"] = "Base rent is required"
	} else if *f.BaseRent < 0 {
		errs["base_rent"] = "Rent cannot be negative"
	}

	if !domain.ValidBedStatus(f.Status) {
		errs["status"] = "Invalid status"
	}

	return errs
}
