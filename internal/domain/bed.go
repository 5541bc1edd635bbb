package domain

// Bed statuses. Available/Occupied flip only through assign/unassign;
// Pending and Hold are set by direct administrative bed updates.
const (
	BedAvailable = "Available"
	BedOccupied  = "Occupied"
	BedPending   = "Pending"
	BedHold      = "Hold"
)

// BedStatuses lists the allowed bed status values.
var BedStatuses = []string{BedAvailable, BedOccupied, BedPending, BedHold}

func ValidBedStatus(s string) bool {
	for _, v := range BedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Bed is a single assignable unit within a house (beds table).
//
// TenantID is the occupant back-reference of the Bed<->Tenant pair.
// Invariant: TenantID != nil iff Status == Occupied, and the referenced
// tenant's BedID points back here. All writes to the pair go through the
// tenant service's assign/unassign/delete operations.
type Bed struct {
	BedID      string
	HouseID    string
	RoomNumber string
	BaseRent   float64
	Status     string
	TenantID   *string
	Notes      *string
}

func BedFromRow(r Row) *Bed {
	return &Bed{
		BedID:      rowString(r, "bed_id"),
		HouseID:    rowString(r, "house_id"),
		RoomNumber: rowString(r, "room_number"),
		BaseRent:   rowFloat(r, "base_rent"),
		Status:     rowString(r, "status"),
		TenantID:   rowStringPtr(r, "tenant_id"),
		Notes:      rowStringPtr(r, "notes"),
	}
}
