package domain

// House is a property with beds (houses table).
//
// TotalBeds is a denormalized counter, not a derived count: it is written
// on create, adjusted best-effort when beds are added or removed, and
// editable directly. It may drift from the number of actual bed rows;
// readers that need exact occupancy count bed rows instead.
type House struct {
	HouseID   string
	Address   string
	County    string
	TotalBeds int
	Notes     *string
}

func HouseFromRow(r Row) *House {
	return &House{
		HouseID:   rowString(r, "house_id"),
		Address:   rowString(r, "address"),
		County:    rowString(r, "county"),
		TotalBeds: rowInt(r, "total_beds"),
		Notes:     rowStringPtr(r, "notes"),
	}
}
