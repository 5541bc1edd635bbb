package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven-data/internal/domain"
)

func TestMemoryInsertGeneratesIDs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rows, err := m.Insert(ctx, Houses, []domain.Row{
		{"address": "123 Main St", "county": "King", "total_beds": 2},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEmpty(t, rows[0]["house_id"])
}

func TestMemoryInsertKeepsProvidedID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rows, err := m.Insert(ctx, Houses, []domain.Row{
		{"house_id": "h1", "address": "123 Main St"},
	})
	require.NoError(t, err)
	assert.Equal(t, "h1", rows[0]["house_id"])

	_, err = m.Insert(ctx, Houses, []domain.Row{{"house_id": "h1"}})
	assert.Error(t, err)
}

func TestMemorySelectFilter(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Insert(ctx, Beds, []domain.Row{
		{"bed_id": "b1", "house_id": "h1", "status": "Available", "tenant_id": nil},
		{"bed_id": "b2", "house_id": "h1", "status": "Occupied", "tenant_id": "t1"},
		{"bed_id": "b3", "house_id": "h2", "status": "Available", "tenant_id": nil},
	})
	require.NoError(t, err)

	rows, err := m.Select(ctx, Beds, Filter{"house_id": "h1"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// nil filter value matches IS NULL
	rows, err = m.Select(ctx, Beds, Filter{"tenant_id": nil})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = m.Select(ctx, Beds, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestMemoryUpdate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Insert(ctx, Tenants, []domain.Row{
		{"tenant_id": "t1", "full_name": "John Doe", "bed_id": nil},
	})
	require.NoError(t, err)

	rows, err := m.Update(ctx, Tenants, Filter{"tenant_id": "t1"}, domain.Row{"bed_id": "b1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b1", rows[0]["bed_id"])
	assert.Equal(t, "John Doe", rows[0]["full_name"])

	rows, err = m.Update(ctx, Tenants, Filter{"tenant_id": "missing"}, domain.Row{"bed_id": nil})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryDeleteCascadesHouseBeds(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Insert(ctx, Houses, []domain.Row{{"house_id": "h1"}, {"house_id": "h2"}})
	require.NoError(t, err)
	_, err = m.Insert(ctx, Beds, []domain.Row{
		{"bed_id": "b1", "house_id": "h1"},
		{"bed_id": "b2", "house_id": "h1"},
		{"bed_id": "b3", "house_id": "h2"},
	})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, Houses, Filter{"house_id": "h1"}))

	rows, err := m.Select(ctx, Beds, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b3", rows[0]["bed_id"])
}

func TestMemorySelectReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Insert(ctx, Houses, []domain.Row{{"house_id": "h1", "county": "King"}})
	require.NoError(t, err)

	rows, err := m.Select(ctx, Houses, nil)
	require.NoError(t, err)
	rows[0]["county"] = "Pierce"

	rows, err = m.Select(ctx, Houses, nil)
	require.NoError(t, err)
	assert.Equal(t, "King", rows[0]["county"])
}
