package businessflow

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seededCatalogFlow(t *testing.T) (CatalogFlow, *fakePhoneRepo) {
	t.Helper()

	repo := newFakePhoneRepo()
	importString(t, repo, sampleCSV, false)
	return NewCatalogFlow(repo), repo
}

func TestListPhones_Orderings(t *testing.T) {
	flow, _ := seededCatalogFlow(t)
	ctx := context.Background()

	tests := []struct {
		key      string
		applied  string
		expected []string
	}{
		{"name", "name", []string{"Galaxy X", "Nova Lite", "Pixel Mini"}},
		{"name_desc", "name_desc", []string{"Pixel Mini", "Nova Lite", "Galaxy X"}},
		{"price_asc", "price_asc", []string{"Nova Lite", "Pixel Mini", "Galaxy X"}},
		{"price_desc", "price_desc", []string{"Galaxy X", "Pixel Mini", "Nova Lite"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resp, err := flow.ListPhones(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.applied, resp.Ordering)

			names := make([]string, 0, len(resp.Phones))
			for _, p := range resp.Phones {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestListPhones_UnknownKeyFallsBackToName(t *testing.T) {
	flow, _ := seededCatalogFlow(t)

	for _, key := range []string{"", "price", "id", "name_asc", "DROP TABLE phones"} {
		resp, err := flow.ListPhones(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, "name", resp.Ordering, "key %q must fall back to name", key)
		require.NotEmpty(t, resp.Phones)
		assert.Equal(t, "Galaxy X", resp.Phones[0].Name)
	}
}

func TestListPhones_EmptyCatalog(t *testing.T) {
	flow := NewCatalogFlow(newFakePhoneRepo())

	resp, err := flow.ListPhones(context.Background(), "name")
	require.NoError(t, err)
	assert.Equal(t, "name", resp.Ordering)
	assert.Empty(t, resp.Phones)
	assert.NotNil(t, resp.Phones, "empty list marshals as [], not null")
}

func TestGetPhoneBySlug(t *testing.T) {
	flow, _ := seededCatalogFlow(t)
	ctx := context.Background()

	item, err := flow.GetPhoneBySlug(ctx, "galaxy-x")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Galaxy X", item.Name)
	assert.Equal(t, "999.99", item.Price)
	assert.Equal(t, "2024-01-15", item.ReleaseDate)
	assert.True(t, item.LTEExists)

	item, err = flow.GetPhoneBySlug(ctx, "no-such-phone")
	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, IsPhoneNotFound(err))
}

func TestExportPhones(t *testing.T) {
	flow, _ := seededCatalogFlow(t)

	filename, content, err := flow.ExportPhones(context.Background(), "price_desc")
	require.NoError(t, err)
	assert.Equal(t, "phone_catalog_price_desc.xlsx", filename)
	require.NotEmpty(t, content)

	xl, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Phones")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + three phones

	assert.Equal(t, "name", rows[0][2])
	assert.Equal(t, "Galaxy X", rows[1][2])
	assert.Equal(t, "999.99", rows[1][3])
	assert.Equal(t, "Nova Lite", rows[3][2])
}

func TestExportPhones_UnknownKeyUsesNameOrdering(t *testing.T) {
	flow, _ := seededCatalogFlow(t)

	filename, content, err := flow.ExportPhones(context.Background(), "bogus")
	require.NoError(t, err)
	assert.Equal(t, "phone_catalog_name.xlsx", filename)
	assert.True(t, strings.HasPrefix(filename, "phone_catalog_"))
	assert.NotEmpty(t, content)
}
