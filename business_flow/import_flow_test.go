package businessflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,price,image,release_date,lte_exists
Galaxy X,999.99,https://example.com/galaxy-x.jpg,2024-01-15,true
Pixel Mini,499.00,https://example.com/pixel-mini.jpg,2023-10-04,false
Nova Lite,149.50,https://example.com/nova-lite.jpg,2022-03-01,да
`

func importString(t *testing.T, repo *fakePhoneRepo, csvData string, clearFirst bool) (created, updated, skipped int) {
	t.Helper()

	flow := NewImportFlow(repo)
	summary, err := flow.Import(context.Background(), strings.NewReader(csvData), clearFirst)
	require.NoError(t, err)
	return summary.Created, summary.Updated, summary.Skipped
}

func TestImport_CreatesNewPhones(t *testing.T) {
	repo := newFakePhoneRepo()

	created, updated, skipped := importString(t, repo, sampleCSV, false)
	assert.Equal(t, 3, created)
	assert.Equal(t, 0, updated)
	assert.Equal(t, 0, skipped)

	phone, err := repo.BySlug(context.Background(), "galaxy-x")
	require.NoError(t, err)
	require.NotNil(t, phone)
	assert.Equal(t, "Galaxy X", phone.Name)
	assert.Equal(t, "999.99", phone.Price.StringFixed(2))
	require.NotNil(t, phone.LTEExists)
	assert.True(t, *phone.LTEExists)

	// Localized truthy word coerced on the way in
	nova, err := repo.BySlug(context.Background(), "nova-lite")
	require.NoError(t, err)
	require.NotNil(t, nova)
	assert.True(t, *nova.LTEExists)
}

func TestImport_ReimportUpdatesInPlace(t *testing.T) {
	repo := newFakePhoneRepo()
	importString(t, repo, sampleCSV, false)

	originalSlug := repo.phones[0].Slug

	changed := strings.Replace(sampleCSV, "999.99", "899.99", 1)
	created, updated, skipped := importString(t, repo, changed, false)
	assert.Equal(t, 0, created)
	assert.Equal(t, 3, updated)
	assert.Equal(t, 0, skipped)

	assert.Len(t, repo.phones, 3)

	phone, err := repo.ByName(context.Background(), "Galaxy X")
	require.NoError(t, err)
	require.NotNil(t, phone)
	assert.Equal(t, "899.99", phone.Price.StringFixed(2))
	assert.Equal(t, originalSlug, phone.Slug, "slug must survive updates")
}

func TestImport_ClearFirst(t *testing.T) {
	repo := newFakePhoneRepo()
	importString(t, repo, sampleCSV, false)
	require.Len(t, repo.phones, 3)

	onlyOne := `name,price,image,release_date,lte_exists
Solo Phone,10.00,https://example.com/solo.jpg,2021-01-01,no
`
	created, updated, _ := importString(t, repo, onlyOne, true)
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, updated)
	assert.Len(t, repo.phones, 1)
	assert.Equal(t, "Solo Phone", repo.phones[0].Name)
}

func TestImport_BadRowsSkippedRestProcessed(t *testing.T) {
	repo := newFakePhoneRepo()

	csvData := `name,price,image,release_date,lte_exists
Good One,100.00,https://example.com/one.jpg,2024-01-01,true
,100.00,https://example.com/anon.jpg,2024-01-01,true
Bad Price,oops,https://example.com/two.jpg,2024-01-01,true
Bad Date,100.00,https://example.com/three.jpg,01-01-2024,true
Bad URL,100.00,nowhere,2024-01-01,true
Good Two,200.00,https://example.com/four.jpg,2024-01-01,false
`
	created, updated, skipped := importString(t, repo, csvData, false)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)
	assert.Equal(t, 4, skipped)
	assert.Len(t, repo.phones, 2)
}

func TestImport_UpsertFailureSkipsRowOnly(t *testing.T) {
	repo := newFakePhoneRepo()
	repo.failOnName = "Pixel Mini"

	created, updated, skipped := importString(t, repo, sampleCSV, false)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)
	assert.Equal(t, 1, skipped)
}

func TestImport_ExtraColumnsIgnored(t *testing.T) {
	repo := newFakePhoneRepo()

	csvData := `id,name,price,image,release_date,lte_exists,notes
7,Galaxy X,999.99,https://example.com/galaxy-x.jpg,2024-01-15,true,flagship
`
	created, _, skipped := importString(t, repo, csvData, false)
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, skipped)
}

func TestImport_HeaderMissingColumns(t *testing.T) {
	repo := newFakePhoneRepo()
	flow := NewImportFlow(repo)

	csvData := `name,price,image
Galaxy X,999.99,https://example.com/galaxy-x.jpg
`
	summary, err := flow.Import(context.Background(), strings.NewReader(csvData), false)
	assert.Nil(t, summary)
	require.Error(t, err)
	require.True(t, IsSchemaMismatch(err))

	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"release_date", "lte_exists"}, mismatch.Missing)
	assert.Equal(t, []string{"name", "price", "image"}, mismatch.Found)

	assert.Empty(t, repo.phones, "no rows may be processed on schema mismatch")
}

func TestImport_EmptySource(t *testing.T) {
	flow := NewImportFlow(newFakePhoneRepo())

	summary, err := flow.Import(context.Background(), strings.NewReader(""), false)
	assert.Nil(t, summary)
	require.Error(t, err)
	assert.True(t, IsSourceUnavailable(err))
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestImport_HeaderOnlySourceSucceedsEmpty(t *testing.T) {
	repo := newFakePhoneRepo()

	created, updated, skipped := importString(t, repo, "name,price,image,release_date,lte_exists\n", false)
	assert.Equal(t, 0, created)
	assert.Equal(t, 0, updated)
	assert.Equal(t, 0, skipped)
}

func TestImportFile_MissingFile(t *testing.T) {
	flow := NewImportFlow(newFakePhoneRepo())

	summary, err := flow.ImportFile(context.Background(), "/nonexistent/phones.csv", false)
	assert.Nil(t, summary)
	require.Error(t, err)
	assert.True(t, IsSourceUnavailable(err))
	assert.Contains(t, err.Error(), "/nonexistent/phones.csv")
}

func TestImport_DuplicateNamesInSource(t *testing.T) {
	repo := newFakePhoneRepo()

	csvData := `name,price,image,release_date,lte_exists
Galaxy X,999.99,https://example.com/galaxy-x.jpg,2024-01-15,true
Galaxy X,888.88,https://example.com/galaxy-x-v2.jpg,2024-06-01,false
`
	created, updated, _ := importString(t, repo, csvData, false)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	require.Len(t, repo.phones, 1)

	// Last row wins for the mutable fields
	assert.Equal(t, "888.88", repo.phones[0].Price.StringFixed(2))
	assert.Equal(t, "galaxy-x", repo.phones[0].Slug)
}
