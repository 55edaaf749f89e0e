// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/utils"
)

func TestPhoneModelPersistence(t *testing.T) {
	testDB := setupDB(t)

	t.Run("RoundTrip", func(t *testing.T) {
		phone := &models.Phone{
			UUID:        uuid.New(),
			Name:        "Model Test Phone",
			Price:       decimal.RequireFromString("1234.56"),
			Image:       "https://example.com/model-test.jpg",
			ReleaseDate: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			LTEExists:   utils.ToPtr(true),
			Slug:        "model-test-phone",
		}
		require.NoError(t, testDB.DB.Create(phone).Error)
		assert.NotZero(t, phone.ID)

		var loaded models.Phone
		require.NoError(t, testDB.DB.First(&loaded, phone.ID).Error)
		assert.Equal(t, phone.Name, loaded.Name)
		assert.True(t, loaded.Price.Equal(phone.Price), "price came back as %s", loaded.Price)
		assert.Equal(t, "2024-02-29", utils.FormatDate(loaded.ReleaseDate))
		require.NotNil(t, loaded.LTEExists)
		assert.True(t, *loaded.LTEExists)
		assert.False(t, loaded.CreatedAt.IsZero())
	})

	t.Run("DuplicateSlugRejected", func(t *testing.T) {
		first := &models.Phone{
			UUID:        uuid.New(),
			Name:        "Twin A",
			Price:       decimal.RequireFromString("10.00"),
			Image:       "https://example.com/twin-a.jpg",
			ReleaseDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			LTEExists:   utils.ToPtr(false),
			Slug:        "twin",
		}
		require.NoError(t, testDB.DB.Create(first).Error)

		second := &models.Phone{
			UUID:        uuid.New(),
			Name:        "Twin B",
			Price:       decimal.RequireFromString("20.00"),
			Image:       "https://example.com/twin-b.jpg",
			ReleaseDate: time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC),
			LTEExists:   utils.ToPtr(false),
			Slug:        "twin",
		}
		assert.Error(t, testDB.DB.Create(second).Error, "uk_phones_slug must reject duplicates")
	})

	t.Run("DuplicateNameAllowed", func(t *testing.T) {
		for i, slugSuffix := range []string{"dup-one", "dup-two"} {
			phone := &models.Phone{
				UUID:        uuid.New(),
				Name:        "Duplicate Name",
				Price:       decimal.NewFromInt(int64(100 * (i + 1))),
				Image:       "https://example.com/dup.jpg",
				ReleaseDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
				LTEExists:   utils.ToPtr(false),
				Slug:        slugSuffix,
			}
			require.NoError(t, testDB.DB.Create(phone).Error)
		}

		var count int64
		require.NoError(t, testDB.DB.Model(&models.Phone{}).Where("name = ?", "Duplicate Name").Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}
