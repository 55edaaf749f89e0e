// Package testing provides test utilities and database setup for testing the catalog service
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestPhone creates a phone with a unique name and slug
func (tf *TestFixtures) CreateTestPhone(name string) (*models.Phone, error) {
	if name == "" {
		name = fmt.Sprintf("Test Phone %06d", rand.Intn(900000)+100000)
	}

	phone := &models.Phone{
		UUID:        uuid.New(),
		Name:        name,
		Price:       decimal.NewFromFloat(rand.Float64() * 1000).Round(2),
		Image:       fmt.Sprintf("https://example.com/images/%s.jpg", slug.Make(name)),
		ReleaseDate: time.Date(2020+rand.Intn(5), time.Month(rand.Intn(12)+1), rand.Intn(28)+1, 0, 0, 0, 0, time.UTC),
		LTEExists:   utils.ToPtr(rand.Intn(2) == 1),
		Slug:        slug.Make(name),
	}

	if err := tf.DB.DB.Create(phone).Error; err != nil {
		return nil, fmt.Errorf("failed to create test phone: %w", err)
	}
	return phone, nil
}

// CreateCatalog seeds a small, deterministic catalog useful for
// ordering assertions
func (tf *TestFixtures) CreateCatalog() ([]*models.Phone, error) {
	specs := []struct {
		name  string
		price string
	}{
		{"Alpha One", "199.99"},
		{"Beta Two", "499.00"},
		{"Gamma Three", "99.50"},
	}

	phones := make([]*models.Phone, 0, len(specs))
	for _, s := range specs {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return nil, err
		}
		phones = append(phones, &models.Phone{
			UUID:        uuid.New(),
			Name:        s.name,
			Price:       price,
			Image:       fmt.Sprintf("https://example.com/images/%s.jpg", slug.Make(s.name)),
			ReleaseDate: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
			LTEExists:   utils.ToPtr(true),
			Slug:        slug.Make(s.name),
		})
	}

	if err := tf.DB.DB.CreateInBatches(phones, 100).Error; err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return phones, nil
}
