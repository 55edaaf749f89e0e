// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/telshop/phone-catalog/app/dto"
	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/utils"
)

// ToPhoneItem converts a phone model to its API representation.
// Price is rendered with exactly two decimal places, release_date as a
// bare calendar date.
func ToPhoneItem(phone *models.Phone) dto.PhoneItem {
	return dto.PhoneItem{
		ID:          phone.ID,
		UUID:        phone.UUID.String(),
		Name:        phone.Name,
		Price:       phone.Price.StringFixed(2),
		Image:       phone.Image,
		ReleaseDate: utils.FormatDate(phone.ReleaseDate),
		LTEExists:   utils.IsTrue(phone.LTEExists),
		Slug:        phone.Slug,
		CreatedAt:   phone.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   phone.UpdatedAt.Format(time.RFC3339),
	}
}
