package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/utils"
	"gorm.io/gorm"
)

// PhoneRepositoryImpl implements PhoneRepository interface
type PhoneRepositoryImpl struct {
	*BaseRepository[models.Phone, models.PhoneFilter]
}

// NewPhoneRepository creates a new phone repository
func NewPhoneRepository(db *gorm.DB) PhoneRepository {
	return &PhoneRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Phone, models.PhoneFilter](db),
	}
}

// ByName retrieves a phone by exact name match.
// Name carries no unique constraint; on duplicates the oldest row wins
// so repeated imports stay deterministic.
func (r *PhoneRepositoryImpl) ByName(ctx context.Context, name string) (*models.Phone, error) {
	filter := models.PhoneFilter{Name: &name}
	rows, err := r.ByFilter(ctx, filter, "id ASC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// BySlug retrieves a phone by its slug
func (r *PhoneRepositoryImpl) BySlug(ctx context.Context, s string) (*models.Phone, error) {
	filter := models.PhoneFilter{Slug: &s}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// List retrieves all phones ordered by the given clause.
// An empty clause falls back to the catalog default, ascending name.
func (r *PhoneRepositoryImpl) List(ctx context.Context, orderBy string) ([]*models.Phone, error) {
	db := r.getDB(ctx)
	if orderBy == "" {
		orderBy = "name ASC"
	}
	var rows []*models.Phone
	if err := db.Model(&models.Phone{}).Order(orderBy).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert looks up a phone by exact name and either overwrites its
// fields (slug untouched) or inserts a new row with a freshly
// generated slug. The boolean result reports whether a row was created.
func (r *PhoneRepositoryImpl) Upsert(ctx context.Context, name string, fields PhoneFields) (*models.Phone, bool, error) {
	existing, err := r.ByName(ctx, name)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Price = fields.Price
		existing.Image = fields.Image
		existing.ReleaseDate = fields.ReleaseDate
		existing.LTEExists = utils.ToPtr(fields.LTEExists)
		existing.UpdatedAt = utils.UTCNow()
		if err := r.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	uniqueSlug, err := r.nextFreeSlug(ctx, name)
	if err != nil {
		return nil, false, err
	}

	phone := &models.Phone{
		UUID:        uuid.New(),
		Name:        name,
		Price:       fields.Price,
		Image:       fields.Image,
		ReleaseDate: fields.ReleaseDate,
		LTEExists:   utils.ToPtr(fields.LTEExists),
		Slug:        uniqueSlug,
	}
	if err := r.Save(ctx, phone); err != nil {
		return nil, false, err
	}
	return phone, true, nil
}

// nextFreeSlug slugifies the name and resolves collisions with the
// smallest free numeric suffix (galaxy-x, galaxy-x-2, galaxy-x-3, ...).
func (r *PhoneRepositoryImpl) nextFreeSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		taken, err := r.BySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// Update persists all fields of an existing phone
func (r *PhoneRepositoryImpl) Update(ctx context.Context, phone *models.Phone) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Save(phone).Error
	if err != nil {
		return fmt.Errorf("failed to update phone %d: %w", phone.ID, err)
	}
	return nil
}

// DeleteAll removes every phone unconditionally
func (r *PhoneRepositoryImpl) DeleteAll(ctx context.Context) error {
	db := r.getDB(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Phone{}).Error; err != nil {
		return fmt.Errorf("failed to delete phones: %w", err)
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *PhoneRepositoryImpl) applyFilter(query *gorm.DB, filter models.PhoneFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Slug != nil {
		query = query.Where("slug = ?", *filter.Slug)
	}
	if filter.LTEExists != nil {
		query = query.Where("lte_exists = ?", *filter.LTEExists)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves phones based on filter criteria
func (r *PhoneRepositoryImpl) ByFilter(ctx context.Context, filter models.PhoneFilter, orderBy string, limit, offset int) ([]*models.Phone, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Phone{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Phone
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of phones matching the filter
func (r *PhoneRepositoryImpl) Count(ctx context.Context, filter models.PhoneFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Phone{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any phone matching the filter exists
func (r *PhoneRepositoryImpl) Exists(ctx context.Context, filter models.PhoneFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
