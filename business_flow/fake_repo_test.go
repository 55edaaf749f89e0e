package businessflow

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/repository"
	"github.com/telshop/phone-catalog/utils"
)

// fakePhoneRepo is an in-memory PhoneRepository for flow tests. Upsert
// follows the same contract as the real repository: match by exact
// name, never touch an existing slug, resolve slug collisions with the
// smallest free numeric suffix.
type fakePhoneRepo struct {
	phones     []*models.Phone
	nextID     uint
	failOnName string // Upsert returns an error for this name
}

func newFakePhoneRepo() *fakePhoneRepo {
	return &fakePhoneRepo{nextID: 1}
}

func (f *fakePhoneRepo) ByID(ctx context.Context, id uint) (*models.Phone, error) {
	for _, p := range f.phones {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePhoneRepo) ByFilter(ctx context.Context, filter models.PhoneFilter, orderBy string, limit, offset int) ([]*models.Phone, error) {
	var out []*models.Phone
	for _, p := range f.phones {
		if filter.Name != nil && p.Name != *filter.Name {
			continue
		}
		if filter.Slug != nil && p.Slug != *filter.Slug {
			continue
		}
		out = append(out, p)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePhoneRepo) Save(ctx context.Context, phone *models.Phone) error {
	phone.ID = f.nextID
	f.nextID++
	f.phones = append(f.phones, phone)
	return nil
}

func (f *fakePhoneRepo) SaveBatch(ctx context.Context, phones []*models.Phone) error {
	for _, p := range phones {
		if err := f.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakePhoneRepo) Count(ctx context.Context, filter models.PhoneFilter) (int64, error) {
	rows, err := f.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (f *fakePhoneRepo) Exists(ctx context.Context, filter models.PhoneFilter) (bool, error) {
	c, err := f.Count(ctx, filter)
	return c > 0, err
}

func (f *fakePhoneRepo) ByName(ctx context.Context, name string) (*models.Phone, error) {
	var match *models.Phone
	for _, p := range f.phones {
		if p.Name == name && (match == nil || p.ID < match.ID) {
			match = p
		}
	}
	return match, nil
}

func (f *fakePhoneRepo) BySlug(ctx context.Context, s string) (*models.Phone, error) {
	for _, p := range f.phones {
		if p.Slug == s {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePhoneRepo) List(ctx context.Context, orderBy string) ([]*models.Phone, error) {
	out := make([]*models.Phone, len(f.phones))
	copy(out, f.phones)

	sort.SliceStable(out, func(i, j int) bool {
		switch orderBy {
		case "name DESC":
			return out[i].Name > out[j].Name
		case "price ASC":
			return out[i].Price.LessThan(out[j].Price)
		case "price DESC":
			return out[j].Price.LessThan(out[i].Price)
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out, nil
}

func (f *fakePhoneRepo) Upsert(ctx context.Context, name string, fields repository.PhoneFields) (*models.Phone, bool, error) {
	if f.failOnName != "" && name == f.failOnName {
		return nil, false, errors.New("simulated persistence failure")
	}

	existing, _ := f.ByName(ctx, name)
	if existing != nil {
		existing.Price = fields.Price
		existing.Image = fields.Image
		existing.ReleaseDate = fields.ReleaseDate
		existing.LTEExists = utils.ToPtr(fields.LTEExists)
		return existing, false, nil
	}

	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		taken, _ := f.BySlug(ctx, candidate)
		if taken == nil {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	phone := &models.Phone{
		UUID:        uuid.New(),
		Name:        name,
		Price:       fields.Price,
		Image:       fields.Image,
		ReleaseDate: fields.ReleaseDate,
		LTEExists:   utils.ToPtr(fields.LTEExists),
		Slug:        candidate,
	}
	if err := f.Save(ctx, phone); err != nil {
		return nil, false, err
	}
	return phone, true, nil
}

func (f *fakePhoneRepo) Update(ctx context.Context, phone *models.Phone) error {
	return nil
}

func (f *fakePhoneRepo) DeleteAll(ctx context.Context) error {
	f.phones = nil
	return nil
}
