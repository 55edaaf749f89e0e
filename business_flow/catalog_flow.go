package businessflow

import (
	"context"
	"fmt"
	"strconv"

	"github.com/telshop/phone-catalog/app/dto"
	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/repository"
	"github.com/xuri/excelize/v2"
)

// CatalogFlow answers the read-only catalog queries: list all phones
// in a requested order, fetch one phone by slug, and export the
// catalog as a workbook.
type CatalogFlow interface {
	ListPhones(ctx context.Context, orderingKey string) (*dto.ListPhonesResponse, error)
	GetPhoneBySlug(ctx context.Context, slug string) (*dto.PhoneItem, error)
	ExportPhones(ctx context.Context, orderingKey string) (string, []byte, error)
}

// CatalogFlowImpl implements CatalogFlow
type CatalogFlowImpl struct {
	phoneRepo repository.PhoneRepository
}

// NewCatalogFlow creates a new catalog flow
func NewCatalogFlow(phoneRepo repository.PhoneRepository) CatalogFlow {
	return &CatalogFlowImpl{phoneRepo: phoneRepo}
}

// ListPhones returns all phones ordered by the requested key.
// Unrecognized keys silently fall back to ascending name; the response
// echoes the key that was actually applied.
func (f *CatalogFlowImpl) ListPhones(ctx context.Context, orderingKey string) (*dto.ListPhonesResponse, error) {
	clause, applied := models.OrderingClause(orderingKey)

	rows, err := f.phoneRepo.List(ctx, clause)
	if err != nil {
		return nil, NewBusinessError("LIST_PHONES_FAILED", "failed to list phones", err)
	}

	items := make([]dto.PhoneItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToPhoneItem(row))
	}

	return &dto.ListPhonesResponse{
		Ordering: applied,
		Phones:   items,
	}, nil
}

// GetPhoneBySlug returns the phone with the given slug or
// ErrPhoneNotFound.
func (f *CatalogFlowImpl) GetPhoneBySlug(ctx context.Context, slug string) (*dto.PhoneItem, error) {
	phone, err := f.phoneRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("GET_PHONE_FAILED", "failed to fetch phone", err)
	}
	if phone == nil {
		return nil, ErrPhoneNotFound
	}

	item := ToPhoneItem(phone)
	return &item, nil
}

// ExportPhones renders the ordered catalog into an xlsx workbook and
// returns the suggested filename with the file contents.
func (f *CatalogFlowImpl) ExportPhones(ctx context.Context, orderingKey string) (string, []byte, error) {
	clause, _ := models.OrderingClause(orderingKey)

	rows, err := f.phoneRepo.List(ctx, clause)
	if err != nil {
		return "", nil, NewBusinessError("EXPORT_PHONES_FAILED", "failed to fetch phones for export", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Phones"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"id", "uuid", "name", "price", "image", "release_date", "lte_exists", "slug", "created_at", "updated_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, row := range rows {
		item := ToPhoneItem(row)
		record := []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.UUID,
			item.Name,
			item.Price,
			item.Image,
			item.ReleaseDate,
			strconv.FormatBool(item.LTEExists),
			item.Slug,
			item.CreatedAt,
			item.UpdatedAt,
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "failed to write Excel file", err)
	}
	return fmt.Sprintf("phone_catalog_%s.xlsx", clauseFileSuffix(orderingKey)), buf.Bytes(), nil
}

func clauseFileSuffix(orderingKey string) string {
	_, applied := models.OrderingClause(orderingKey)
	return applied
}
