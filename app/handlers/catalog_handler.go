// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/telshop/phone-catalog/app/dto"
	businessflow "github.com/telshop/phone-catalog/business_flow"
	"github.com/telshop/phone-catalog/utils"
)

// CatalogHandlerInterface defines the contract for catalog handlers.
type CatalogHandlerInterface interface {
	List(c fiber.Ctx) error
	GetBySlug(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

// CatalogHandler handles catalog read requests.
type CatalogHandler struct {
	flow businessflow.CatalogFlow
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(flow businessflow.CatalogFlow) CatalogHandlerInterface {
	return &CatalogHandler{flow: flow}
}

func (h *CatalogHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CatalogHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List returns all phones in the requested order
// @Summary List phones
// @Description List catalog phones; ordering accepts name, name_desc, price_asc, price_desc and falls back to name
// @Tags Catalog
// @Produce json
// @Param ordering query string false "Ordering key"
// @Success 200 {object} dto.APIResponse{data=dto.ListPhonesResponse}
// @Router /api/v1/phones [get]
func (h *CatalogHandler) List(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/v1/phones")

	res, err := h.flow.ListPhones(ctx, c.Query("ordering", "name"))
	if err != nil {
		log.Println("List phones failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list phones", "LIST_PHONES_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Phones retrieved", res)
}

// GetBySlug returns one phone by its slug
// @Summary Get phone by slug
// @Tags Catalog
// @Produce json
// @Param slug path string true "Phone slug"
// @Success 200 {object} dto.APIResponse{data=dto.PhoneItem}
// @Failure 404 {object} dto.APIResponse
// @Router /api/v1/phones/{slug} [get]
func (h *CatalogHandler) GetBySlug(c fiber.Ctx) error {
	ctx := h.createRequestContext(c, "/api/v1/phones/:slug")

	slug := c.Params("slug")
	if slug == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Slug is required", "MISSING_SLUG", nil)
	}

	res, err := h.flow.GetPhoneBySlug(ctx, slug)
	if err != nil {
		if businessflow.IsPhoneNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Phone not found", "PHONE_NOT_FOUND", nil)
		}
		log.Println("Get phone by slug failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch phone", "GET_PHONE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Phone retrieved", res)
}

// Export streams the catalog as an xlsx workbook
// @Summary Export phones
// @Tags Catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param ordering query string false "Ordering key"
// @Success 200 {file} binary
// @Router /api/v1/phones/export [get]
func (h *CatalogHandler) Export(c fiber.Ctx) error {
	ctx := h.createRequestContextWithTimeout(c, "/api/v1/phones/export", 60*time.Second)

	filename, content, err := h.flow.ExportPhones(ctx, c.Query("ordering", "name"))
	if err != nil {
		log.Println("Export phones failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export phones", "EXPORT_PHONES_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

func (h *CatalogHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CatalogHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
