package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hustle-village/internal/api/dto"
	"github.com/spec-kit/hustle-village/internal/auth"
	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/service"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// ServicesHandler manages seller listing endpoints and the public catalog.
type ServicesHandler struct {
	catalog  *service.CatalogService
	deletion *service.DeletionService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalog *service.CatalogService, deletion *service.DeletionService) *ServicesHandler {
	return &ServicesHandler{catalog: catalog, deletion: deletion}
}

// ListPublic GET /services.
func (h *ServicesHandler) ListPublic(c *fiber.Ctx) error {
	items, err := h.catalog.ListPublic(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.PublicServiceResponse, 0, len(items))
	for i := range items {
		resp = append(resp, publicServiceResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListMine GET /services/mine.
func (h *ServicesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.catalog.ListMine(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	resp := make([]dto.ServiceResponse, 0, len(items))
	for i := range items {
		resp = append(resp, serviceResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Create POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	svc, err := h.catalog.Create(c.UserContext(), principal.User, serviceInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": serviceResponse(svc)})
}

// Update PUT/PATCH /services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	svc, err := h.catalog.Update(c.UserContext(), principal.User, c.Params("id"), serviceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(svc)})
}

// Toggle PATCH /services/:id/toggle.
func (h *ServicesHandler) Toggle(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	svc, err := h.catalog.Toggle(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}

	message := "service resumed"
	if !svc.IsActive {
		message = "service paused"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"data":    serviceResponse(svc),
	})
}

// RequestDelete POST /services/:id/request-delete.
func (h *ServicesHandler) RequestDelete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DeleteRequestInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	request, summary, err := h.deletion.Request(c.UserContext(), principal.User, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"delete_request": dto.DeleteRequestResponse{
				ID:          request.ID,
				ServiceID:   request.ServiceID,
				Status:      request.Status,
				Reason:      request.Reason,
				RequestedAt: request.RequestedAt,
			},
			"service": dto.ServiceSummaryResponse{
				ID:    summary.ID,
				Title: summary.Title,
			},
		},
	})
}

func serviceInput(req dto.ServiceRequest) service.ServiceInput {
	return service.ServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PricingType: req.PricingType,
		ImageURLs:   req.ImageURLs,
	}
}

func serviceResponse(svc *domain.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          svc.ID,
		SellerID:    svc.SellerID,
		Title:       svc.Title,
		Description: svc.Description,
		Category:    svc.Category,
		Price:       svc.Price,
		PricingType: svc.PricingType,
		ImageURLs:   svc.ImageURLs,
		IsActive:    svc.IsActive,
		IsDeleted:   svc.IsDeleted,
		CreatedAt:   svc.CreatedAt,
		UpdatedAt:   svc.UpdatedAt,
		DeletedAt:   svc.DeletedAt,
	}
}

func publicServiceResponse(item *domain.PublicService) dto.PublicServiceResponse {
	imageURLs := item.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return dto.PublicServiceResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		PricingType: item.PricingType,
		ImageURLs:   imageURLs,
		SellerID:    item.SellerID,
		SellerName:  item.SellerName,
		SellerEmail: item.SellerEmail,
		CreatedAt:   item.CreatedAt,
	}
}
