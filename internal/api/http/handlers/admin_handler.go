package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hustle-village/internal/api/dto"
	"github.com/spec-kit/hustle-village/internal/auth"
	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/service"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// AdminHandler exposes the moderated-deletion endpoints.
type AdminHandler struct {
	deletion *service.DeletionService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deletion *service.DeletionService) *AdminHandler {
	return &AdminHandler{deletion: deletion}
}

// ListDeleteRequests GET /admin/delete-requests?status=pending|approved|denied.
func (h *AdminHandler) ListDeleteRequests(c *fiber.Ctx) error {
	var status *domain.DeleteRequestStatus
	if raw := c.Query("status"); raw != "" {
		candidate := domain.DeleteRequestStatus(raw)
		switch candidate {
		case domain.DeleteRequestPending, domain.DeleteRequestApproved, domain.DeleteRequestDenied:
			status = &candidate
		default:
			return apperrors.NewValidationError("status must be pending, approved, or denied", nil)
		}
	}

	items, err := h.deletion.ListRequests(c.UserContext(), status)
	if err != nil {
		return err
	}
	resp := make([]dto.DeleteRequestDetailResponse, 0, len(items))
	for i := range items {
		resp = append(resp, deleteRequestDetail(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ApproveDeleteRequest POST /admin/delete-requests/:id/approve.
func (h *AdminHandler) ApproveDeleteRequest(c *fiber.Ctx) error {
	return h.resolve(c, domain.DeleteRequestApproved)
}

// DenyDeleteRequest POST /admin/delete-requests/:id/deny.
func (h *AdminHandler) DenyDeleteRequest(c *fiber.Ctx) error {
	return h.resolve(c, domain.DeleteRequestDenied)
}

func (h *AdminHandler) resolve(c *fiber.Ctx, decision domain.DeleteRequestStatus) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ResolveDeleteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	resolved, err := h.deletion.Resolve(c.UserContext(), principal.User, c.Params("id"), decision, req.AdminComment)
	if err != nil {
		return err
	}

	action := "denied"
	if resolved.Status == domain.DeleteRequestApproved {
		action = "deleted"
	}
	return c.JSON(fiber.Map{
		"action": action,
		"data": fiber.Map{
			"id":            resolved.ID,
			"service_id":    resolved.ServiceID,
			"status":        resolved.Status,
			"admin_id":      resolved.AdminID,
			"admin_comment": resolved.AdminComment,
			"processed_at":  resolved.ProcessedAt,
		},
	})
}

func deleteRequestDetail(item *domain.DeleteRequestDetail) dto.DeleteRequestDetailResponse {
	return dto.DeleteRequestDetailResponse{
		ID:           item.ID,
		ServiceID:    item.ServiceID,
		SellerID:     item.SellerID,
		Reason:       item.Reason,
		Status:       item.Status,
		AdminID:      item.AdminID,
		AdminComment: item.AdminComment,
		RequestedAt:  item.RequestedAt,
		ProcessedAt:  item.ProcessedAt,
		Service: dto.ServiceSummaryResponse{
			ID:    item.ServiceID,
			Title: item.ServiceTitle,
		},
		SellerName:  item.SellerName,
		SellerEmail: item.SellerEmail,
	}
}
