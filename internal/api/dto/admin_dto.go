package dto

import (
	"time"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// ResolveDeleteRequest is the optional body for approve/deny.
type ResolveDeleteRequest struct {
	AdminComment *string `json:"admin_comment"`
}

// DeleteRequestDetailResponse is the admin view of a request with its service
// and seller summarized.
type DeleteRequestDetailResponse struct {
	ID           string                     `json:"id"`
	ServiceID    string                     `json:"service_id"`
	SellerID     string                     `json:"seller_id"`
	Reason       *string                    `json:"reason,omitempty"`
	Status       domain.DeleteRequestStatus `json:"status"`
	AdminID      *string                    `json:"admin_id,omitempty"`
	AdminComment *string                    `json:"admin_comment,omitempty"`
	RequestedAt  time.Time                  `json:"requested_at"`
	ProcessedAt  *time.Time                 `json:"processed_at,omitempty"`
	Service      ServiceSummaryResponse     `json:"service"`
	SellerName   string                     `json:"seller_name"`
	SellerEmail  string                     `json:"seller_email"`
}
