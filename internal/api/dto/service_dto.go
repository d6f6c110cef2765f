package dto

import (
	"time"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// ServiceRequest is the create/update payload for a listing. ImageURLs may
// mix hosted URLs and inline base64 payloads; leaving it out of an update
// keeps the existing images.
type ServiceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	PricingType string   `json:"pricing_type"`
	ImageURLs   []string `json:"image_urls"`
}

// ServiceResponse is the seller-facing view of a listing.
type ServiceResponse struct {
	ID          string                 `json:"id"`
	SellerID    string                 `json:"seller_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    domain.ServiceCategory `json:"category"`
	Price       float64                `json:"price"`
	PricingType domain.PricingType     `json:"pricing_type"`
	ImageURLs   []string               `json:"image_urls"`
	IsActive    bool                   `json:"is_active"`
	IsDeleted   bool                   `json:"is_deleted"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   *time.Time             `json:"deleted_at,omitempty"`
}

// PublicServiceResponse is the buyer-facing row with the seller denormalized.
type PublicServiceResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    domain.ServiceCategory `json:"category"`
	Price       float64                `json:"price"`
	PricingType domain.PricingType     `json:"pricing_type"`
	ImageURLs   []string               `json:"image_urls"`
	SellerID    string                 `json:"seller_id"`
	SellerName  string                 `json:"seller_name"`
	SellerEmail string                 `json:"seller_email,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// DeleteRequestInput is the optional body for POST /services/:id/request-delete.
type DeleteRequestInput struct {
	Reason *string `json:"reason"`
}

// DeleteRequestResponse is the seller view of their request.
type DeleteRequestResponse struct {
	ID          string                     `json:"id"`
	ServiceID   string                     `json:"service_id"`
	Status      domain.DeleteRequestStatus `json:"status"`
	Reason      *string                    `json:"reason,omitempty"`
	RequestedAt time.Time                  `json:"requested_at"`
}

// ServiceSummaryResponse is the minimal listing view on a new delete request.
type ServiceSummaryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
