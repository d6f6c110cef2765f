package domain

import (
	"strings"
	"time"
)

// ServiceCategory enumerates the closed set of listing categories.
type ServiceCategory string

const (
	CategoryFoodBaking     ServiceCategory = "food_baking"
	CategoryDesignCreative ServiceCategory = "design_creative"
	CategoryTutoring       ServiceCategory = "tutoring"
	CategoryBeautyHair     ServiceCategory = "beauty_hair"
	CategoryEventsMusic    ServiceCategory = "events_music"
	CategoryTechDev        ServiceCategory = "tech_dev"
)

// Categories lists every valid category value.
var Categories = []ServiceCategory{
	CategoryFoodBaking,
	CategoryDesignCreative,
	CategoryTutoring,
	CategoryBeautyHair,
	CategoryEventsMusic,
	CategoryTechDev,
}

// PricingType enumerates how a listing is priced.
type PricingType string

const (
	PricingFixed      PricingType = "fixed"
	PricingHourly     PricingType = "hourly"
	PricingNegotiable PricingType = "negotiable"
)

// PricingTypes lists every valid pricing type value.
var PricingTypes = []PricingType{PricingFixed, PricingHourly, PricingNegotiable}

// ParseCategory normalizes raw input to a category, case-insensitively.
func ParseCategory(raw string) (ServiceCategory, bool) {
	candidate := ServiceCategory(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range Categories {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// ParsePricingType normalizes raw input to a pricing type, case-insensitively.
func ParsePricingType(raw string) (PricingType, bool) {
	candidate := PricingType(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range PricingTypes {
		if p == candidate {
			return p, true
		}
	}
	return "", false
}

// Service is the aggregate for a seller's listing. SellerID is immutable
// after creation. Invariant: IsDeleted implies !IsActive.
type Service struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Category    ServiceCategory
	Price       float64
	PricingType PricingType
	ImageURLs   []string
	IsActive    bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// PublicService is a listing row joined with its seller for buyers.
type PublicService struct {
	Service
	SellerName  string
	SellerEmail string
}
