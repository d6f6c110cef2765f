package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/events"
	"github.com/spec-kit/hustle-village/internal/repository"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// unknownSellerName is the fallback when a public listing row cannot resolve
// its seller. A listing without a name still renders; this is not an error.
const unknownSellerName = "Unknown Seller"

// CatalogService coordinates the listing lifecycle: create, edit,
// pause/resume, and the read projections.
type CatalogService struct {
	services   repository.ServiceRepository
	users      repository.UserRepository
	images     *ImageService
	dispatcher events.Dispatcher
}

// CatalogDependencies bundles requirements for the catalog service.
type CatalogDependencies struct {
	ServiceRepo repository.ServiceRepository
	UserRepo    repository.UserRepository
	Images      *ImageService
	Dispatcher  events.Dispatcher
}

// ServiceInput describes a listing draft. ImageURLs nil means the field was
// omitted; on update that preserves the existing image list.
type ServiceInput struct {
	Title       string
	Description string
	Category    string
	Price       *float64
	PricingType string
	ImageURLs   []string
}

type validatedInput struct {
	title       string
	description string
	category    domain.ServiceCategory
	price       float64
	pricingType domain.PricingType
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		services:   deps.ServiceRepo,
		users:      deps.UserRepo,
		images:     deps.Images,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new listing for the caller.
func (s *CatalogService) Create(ctx context.Context, caller *domain.User, input ServiceInput) (*domain.Service, error) {
	validated, err := validateServiceInput(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, caller.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("seller", map[string]any{"seller_id": caller.ID})
		}
		return nil, err
	}

	imageURLs, err := s.images.Ingest(ctx, input.ImageURLs)
	if err != nil {
		return nil, err
	}

	svc := &domain.Service{
		SellerID:    caller.ID,
		Title:       validated.title,
		Description: validated.description,
		Category:    validated.category,
		Price:       validated.price,
		PricingType: validated.pricingType,
		ImageURLs:   imageURLs,
		IsActive:    true,
		IsDeleted:   false,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.publish(ctx, caller.ID, events.Event{
		Type: events.EventServiceCreated,
		Payload: events.ServiceCreatedPayload{
			ServiceID: svc.ID,
			Title:     svc.Title,
			Category:  svc.Category,
		},
	})
	return svc, nil
}

// Update replaces the mutable fields of a listing the caller owns.
func (s *CatalogService) Update(ctx context.Context, caller *domain.User, serviceID string, input ServiceInput) (*domain.Service, error) {
	validated, err := validateServiceInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", nil)
		}
		return nil, err
	}
	if existing.SellerID != caller.ID {
		return nil, apperrors.NewForbidden("you can only edit your own services")
	}

	existing.Title = validated.title
	existing.Description = validated.description
	existing.Category = validated.category
	existing.Price = validated.price
	existing.PricingType = validated.pricingType

	// Image list is replaced only when supplied; omission keeps what is there.
	if input.ImageURLs != nil {
		imageURLs, err := s.images.Ingest(ctx, input.ImageURLs)
		if err != nil {
			return nil, err
		}
		existing.ImageURLs = imageURLs
	}

	// Owner-scoped conditional update: the seller_id predicate rides along so
	// a concurrent change cannot slip between the read and the write.
	if err := s.services.UpdateOwned(ctx, existing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", nil)
		}
		return nil, err
	}

	s.publish(ctx, caller.ID, events.Event{
		Type: events.EventServiceUpdated,
		Payload: events.ServiceUpdatedPayload{
			ServiceID: existing.ID,
			Title:     existing.Title,
		},
	})
	return existing, nil
}

// Toggle flips a listing between active and paused. Each call flips the flag;
// repeated calls are safe but not no-ops, by design.
func (s *CatalogService) Toggle(ctx context.Context, caller *domain.User, serviceID string) (*domain.Service, error) {
	existing, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", nil)
		}
		return nil, err
	}
	if existing.SellerID != caller.ID {
		return nil, apperrors.NewForbidden("you can only toggle your own services")
	}
	if existing.IsDeleted {
		return nil, apperrors.NewConflict("cannot toggle a deleted service", nil)
	}

	updated, err := s.services.ToggleActiveOwned(ctx, serviceID, caller.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row was deleted between the read and the guarded update.
			return nil, apperrors.NewConflict("service state changed; retry", nil)
		}
		return nil, err
	}

	s.publish(ctx, caller.ID, events.Event{
		Type: events.EventServiceToggled,
		Payload: events.ServiceToggledPayload{
			ServiceID: updated.ID,
			IsActive:  updated.IsActive,
		},
	})
	return updated, nil
}

// ListMine returns the caller's listings, newest first, including paused and
// deleted rows so sellers can see their full history.
func (s *CatalogService) ListMine(ctx context.Context, caller *domain.User) ([]domain.Service, error) {
	return s.services.ListBySeller(ctx, caller.ID)
}

// ListPublic returns active, non-deleted listings for buyers, newest first,
// with the seller name denormalized onto each row.
func (s *CatalogService) ListPublic(ctx context.Context) ([]domain.PublicService, error) {
	items, err := s.services.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.TrimSpace(items[i].SellerName) == "" {
			items[i].SellerName = unknownSellerName
		}
	}
	return items, nil
}

func validateServiceInput(input ServiceInput) (*validatedInput, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || input.Category == "" || input.Price == nil || input.PricingType == "" {
		return nil, apperrors.NewValidationError(
			"title, description, category, price, and pricing_type are required", nil)
	}

	category, ok := domain.ParseCategory(input.Category)
	if !ok {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{
			"allowed": domain.Categories,
		})
	}
	pricingType, ok := domain.ParsePricingType(input.PricingType)
	if !ok {
		return nil, apperrors.NewValidationError("invalid pricing_type", map[string]any{
			"allowed": domain.PricingTypes,
		})
	}
	if *input.Price < 0 {
		return nil, apperrors.NewValidationError("price must be zero or positive", nil)
	}

	return &validatedInput{
		title:       title,
		description: description,
		category:    category,
		price:       *input.Price,
		pricingType: pricingType,
	}, nil
}

func (s *CatalogService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.ActorID = actorID
	_ = s.dispatcher.Publish(ctx, event)
}
