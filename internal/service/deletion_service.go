package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/events"
	"github.com/spec-kit/hustle-village/internal/repository"
	apperrors "github.com/spec-kit/hustle-village/pkg/util"
)

// DeletionService runs the moderated-deletion workflow:
// pending -> approved | denied, both terminal.
type DeletionService struct {
	requests   repository.DeleteRequestRepository
	services   repository.ServiceRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DeletionDependencies bundles requirements for the deletion service.
type DeletionDependencies struct {
	RequestRepo repository.DeleteRequestRepository
	ServiceRepo repository.ServiceRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// ServiceSummary is the minimal listing view attached to a new request.
type ServiceSummary struct {
	ID    string
	Title string
}

// NewDeletionService constructs the service.
func NewDeletionService(deps DeletionDependencies) *DeletionService {
	return &DeletionService{
		requests:   deps.RequestRepo,
		services:   deps.ServiceRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Request opens a deletion request for a listing the caller owns.
func (s *DeletionService) Request(ctx context.Context, caller *domain.User, serviceID string, reason *string) (*domain.DeleteRequest, *ServiceSummary, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("service", nil)
		}
		return nil, nil, err
	}
	if svc.SellerID != caller.ID {
		return nil, nil, apperrors.NewForbidden("you can only request deletion of your own services")
	}
	if svc.IsDeleted {
		return nil, nil, apperrors.NewConflict("service is already deleted", nil)
	}

	req := &domain.DeleteRequest{
		ServiceID: serviceID,
		SellerID:  caller.ID,
		Reason:    reason,
		Status:    domain.DeleteRequestPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrPendingRequestExists) {
			return nil, nil, apperrors.NewConflict("a pending delete request already exists for this service", nil)
		}
		return nil, nil, err
	}

	s.publish(ctx, caller.ID, events.Event{
		Type: events.EventDeletionRequested,
		Payload: events.DeletionRequestedPayload{
			RequestID: req.ID,
			ServiceID: serviceID,
			Reason:    reason,
		},
	})
	return req, &ServiceSummary{ID: svc.ID, Title: svc.Title}, nil
}

// ListRequests returns requests joined with service and seller summaries,
// newest first, optionally filtered by status.
func (s *DeletionService) ListRequests(ctx context.Context, status *domain.DeleteRequestStatus) ([]domain.DeleteRequestDetail, error) {
	return s.requests.ListWithDetails(ctx, status)
}

// Resolve settles a pending request. Approval soft-deletes the target service
// in the same transaction as the request update; a half-applied approval is
// never committed, and a service row that cannot be updated surfaces as an
// inconsistency rather than a silent success.
func (s *DeletionService) Resolve(ctx context.Context, admin *domain.User, requestID string, decision domain.DeleteRequestStatus, comment *string) (*domain.DeleteRequest, error) {
	if decision != domain.DeleteRequestApproved && decision != domain.DeleteRequestDenied {
		return nil, apperrors.NewValidationError(`decision must be "approved" or "denied"`, nil)
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("delete request", nil)
		}
		return nil, err
	}
	if req.Resolved() {
		return nil, s.alreadyResolved(req.Status)
	}

	req.Status = decision
	req.AdminID = &admin.ID
	req.AdminComment = comment

	if decision == domain.DeleteRequestApproved {
		err = s.requests.ResolveApprove(ctx, req)
	} else {
		err = s.requests.ResolveDeny(ctx, req)
	}
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Another admin resolved it between our read and the guarded
			// update. Re-read so the message names the winning status.
			if fresh, freshErr := s.requests.GetByID(ctx, requestID); freshErr == nil {
				return nil, s.alreadyResolved(fresh.Status)
			}
			return nil, apperrors.NewConflict("delete request is already resolved", nil)
		case errors.Is(err, repository.ErrServiceRowMissing):
			s.logger.Error("approval could not soft-delete its service",
				zap.String("request_id", requestID),
				zap.String("service_id", req.ServiceID))
			return nil, apperrors.NewInconsistentState(
				"delete request approval could not update its service", err)
		default:
			return nil, err
		}
	}

	s.publish(ctx, admin.ID, events.Event{
		Type: events.EventDeletionResolved,
		Payload: events.DeletionResolvedPayload{
			RequestID: req.ID,
			ServiceID: req.ServiceID,
			Status:    req.Status,
			AdminID:   admin.ID,
		},
	})
	return req, nil
}

func (s *DeletionService) alreadyResolved(status domain.DeleteRequestStatus) error {
	return apperrors.NewConflict(
		fmt.Sprintf("delete request is already %s", status),
		map[string]any{"status": status})
}

func (s *DeletionService) publish(ctx context.Context, actorID string, event events.Event) {
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
