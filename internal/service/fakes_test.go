package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hustle-village/internal/domain"
	"github.com/spec-kit/hustle-village/internal/repository"
)

// In-memory doubles for the repository interfaces. They mimic the database
// behaviors the services lean on: pgx.ErrNoRows for absent rows and zero-row
// guarded updates, and the one-pending-per-service unique index.

type fakeUserRepo struct {
	byID map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpsertByEmail(_ context.Context, user *domain.User) error {
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			if user.FullName != "" {
				existing.FullName = user.FullName
			}
			if user.PhoneNumber != "" {
				existing.PhoneNumber = user.PhoneNumber
			}
			existing.UpdatedAt = time.Now()
			*user = *existing
			return nil
		}
	}
	user.ID = uuid.NewString()
	if user.Role == "" {
		user.Role = domain.UserRoleSeller
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.byID[user.ID] = &stored
	return nil
}

type fakeServiceRepo struct {
	byID    map[string]*domain.Service
	users   *fakeUserRepo
	counter int
}

func newFakeServiceRepo(users *fakeUserRepo) *fakeServiceRepo {
	return &fakeServiceRepo{byID: make(map[string]*domain.Service), users: users}
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	r.counter++
	svc.ID = uuid.NewString()
	svc.CreatedAt = time.Now().Add(time.Duration(r.counter) * time.Millisecond)
	svc.UpdatedAt = svc.CreatedAt
	stored := *svc
	r.byID[svc.ID] = &stored
	return nil
}

func (r *fakeServiceRepo) UpdateOwned(_ context.Context, svc *domain.Service) error {
	existing, ok := r.byID[svc.ID]
	if !ok || existing.SellerID != svc.SellerID {
		return pgx.ErrNoRows
	}
	existing.Title = svc.Title
	existing.Description = svc.Description
	existing.Category = svc.Category
	existing.Price = svc.Price
	existing.PricingType = svc.PricingType
	existing.ImageURLs = svc.ImageURLs
	existing.UpdatedAt = time.Now()
	*svc = *existing
	return nil
}

func (r *fakeServiceRepo) ToggleActiveOwned(_ context.Context, serviceID, sellerID string) (*domain.Service, error) {
	existing, ok := r.byID[serviceID]
	if !ok || existing.SellerID != sellerID || existing.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	existing.IsActive = !existing.IsActive
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	if svc, ok := r.byID[id]; ok {
		copied := *svc
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeServiceRepo) ListBySeller(_ context.Context, sellerID string) ([]domain.Service, error) {
	var result []domain.Service
	for _, svc := range r.byID {
		if svc.SellerID == sellerID {
			result = append(result, *svc)
		}
	}
	sortServicesNewestFirst(result)
	return result, nil
}

func (r *fakeServiceRepo) ListPublic(_ context.Context) ([]domain.PublicService, error) {
	var result []domain.PublicService
	for _, svc := range r.byID {
		if !svc.IsActive || svc.IsDeleted {
			continue
		}
		item := domain.PublicService{Service: *svc}
		if seller, ok := r.users.byID[svc.SellerID]; ok {
			item.SellerName = seller.FullName
			item.SellerEmail = seller.Email
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func sortServicesNewestFirst(items []domain.Service) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

type fakeRequestRepo struct {
	byID     map[string]*domain.DeleteRequest
	services *fakeServiceRepo
	counter  int
}

func newFakeRequestRepo(services *fakeServiceRepo) *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*domain.DeleteRequest), services: services}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *domain.DeleteRequest) error {
	for _, existing := range r.byID {
		if existing.ServiceID == req.ServiceID && existing.Status == domain.DeleteRequestPending {
			return repository.ErrPendingRequestExists
		}
	}
	r.counter++
	req.ID = uuid.NewString()
	req.RequestedAt = time.Now().Add(time.Duration(r.counter) * time.Millisecond)
	stored := *req
	r.byID[req.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (*domain.DeleteRequest, error) {
	if req, ok := r.byID[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeRequestRepo) ListWithDetails(_ context.Context, status *domain.DeleteRequestStatus) ([]domain.DeleteRequestDetail, error) {
	var result []domain.DeleteRequestDetail
	for _, req := range r.byID {
		if status != nil && req.Status != *status {
			continue
		}
		detail := domain.DeleteRequestDetail{DeleteRequest: *req}
		if svc, ok := r.services.byID[req.ServiceID]; ok {
			detail.ServiceTitle = svc.Title
			detail.ServiceDescription = svc.Description
		}
		if seller, ok := r.services.users.byID[req.SellerID]; ok {
			detail.SellerName = seller.FullName
			detail.SellerEmail = seller.Email
		}
		result = append(result, detail)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedAt.After(result[j].RequestedAt)
	})
	return result, nil
}

func (r *fakeRequestRepo) ResolveApprove(_ context.Context, req *domain.DeleteRequest) error {
	stored, ok := r.byID[req.ID]
	if !ok || stored.Status != domain.DeleteRequestPending {
		return pgx.ErrNoRows
	}
	svc, ok := r.services.byID[req.ServiceID]
	if !ok {
		// Transaction rolls back: the request row stays pending.
		return repository.ErrServiceRowMissing
	}

	now := time.Now()
	req.ProcessedAt = &now
	*stored = *req

	svc.IsDeleted = true
	svc.IsActive = false
	svc.DeletedAt = &now
	svc.UpdatedAt = now
	return nil
}

func (r *fakeRequestRepo) ResolveDeny(_ context.Context, req *domain.DeleteRequest) error {
	stored, ok := r.byID[req.ID]
	if !ok || stored.Status != domain.DeleteRequestPending {
		return pgx.ErrNoRows
	}
	now := time.Now()
	req.ProcessedAt = &now
	*stored = *req
	return nil
}

// fakeBlobStore records uploads and can be told to fail.
type fakeBlobStore struct {
	uploads []string
	fail    bool
}

func (b *fakeBlobStore) Upload(_ context.Context, objectName, _ string, _ []byte) (string, error) {
	if b.fail {
		return "", errors.New("upstream storage down")
	}
	b.uploads = append(b.uploads, objectName)
	return fmt.Sprintf("https://cdn.example.com/%s", objectName), nil
}
