package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hustle-village/internal/domain"
)

type deletionFixture struct {
	catalog  *CatalogService
	deletion *DeletionService
	services *fakeServiceRepo
	requests *fakeRequestRepo
}

func newDeletionFixture(t *testing.T, users ...*domain.User) *deletionFixture {
	t.Helper()
	userRepo := newFakeUserRepo(users...)
	serviceRepo := newFakeServiceRepo(userRepo)
	requestRepo := newFakeRequestRepo(serviceRepo)
	return &deletionFixture{
		catalog: NewCatalogService(CatalogDependencies{
			ServiceRepo: serviceRepo,
			UserRepo:    userRepo,
			Images:      NewImageService(&fakeBlobStore{}, zap.NewNop(), false),
		}),
		deletion: NewDeletionService(DeletionDependencies{
			RequestRepo: requestRepo,
			ServiceRepo: serviceRepo,
			Logger:      zap.NewNop(),
		}),
		services: serviceRepo,
		requests: requestRepo,
	}
}

func strPtr(s string) *string { return &s }

func TestDeletionRequest(t *testing.T) {
	ctx := context.Background()
	ama := seller("seller-ama", "Ama")
	kofi := seller("seller-kofi", "Kofi")

	t.Run("owner opens a pending request", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		svc, err := fx.catalog.Create(ctx, ama, validInput())
		require.NoError(t, err)

		req, summary, err := fx.deletion.Request(ctx, ama, svc.ID, strPtr("graduating"))
		require.NoError(t, err)

		assert.Equal(t, domain.DeleteRequestPending, req.Status)
		assert.Equal(t, svc.ID, req.ServiceID)
		assert.Equal(t, ama.ID, req.SellerID)
		require.NotNil(t, req.Reason)
		assert.Equal(t, "graduating", *req.Reason)
		assert.Equal(t, svc.Title, summary.Title)

		// The listing itself is untouched until an admin approves.
		stored := fx.services.byID[svc.ID]
		assert.True(t, stored.IsActive)
		assert.False(t, stored.IsDeleted)
	})

	t.Run("second pending request for the same service conflicts", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		svc, err := fx.catalog.Create(ctx, ama, validInput())
		require.NoError(t, err)

		_, _, err = fx.deletion.Request(ctx, ama, svc.ID, nil)
		require.NoError(t, err)

		_, _, err = fx.deletion.Request(ctx, ama, svc.ID, nil)
		requireDomainCode(t, err, "CONFLICT")
	})

	t.Run("denied request reopens the door for a new one", func(t *testing.T) {
		admin := &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}
		fx := newDeletionFixture(t, ama)
		svc, err := fx.catalog.Create(ctx, ama, validInput())
		require.NoError(t, err)

		first, _, err := fx.deletion.Request(ctx, ama, svc.ID, nil)
		require.NoError(t, err)
		_, err = fx.deletion.Resolve(ctx, admin, first.ID, domain.DeleteRequestDenied, nil)
		require.NoError(t, err)

		_, _, err = fx.deletion.Request(ctx, ama, svc.ID, nil)
		require.NoError(t, err)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		fx := newDeletionFixture(t, ama, kofi)
		svc, err := fx.catalog.Create(ctx, ama, validInput())
		require.NoError(t, err)

		_, _, err = fx.deletion.Request(ctx, kofi, svc.ID, nil)
		requireDomainCode(t, err, "FORBIDDEN")
	})

	t.Run("already deleted service conflicts", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		svc, err := fx.catalog.Create(ctx, ama, validInput())
		require.NoError(t, err)

		stored := fx.services.byID[svc.ID]
		stored.IsDeleted = true
		stored.IsActive = false

		_, _, err = fx.deletion.Request(ctx, ama, svc.ID, nil)
		requireDomainCode(t, err, "CONFLICT")
	})

	t.Run("unknown service is not found", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)

		_, _, err := fx.deletion.Request(ctx, ama, "no-such-id", nil)
		requireDomainCode(t, err, "NOT_FOUND")
	})
}

func TestDeletionResolve(t *testing.T) {
	ctx := context.Background()
	ama := seller("seller-ama", "Ama")
	admin := &domain.User{ID: "admin-1", Email: "admin@ashesi.edu.gh", Role: domain.UserRoleAdmin}

	openRequest := func(t *testing.T, fx *deletionFixture) (*domain.Service, *domain.DeleteRequest) {
		t.Helper()
		svc, err := fx.catalog.Create(ctx, ama, validInput())
		require.NoError(t, err)
		req, _, err := fx.deletion.Request(ctx, ama, svc.ID, nil)
		require.NoError(t, err)
		return svc, req
	}

	t.Run("approval soft-deletes the service", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		svc, req := openRequest(t, fx)

		resolved, err := fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestApproved, strPtr("ok"))
		require.NoError(t, err)

		assert.Equal(t, domain.DeleteRequestApproved, resolved.Status)
		require.NotNil(t, resolved.AdminID)
		assert.Equal(t, admin.ID, *resolved.AdminID)
		require.NotNil(t, resolved.ProcessedAt)

		stored := fx.services.byID[svc.ID]
		assert.True(t, stored.IsDeleted)
		assert.False(t, stored.IsActive, "a deleted service must never stay active")
		require.NotNil(t, stored.DeletedAt)

		// Deleted rows vanish from the public catalog.
		public, err := fx.catalog.ListPublic(ctx)
		require.NoError(t, err)
		assert.Empty(t, public)
	})

	t.Run("denial leaves the service untouched", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		svc, req := openRequest(t, fx)

		resolved, err := fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestDenied, strPtr("keep it"))
		require.NoError(t, err)
		assert.Equal(t, domain.DeleteRequestDenied, resolved.Status)

		stored := fx.services.byID[svc.ID]
		assert.False(t, stored.IsDeleted)
		assert.True(t, stored.IsActive)
	})

	t.Run("second resolution conflicts and names the first outcome", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		_, req := openRequest(t, fx)

		_, err := fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestApproved, nil)
		require.NoError(t, err)

		_, err = fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestDenied, nil)
		domainErr := requireDomainCode(t, err, "CONFLICT")
		assert.Contains(t, domainErr.Message, "already approved")
	})

	t.Run("invalid decision is rejected", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		_, req := openRequest(t, fx)

		_, err := fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestPending, nil)
		requireDomainCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)

		_, err := fx.deletion.Resolve(ctx, admin, "no-such-id", domain.DeleteRequestApproved, nil)
		requireDomainCode(t, err, "NOT_FOUND")
	})

	t.Run("approval with a missing service row surfaces an inconsistency", func(t *testing.T) {
		fx := newDeletionFixture(t, ama)
		svc, req := openRequest(t, fx)

		delete(fx.services.byID, svc.ID)

		_, err := fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestApproved, nil)
		requireDomainCode(t, err, "INCONSISTENT_STATE")
	})
}

func TestDeletionListRequests(t *testing.T) {
	ctx := context.Background()
	ama := seller("seller-ama", "Ama")
	kofi := seller("seller-kofi", "Kofi")
	admin := &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}

	fx := newDeletionFixture(t, ama, kofi)

	svcA, err := fx.catalog.Create(ctx, ama, validInput())
	require.NoError(t, err)
	svcB, err := fx.catalog.Create(ctx, kofi, validInput())
	require.NoError(t, err)

	reqA, _, err := fx.deletion.Request(ctx, ama, svcA.ID, strPtr("moving away"))
	require.NoError(t, err)
	_, _, err = fx.deletion.Request(ctx, kofi, svcB.ID, nil)
	require.NoError(t, err)

	_, err = fx.deletion.Resolve(ctx, admin, reqA.ID, domain.DeleteRequestApproved, nil)
	require.NoError(t, err)

	all, err := fx.deletion.ListRequests(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := domain.DeleteRequestPending
	onlyPending, err := fx.deletion.ListRequests(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, svcB.ID, onlyPending[0].ServiceID)
	assert.Equal(t, svcB.Title, onlyPending[0].ServiceTitle)
	assert.Equal(t, "Kofi", onlyPending[0].SellerName)
}

// Walks the lifecycle end to end: publish, pause, request deletion, approve.
func TestListingLifecycle(t *testing.T) {
	ctx := context.Background()
	ama := seller("seller-ama", "Ama")
	kofi := seller("seller-kofi", "Kofi")
	admin := &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}

	fx := newDeletionFixture(t, ama, kofi)

	cakes, err := fx.catalog.Create(ctx, ama, validInput())
	require.NoError(t, err)
	tutoring := validInput()
	tutoring.Title = "Calculus tutoring"
	tutoring.Category = "tutoring"
	tutoring.PricingType = "hourly"
	lessons, err := fx.catalog.Create(ctx, kofi, tutoring)
	require.NoError(t, err)

	public, err := fx.catalog.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2)

	// Ama pauses, Kofi's listing keeps showing.
	_, err = fx.catalog.Toggle(ctx, ama, cakes.ID)
	require.NoError(t, err)
	public, err = fx.catalog.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, lessons.ID, public[0].ID)

	// Ama resumes and asks to retire the listing instead.
	_, err = fx.catalog.Toggle(ctx, ama, cakes.ID)
	require.NoError(t, err)
	req, _, err := fx.deletion.Request(ctx, ama, cakes.ID, strPtr("graduating"))
	require.NoError(t, err)

	// Kofi cannot meddle with Ama's listing or request a delete for it.
	_, err = fx.catalog.Update(ctx, kofi, cakes.ID, validInput())
	requireDomainCode(t, err, "FORBIDDEN")
	_, _, err = fx.deletion.Request(ctx, kofi, cakes.ID, nil)
	requireDomainCode(t, err, "FORBIDDEN")

	_, err = fx.deletion.Resolve(ctx, admin, req.ID, domain.DeleteRequestApproved, nil)
	require.NoError(t, err)

	// The retired listing is gone from buyers but still visible to its seller.
	public, err = fx.catalog.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, lessons.ID, public[0].ID)

	mine, err := fx.catalog.ListMine(ctx, ama)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsDeleted)

	// And it can no longer be resumed or re-requested.
	_, err = fx.catalog.Toggle(ctx, ama, cakes.ID)
	requireDomainCode(t, err, "CONFLICT")
	_, _, err = fx.deletion.Request(ctx, ama, cakes.ID, nil)
	requireDomainCode(t, err, "CONFLICT")
}
