package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// ServiceRepository encapsulates listing persistence.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	// UpdateOwned replaces mutable fields using an owner-scoped conditional
	// update. pgx.ErrNoRows means the row is absent or owned by someone else.
	UpdateOwned(ctx context.Context, svc *domain.Service) error
	// ToggleActiveOwned atomically flips is_active for a non-deleted row the
	// seller owns, returning the updated record.
	ToggleActiveOwned(ctx context.Context, serviceID, sellerID string) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Service, error)
	ListPublic(ctx context.Context) ([]domain.PublicService, error)
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

const serviceColumns = `id, seller_id, title, description, category, price, pricing_type,
               image_urls, is_active, is_deleted, created_at, updated_at, deleted_at`

func (r *serviceRepository) Create(ctx context.Context, svc *domain.Service) error {
	const query = `
        INSERT INTO services (seller_id, title, description, category, price, pricing_type, image_urls, is_active, is_deleted)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		svc.SellerID,
		svc.Title,
		svc.Description,
		svc.Category,
		svc.Price,
		svc.PricingType,
		svc.ImageURLs,
		svc.IsActive,
		svc.IsDeleted,
	).Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
}

func (r *serviceRepository) UpdateOwned(ctx context.Context, svc *domain.Service) error {
	const query = `
        UPDATE services SET title=$1, description=$2, category=$3, price=$4, pricing_type=$5,
            image_urls=$6, updated_at=NOW()
        WHERE id=$7 AND seller_id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		svc.Title,
		svc.Description,
		svc.Category,
		svc.Price,
		svc.PricingType,
		svc.ImageURLs,
		svc.ID,
		svc.SellerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) ToggleActiveOwned(ctx context.Context, serviceID, sellerID string) (*domain.Service, error) {
	const query = `
        UPDATE services SET is_active = NOT is_active, updated_at=NOW()
        WHERE id=$1 AND seller_id=$2 AND NOT is_deleted
        RETURNING ` + serviceColumns
	return r.scanSingle(r.pool.QueryRow(ctx, query, serviceID, sellerID))
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id=$1`
	return r.scanSingle(r.pool.QueryRow(ctx, query, id))
}

func (r *serviceRepository) ListBySeller(ctx context.Context, sellerID string) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + `
        FROM services WHERE seller_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *serviceRepository) ListPublic(ctx context.Context) ([]domain.PublicService, error) {
	const query = `
        SELECT s.id, s.seller_id, s.title, s.description, s.category, s.price, s.pricing_type,
               s.image_urls, s.is_active, s.is_deleted, s.created_at, s.updated_at, s.deleted_at,
               u.full_name, u.email
        FROM services s
        LEFT JOIN users u ON u.id = s.seller_id
        WHERE s.is_active AND NOT s.is_deleted
        ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PublicService
	for rows.Next() {
		var item domain.PublicService
		var sellerName, sellerEmail *string
		if err := rows.Scan(
			&item.ID,
			&item.SellerID,
			&item.Title,
			&item.Description,
			&item.Category,
			&item.Price,
			&item.PricingType,
			&item.ImageURLs,
			&item.IsActive,
			&item.IsDeleted,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.DeletedAt,
			&sellerName,
			&sellerEmail,
		); err != nil {
			return nil, err
		}
		if sellerName != nil {
			item.SellerName = *sellerName
		}
		if sellerEmail != nil {
			item.SellerEmail = *sellerEmail
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *serviceRepository) scanSingle(row pgx.Row) (*domain.Service, error) {
	var svc domain.Service
	if err := row.Scan(
		&svc.ID,
		&svc.SellerID,
		&svc.Title,
		&svc.Description,
		&svc.Category,
		&svc.Price,
		&svc.PricingType,
		&svc.ImageURLs,
		&svc.IsActive,
		&svc.IsDeleted,
		&svc.CreatedAt,
		&svc.UpdatedAt,
		&svc.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &svc, nil
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	var result []domain.Service
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.SellerID,
			&svc.Title,
			&svc.Description,
			&svc.Category,
			&svc.Price,
			&svc.PricingType,
			&svc.ImageURLs,
			&svc.IsActive,
			&svc.IsDeleted,
			&svc.CreatedAt,
			&svc.UpdatedAt,
			&svc.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, svc)
	}
	return result, rows.Err()
}
