package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// ErrPendingRequestExists is returned when the one-pending-per-service
// unique index rejects an insert.
var ErrPendingRequestExists = errors.New("pending delete request already exists")

// ErrServiceRowMissing indicates an approved request pointed at a service row
// that could not be soft-deleted. The transaction is rolled back when this is
// returned, but it still signals data needing operator attention.
var ErrServiceRowMissing = errors.New("delete request references a service row that could not be updated")

// DeleteRequestRepository persists the moderated-deletion workflow.
type DeleteRequestRepository interface {
	Create(ctx context.Context, req *domain.DeleteRequest) error
	GetByID(ctx context.Context, id string) (*domain.DeleteRequest, error)
	ListWithDetails(ctx context.Context, status *domain.DeleteRequestStatus) ([]domain.DeleteRequestDetail, error)
	// ResolveApprove marks the request approved and soft-deletes the target
	// service in one transaction. Both rows change or neither does.
	ResolveApprove(ctx context.Context, req *domain.DeleteRequest) error
	// ResolveDeny marks the request denied; the service is untouched.
	ResolveDeny(ctx context.Context, req *domain.DeleteRequest) error
}

type deleteRequestRepository struct {
	pool *pgxpool.Pool
}

// NewDeleteRequestRepository instantiates repository.
func NewDeleteRequestRepository(pool *pgxpool.Pool) DeleteRequestRepository {
	return &deleteRequestRepository{pool: pool}
}

const deleteRequestColumns = `id, service_id, seller_id, reason, status, admin_id, admin_comment, requested_at, processed_at`

func (r *deleteRequestRepository) Create(ctx context.Context, req *domain.DeleteRequest) error {
	const query = `
        INSERT INTO service_delete_requests (service_id, seller_id, reason, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, requested_at`
	err := r.pool.QueryRow(ctx, query,
		req.ServiceID,
		req.SellerID,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.RequestedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrPendingRequestExists
		}
		return err
	}
	return nil
}

func (r *deleteRequestRepository) GetByID(ctx context.Context, id string) (*domain.DeleteRequest, error) {
	query := `SELECT ` + deleteRequestColumns + ` FROM service_delete_requests WHERE id=$1`
	var req domain.DeleteRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.ServiceID,
		&req.SellerID,
		&req.Reason,
		&req.Status,
		&req.AdminID,
		&req.AdminComment,
		&req.RequestedAt,
		&req.ProcessedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *deleteRequestRepository) ListWithDetails(ctx context.Context, status *domain.DeleteRequestStatus) ([]domain.DeleteRequestDetail, error) {
	base := `
        SELECT r.id, r.service_id, r.seller_id, r.reason, r.status, r.admin_id, r.admin_comment,
               r.requested_at, r.processed_at,
               COALESCE(s.title, ''), COALESCE(s.description, ''),
               COALESCE(u.full_name, ''), COALESCE(u.email, '')
        FROM service_delete_requests r
        LEFT JOIN services s ON s.id = r.service_id
        LEFT JOIN users u ON u.id = r.seller_id`

	var rows pgx.Rows
	var err error
	if status != nil {
		rows, err = r.pool.Query(ctx, base+` WHERE r.status=$1 ORDER BY r.requested_at DESC`, *status)
	} else {
		rows, err = r.pool.Query(ctx, base+` ORDER BY r.requested_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeleteRequestDetail
	for rows.Next() {
		var item domain.DeleteRequestDetail
		if err := rows.Scan(
			&item.ID,
			&item.ServiceID,
			&item.SellerID,
			&item.Reason,
			&item.Status,
			&item.AdminID,
			&item.AdminComment,
			&item.RequestedAt,
			&item.ProcessedAt,
			&item.ServiceTitle,
			&item.ServiceDescription,
			&item.SellerName,
			&item.SellerEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *deleteRequestRepository) ResolveApprove(ctx context.Context, req *domain.DeleteRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := resolveRequestRow(ctx, tx, req); err != nil {
		return err
	}

	const softDelete = `
        UPDATE services SET is_deleted=TRUE, is_active=FALSE, deleted_at=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := tx.Exec(ctx, softDelete, req.ProcessedAt, req.ServiceID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrServiceRowMissing
	}

	return tx.Commit(ctx)
}

func (r *deleteRequestRepository) ResolveDeny(ctx context.Context, req *domain.DeleteRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := resolveRequestRow(ctx, tx, req); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// resolveRequestRow flips a pending request to its terminal status. The
// status guard in the WHERE clause makes double-resolution lose the race even
// when two admins act concurrently.
func resolveRequestRow(ctx context.Context, tx pgx.Tx, req *domain.DeleteRequest) error {
	now := time.Now()
	req.ProcessedAt = &now

	const query = `
        UPDATE service_delete_requests
        SET status=$1, admin_id=$2, admin_comment=$3, processed_at=$4
        WHERE id=$5 AND status='pending'`
	cmd, err := tx.Exec(ctx, query,
		req.Status,
		req.AdminID,
		req.AdminComment,
		req.ProcessedAt,
		req.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
