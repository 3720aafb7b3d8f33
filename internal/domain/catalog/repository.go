package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines catalog data access
type Repository interface {
	Create(ctx context.Context, svc *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
	Update(ctx context.Context, svc *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, svc *Service) error {
	if err := svc.EncodeVariations(); err != nil {
		return err
	}
	query := `
		INSERT INTO services (id, name, provider_key, category, status, provider_id, variations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		svc.ID, svc.Name, svc.ProviderKey, svc.Category, svc.Status,
		svc.ProviderID, svc.VariationsRaw, svc.CreatedAt, svc.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var svc Service
	err := r.db.GetContext(ctx, &svc, `
		SELECT id, name, provider_key, category, status, provider_id, variations, created_at, updated_at
		FROM services WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	svc.ParseJSONB()
	return &svc, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	query := `
		SELECT id, name, provider_key, category, status, provider_id, variations, created_at, updated_at
		FROM services
	`
	if activeOnly {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY category, name`

	var services []*Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, err
	}
	for _, s := range services {
		s.ParseJSONB()
	}
	return services, nil
}

func (r *repository) Update(ctx context.Context, svc *Service) error {
	if err := svc.EncodeVariations(); err != nil {
		return err
	}
	query := `
		UPDATE services SET
			name = $2, provider_key = $3, category = $4, status = $5,
			provider_id = $6, variations = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		svc.ID, svc.Name, svc.ProviderKey, svc.Category, svc.Status,
		svc.ProviderID, svc.VariationsRaw, time.Now(),
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
