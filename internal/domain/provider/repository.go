package provider

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines provider registry data access
type Repository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	List(ctx context.Context) ([]*Provider, error)
	ListActiveByPriority(ctx context.Context) ([]*Provider, error)
	Update(ctx context.Context, p *Provider) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates provider repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	id, name, base_url, status, priority, auth_scheme, api_key, api_secret,
	custom_headers, txn_charge, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, p *Provider) error {
	if err := p.EncodeHeaders(); err != nil {
		return err
	}
	query := `
		INSERT INTO providers (id, name, base_url, status, priority, auth_scheme, api_key, api_secret, custom_headers, txn_charge, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.BaseURL, p.Status, p.Priority, p.AuthScheme,
		p.APIKey, p.APISecret, p.CustomHeadersRaw, p.TxnCharge, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	var p Provider
	err := r.db.GetContext(ctx, &p, `SELECT `+selectColumns+` FROM providers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.ParseJSONB()
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Provider, error) {
	var providers []*Provider
	err := r.db.SelectContext(ctx, &providers, `SELECT `+selectColumns+` FROM providers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		p.ParseJSONB()
	}
	return providers, nil
}

// ListActiveByPriority returns active providers, primary before fallback
func (r *repository) ListActiveByPriority(ctx context.Context) ([]*Provider, error) {
	var providers []*Provider
	err := r.db.SelectContext(ctx, &providers, `
		SELECT `+selectColumns+`
		FROM providers
		WHERE status = 'active'
		ORDER BY CASE priority WHEN 'primary' THEN 0 ELSE 1 END, name
	`)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		p.ParseJSONB()
	}
	return providers, nil
}

func (r *repository) Update(ctx context.Context, p *Provider) error {
	if err := p.EncodeHeaders(); err != nil {
		return err
	}
	query := `
		UPDATE providers SET
			name = $2, base_url = $3, status = $4, priority = $5, auth_scheme = $6,
			api_key = $7, api_secret = $8, custom_headers = $9, txn_charge = $10, updated_at = $11
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.BaseURL, p.Status, p.Priority, p.AuthScheme,
		p.APIKey, p.APISecret, p.CustomHeadersRaw, p.TxnCharge, time.Now(),
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
