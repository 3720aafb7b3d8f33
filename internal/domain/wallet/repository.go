package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines ledger data access. Credit and Debit are atomic units:
// the balance mutation and the transaction insert commit or roll back together.
type Repository interface {
	EnsureUser(ctx context.Context, email, fullName string) (uuid.UUID, error)
	GetEmail(ctx context.Context, userID uuid.UUID) (string, error)
	Credit(ctx context.Context, t *Transaction) error
	Debit(ctx context.Context, t *Transaction) error
	GetBalance(ctx context.Context, userID uuid.UUID) (float64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Transaction, int, error)
	List(ctx context.Context, limit, offset int) ([]*Transaction, int, error)
	OverrideStatus(ctx context.Context, id uuid.UUID, status TxStatus) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates wallet repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const txColumns = `
	id, user_id, user_email, description, amount, type, status,
	request_id, service_id, variation_id, admin_id, provider_response, created_at
`

// EnsureUser returns the id for an email, creating a credential-less row for
// first-time wallet funding when the account does not exist yet.
func (r *repository) EnsureUser(ctx context.Context, email, fullName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO users (email, full_name, role, status, balance)
		VALUES ($1, $2, 'customer', 'active', 0)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, email, fullName)
	return id, err
}

func (r *repository) GetEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	var email string
	err := r.db.GetContext(ctx, &email, `SELECT email FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return email, nil
}

func (r *repository) Credit(ctx context.Context, t *Transaction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $2 WHERE id = $1`,
		t.UserID, t.Amount,
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repository) Debit(ctx context.Context, t *Transaction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guarded single-statement decrement: the WHERE clause is what keeps
	// the balance from going negative under concurrent debits.
	debit := -t.Amount
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance - $2 WHERE id = $1 AND balance >= $2`,
		t.UserID, debit,
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, t.UserID); err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}
		return ErrInsufficientFunds
	}

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, user_email, description, amount, type, status,
			request_id, service_id, variation_id, admin_id, provider_response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		t.ID, t.UserID, t.UserEmail, t.Description, t.Amount, t.Type, t.Status,
		t.RequestID, t.ServiceID, t.VariationID, t.AdminID, t.ProviderResponse, t.CreatedAt,
	)
	return err
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var balance float64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := r.db.GetContext(ctx, &t, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Transaction, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	var list []*Transaction
	err := r.db.SelectContext(ctx, &list, `
		SELECT `+txColumns+` FROM transactions
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]*Transaction, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions`); err != nil {
		return nil, 0, err
	}

	var list []*Transaction
	err := r.db.SelectContext(ctx, &list, `
		SELECT `+txColumns+` FROM transactions
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// OverrideStatus resolves a pending row. Failing a pending purchase debit
// refunds the reserved funds in the same transaction, so an admin override
// never strands money the way a bare status flip would.
func (r *repository) OverrideStatus(ctx context.Context, id uuid.UUID, status TxStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var row struct {
		UserID    uuid.UUID     `db:"user_id"`
		Amount    float64       `db:"amount"`
		Type      TxType        `db:"type"`
		RequestID uuid.NullUUID `db:"request_id"`
	}
	err = tx.GetContext(ctx, &row, `
		UPDATE transactions SET status = $2 WHERE id = $1 AND status = 'pending'
		RETURNING user_id, amount, type, request_id
	`, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id); err != nil {
				return err
			}
			if !exists {
				return ErrTransactionNotFound
			}
			return ErrNotPending
		}
		return err
	}

	if status == StatusFailed && row.Type == TxDebit && row.RequestID.Valid {
		// amount is negative on debits; subtracting it restores the balance
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET balance = balance - $2 WHERE id = $1`,
			row.UserID, row.Amount,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
