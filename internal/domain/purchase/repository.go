package purchase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vtuboss/vtuboss-api/internal/domain/wallet"
)

// Ledger is the purchase engine's view of the transaction log. Reserve holds
// the funds before the provider is called; Finalize and Release settle the
// attempt afterwards, so a crash between the two leaves a pending row the
// reconciler can find instead of a silent double-charge.
type Ledger interface {
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*wallet.Transaction, error)
	Reserve(ctx context.Context, t *wallet.Transaction) error
	Finalize(ctx context.Context, txID uuid.UUID, providerResponse json.RawMessage) error
	Release(ctx context.Context, txID, userID uuid.UUID, total float64) error
	SweepExpired(ctx context.Context, olderThan time.Time) (int, error)
}

type ledger struct {
	db *sqlx.DB
}

// NewLedger creates the sqlx-backed purchase ledger
func NewLedger(db *sqlx.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*wallet.Transaction, error) {
	var t wallet.Transaction
	err := l.db.GetContext(ctx, &t, `
		SELECT id, user_id, user_email, description, amount, type, status,
			request_id, service_id, variation_id, admin_id, provider_response, created_at
		FROM transactions WHERE request_id = $1
	`, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Reserve atomically debits the wallet and appends the pending debit row.
// The guarded UPDATE is what enforces the non-negative balance invariant.
func (l *ledger) Reserve(ctx context.Context, t *wallet.Transaction) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	total := -t.Amount
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance - $2 WHERE id = $1 AND balance >= $2`,
		t.UserID, total,
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
			return wallet.ErrUserNotFound
		}
		return wallet.ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, user_email, description, amount, type, status,
			request_id, service_id, variation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		t.ID, t.UserID, t.UserEmail, t.Description, t.Amount, t.Type, t.Status,
		t.RequestID, t.ServiceID, t.VariationID, t.CreatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (l *ledger) Finalize(ctx context.Context, txID uuid.UUID, providerResponse json.RawMessage) error {
	result, err := l.db.ExecContext(ctx, `
		UPDATE transactions SET status = 'successful', provider_response = $2
		WHERE id = $1 AND status = 'pending'
	`, txID, providerResponse)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return wallet.ErrNotPending
	}
	return nil
}

// Release refunds the reservation and marks the row failed. The pending
// guard makes it safe to race with an admin override or the reconciler.
func (l *ledger) Release(ctx context.Context, txID, userID uuid.UUID, total float64) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = 'failed' WHERE id = $1 AND status = 'pending'`,
		txID,
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return wallet.ErrNotPending
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $2 WHERE id = $1`,
		userID, total,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// SweepExpired fails every pending purchase older than the cutoff and
// refunds the reserved funds, returning how many rows were released.
func (l *ledger) SweepExpired(ctx context.Context, olderThan time.Time) (int, error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	type row struct {
		ID     uuid.UUID `db:"id"`
		UserID uuid.UUID `db:"user_id"`
		Amount float64   `db:"amount"`
	}
	var rows []row
	err = tx.SelectContext(ctx, &rows, `
		UPDATE transactions SET status = 'failed'
		WHERE status = 'pending' AND type = 'debit' AND request_id IS NOT NULL AND created_at < $1
		RETURNING id, user_id, amount
	`, olderThan)
	if err != nil {
		return 0, err
	}

	for _, r := range rows {
		// amount is negative on debits; subtracting it restores the balance
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET balance = balance - $2 WHERE id = $1`,
			r.UserID, r.Amount,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}
