package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vtuboss/vtuboss-api/internal/domain/catalog"
	"github.com/vtuboss/vtuboss-api/internal/pkg/metrics"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Fund credits the caller's own wallet. The target identity is the
// authenticated user id, never caller-supplied.
func (s *Service) Fund(ctx context.Context, userID uuid.UUID, amount float64) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	email, err := s.repo.GetEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		UserEmail:   email,
		Description: "Wallet Funding",
		Amount:      catalog.Round2(amount),
		Type:        TxCredit,
		Status:      StatusSuccessful,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Credit(ctx, t); err != nil {
		return nil, err
	}

	metrics.WalletOpsTotal.WithLabelValues(string(TxCredit)).Inc()
	log.Info().
		Str("user_id", userID.String()).
		Float64("amount", t.Amount).
		Msg("Wallet funded")
	return t, nil
}

// FundWallet credits a wallet by email, creating the account on first-time
// funding. This is the payment-confirmation path and lives behind the admin
// surface; exactly one Credit transaction is appended per call.
func (s *Service) FundWallet(ctx context.Context, req *EmailFundRequest) (*Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	userID, err := s.repo.EnsureUser(ctx, req.Email, req.FullName)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		UserEmail:   req.Email,
		Description: "Wallet Funding",
		Amount:      catalog.Round2(req.Amount),
		Type:        TxCredit,
		Status:      StatusSuccessful,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Credit(ctx, t); err != nil {
		return nil, err
	}

	metrics.WalletOpsTotal.WithLabelValues(string(TxCredit)).Inc()
	log.Info().
		Str("user_id", userID.String()).
		Str("email", req.Email).
		Float64("amount", t.Amount).
		Msg("Wallet funded by email")
	return t, nil
}

// ManualFund is an admin-triggered credit annotated with the acting admin
func (s *Service) ManualFund(ctx context.Context, userID uuid.UUID, amount float64, adminID uuid.UUID) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	t := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Description: fmt.Sprintf("Manual wallet funding by admin %s", adminID),
		Amount:      catalog.Round2(amount),
		Type:        TxCredit,
		Status:      StatusSuccessful,
		AdminID:     uuid.NullUUID{UUID: adminID, Valid: true},
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Credit(ctx, t); err != nil {
		return nil, err
	}

	metrics.WalletOpsTotal.WithLabelValues(string(TxCredit)).Inc()
	return t, nil
}

// ManualDeduct is an admin-triggered debit; it fails with
// ErrInsufficientFunds rather than driving the balance negative.
func (s *Service) ManualDeduct(ctx context.Context, userID uuid.UUID, amount float64, adminID uuid.UUID) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	t := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Description: fmt.Sprintf("Manual wallet deduction by admin %s", adminID),
		Amount:      -catalog.Round2(amount),
		Type:        TxDebit,
		Status:      StatusSuccessful,
		AdminID:     uuid.NullUUID{UUID: adminID, Valid: true},
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Debit(ctx, t); err != nil {
		return nil, err
	}

	metrics.WalletOpsTotal.WithLabelValues(string(TxDebit)).Inc()
	return t, nil
}

func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Transaction, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Transaction, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// OverrideStatus lets an admin resolve a stuck pending transaction
func (s *Service) OverrideStatus(ctx context.Context, txID uuid.UUID, status TxStatus, adminID uuid.UUID) error {
	if status != StatusSuccessful && status != StatusFailed {
		return ErrInvalidStatus
	}
	if err := s.repo.OverrideStatus(ctx, txID, status); err != nil {
		return err
	}
	log.Info().
		Str("transaction_id", txID.String()).
		Str("status", string(status)).
		Str("admin_id", adminID.String()).
		Msg("Transaction status overridden")
	return nil
}
