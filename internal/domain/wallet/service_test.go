package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type repoStub struct {
	balances map[uuid.UUID]float64
	byEmail  map[string]uuid.UUID
	txs      []*Transaction
}

func newRepoStub() *repoStub {
	return &repoStub{
		balances: make(map[uuid.UUID]float64),
		byEmail:  make(map[string]uuid.UUID),
	}
}

func (r *repoStub) EnsureUser(_ context.Context, email, _ string) (uuid.UUID, error) {
	if id, ok := r.byEmail[email]; ok {
		return id, nil
	}
	id := uuid.New()
	r.byEmail[email] = id
	r.balances[id] = 0
	return id, nil
}

func (r *repoStub) GetEmail(_ context.Context, userID uuid.UUID) (string, error) {
	for email, id := range r.byEmail {
		if id == userID {
			return email, nil
		}
	}
	if _, ok := r.balances[userID]; ok {
		return "", nil
	}
	return "", ErrUserNotFound
}

func (r *repoStub) Credit(_ context.Context, t *Transaction) error {
	if _, ok := r.balances[t.UserID]; !ok {
		return ErrUserNotFound
	}
	r.balances[t.UserID] += t.Amount
	r.txs = append(r.txs, t)
	return nil
}

func (r *repoStub) Debit(_ context.Context, t *Transaction) error {
	balance, ok := r.balances[t.UserID]
	if !ok {
		return ErrUserNotFound
	}
	if balance < -t.Amount {
		return ErrInsufficientFunds
	}
	r.balances[t.UserID] += t.Amount
	r.txs = append(r.txs, t)
	return nil
}

func (r *repoStub) GetBalance(_ context.Context, userID uuid.UUID) (float64, error) {
	balance, ok := r.balances[userID]
	if !ok {
		return 0, ErrUserNotFound
	}
	return balance, nil
}

func (r *repoStub) GetByID(context.Context, uuid.UUID) (*Transaction, error) { return nil, nil }
func (r *repoStub) ListByUser(context.Context, uuid.UUID, int, int) ([]*Transaction, int, error) {
	return nil, 0, nil
}
func (r *repoStub) List(context.Context, int, int) ([]*Transaction, int, error) {
	return nil, 0, nil
}
func (r *repoStub) OverrideStatus(context.Context, uuid.UUID, TxStatus) error { return nil }

func TestFundWalletCreatesUserOnFirstFunding(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	tx, err := svc.FundWallet(context.Background(), &EmailFundRequest{
		Email: "new@user.ng", FullName: "New User", Amount: 2000,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	id, ok := repo.byEmail["new@user.ng"]
	if !ok {
		t.Fatal("expected user row to be created")
	}
	if repo.balances[id] != 2000 {
		t.Fatalf("expected balance 2000, got %v", repo.balances[id])
	}
	if len(repo.txs) != 1 {
		t.Fatalf("expected exactly one transaction, got %d", len(repo.txs))
	}
	if tx.Type != TxCredit || tx.Amount != 2000 || tx.Description != "Wallet Funding" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestFundWalletReusesExistingUser(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	first, _ := svc.FundWallet(context.Background(), &EmailFundRequest{Email: "a@b.ng", Amount: 100})
	second, _ := svc.FundWallet(context.Background(), &EmailFundRequest{Email: "a@b.ng", Amount: 50})

	if first.UserID != second.UserID {
		t.Fatal("expected both fundings to target the same user")
	}
	if repo.balances[first.UserID] != 150 {
		t.Fatalf("expected balance 150, got %v", repo.balances[first.UserID])
	}
}

func TestFundWalletRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newRepoStub())
	if _, err := svc.FundWallet(context.Background(), &EmailFundRequest{Email: "a@b.ng", Amount: 0}); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestFundCreditsOnlyTheCaller(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	callerID, _ := repo.EnsureUser(context.Background(), "caller@b.ng", "Caller")
	otherID, _ := repo.EnsureUser(context.Background(), "other@b.ng", "Other")

	tx, err := svc.Fund(context.Background(), callerID, 750)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tx.UserID != callerID || tx.UserEmail != "caller@b.ng" {
		t.Fatalf("expected credit on the caller's row, got %+v", tx)
	}
	if repo.balances[callerID] != 750 {
		t.Fatalf("expected caller balance 750, got %v", repo.balances[callerID])
	}
	if repo.balances[otherID] != 0 {
		t.Fatalf("other user's balance must be untouched, got %v", repo.balances[otherID])
	}
}

func TestFundUnknownUser(t *testing.T) {
	svc := NewService(newRepoStub())
	if _, err := svc.Fund(context.Background(), uuid.New(), 100); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFundRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newRepoStub())
	if _, err := svc.Fund(context.Background(), uuid.New(), -5); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestManualDeductInsufficientFundsLeavesLedgerUntouched(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	userID := uuid.New()
	repo.balances[userID] = 100

	_, err := svc.ManualDeduct(context.Background(), userID, 550, uuid.New())
	if err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if repo.balances[userID] != 100 {
		t.Fatalf("balance must be unchanged, got %v", repo.balances[userID])
	}
	if len(repo.txs) != 0 {
		t.Fatalf("no transaction should be appended, got %d", len(repo.txs))
	}
}

func TestManualDeductAnnotatesAdmin(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	userID := uuid.New()
	adminID := uuid.New()
	repo.balances[userID] = 1000

	tx, err := svc.ManualDeduct(context.Background(), userID, 400, adminID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tx.Amount != -400 || tx.Type != TxDebit {
		t.Fatalf("expected signed debit of -400, got %+v", tx)
	}
	if !tx.AdminID.Valid || tx.AdminID.UUID != adminID {
		t.Fatal("expected acting admin to be recorded")
	}
	if repo.balances[userID] != 600 {
		t.Fatalf("expected balance 600, got %v", repo.balances[userID])
	}
}

func TestOverrideStatusRejectsInvalidTargetStatus(t *testing.T) {
	svc := NewService(newRepoStub())
	err := svc.OverrideStatus(context.Background(), uuid.New(), StatusPending, uuid.New())
	if err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus for pending target status, got %v", err)
	}
}
