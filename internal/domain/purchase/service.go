package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vtuboss/vtuboss-api/internal/domain/catalog"
	"github.com/vtuboss/vtuboss-api/internal/domain/provider"
	"github.com/vtuboss/vtuboss-api/internal/domain/user"
	"github.com/vtuboss/vtuboss-api/internal/domain/wallet"
	"github.com/vtuboss/vtuboss-api/internal/pkg/billing"
	"github.com/vtuboss/vtuboss-api/internal/pkg/metrics"
)

// UserStore is the slice of the user repository the engine needs
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// CatalogStore resolves services, normally through the cached catalog
type CatalogStore interface {
	GetService(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
}

// ProviderStore lists dispatch candidates in failover order
type ProviderStore interface {
	ListActiveByPriority(ctx context.Context) ([]*provider.Provider, error)
}

// Service is the transactional purchase engine. Funds are reserved before
// the provider is called and settled after, so the wallet can never go
// negative and a failed delivery always refunds.
type Service struct {
	users      UserStore
	catalog    CatalogStore
	providers  ProviderStore
	ledger     Ledger
	fulfillers map[catalog.Category]Fulfiller
}

func NewService(users UserStore, cat CatalogStore, providers ProviderStore, ledger Ledger, fulfillers map[catalog.Category]Fulfiller) *Service {
	return &Service{
		users:      users,
		catalog:    cat,
		providers:  providers,
		ledger:     ledger,
		fulfillers: fulfillers,
	}
}

// Purchase executes one idempotent purchase. A repeated request_id returns
// the original transaction without touching the wallet again.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, req *Request) (*wallet.Transaction, error) {
	if prior, err := s.ledger.FindByRequestID(ctx, req.RequestID); err != nil {
		return nil, err
	} else if prior != nil {
		return prior, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Status == user.StatusBlocked {
		return nil, ErrUserBlocked
	}

	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.Status != catalog.StatusActive {
		return nil, ErrServiceInactive
	}

	variation := svc.FindVariation(req.VariationID)
	if variation == nil {
		return nil, ErrInvalidVariation
	}

	amount := variation.Price
	if svc.Category.UsesCallerAmount() {
		amount = req.Amount
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	fee := variation.Fees.For(u.Role)
	total := catalog.Round2(amount + fee)

	tx := &wallet.Transaction{
		ID:          uuid.New(),
		UserID:      u.ID,
		UserEmail:   u.Email,
		Description: describe(variation, fee, req.Inputs),
		Amount:      -total,
		Type:        wallet.TxDebit,
		Status:      wallet.StatusPending,
		RequestID:   uuid.NullUUID{UUID: req.RequestID, Valid: true},
		ServiceID:   uuid.NullUUID{UUID: svc.ID, Valid: true},
		VariationID: &variation.ID,
		CreatedAt:   time.Now(),
	}

	if err := s.ledger.Reserve(ctx, tx); err != nil {
		if errors.Is(err, wallet.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	metrics.WalletOpsTotal.WithLabelValues(string(wallet.TxDebit)).Inc()

	raw, err := s.dispatch(ctx, svc, variation, amount, req.Inputs)
	if err != nil {
		if relErr := s.ledger.Release(ctx, tx.ID, u.ID, total); relErr != nil {
			if errors.Is(relErr, wallet.ErrNotPending) {
				// An admin override or the reconciler settled the row first;
				// whichever side flipped it also handled the refund.
				log.Warn().Str("tx_id", tx.ID.String()).Msg("Reservation was already settled elsewhere")
			} else {
				log.Error().Err(relErr).Str("tx_id", tx.ID.String()).Msg("Failed to release reservation")
			}
		}
		metrics.PurchasesTotal.WithLabelValues(string(svc.Category), "failed").Inc()
		return nil, err
	}

	if err := s.ledger.Finalize(ctx, tx.ID, raw); err != nil {
		// Lost the race against an admin override or the reconciler sweep.
		// The delivery already happened, so still report success to the caller.
		log.Warn().Err(err).Str("tx_id", tx.ID.String()).Msg("Delivery succeeded but row was no longer pending")
	}
	tx.Status = wallet.StatusSuccessful
	tx.ProviderResponse = raw

	metrics.PurchasesTotal.WithLabelValues(string(svc.Category), "successful").Inc()
	log.Info().
		Str("user_id", u.ID.String()).
		Str("service", svc.Name).
		Str("variation", variation.ID).
		Float64("total", total).
		Msg("Purchase completed")
	return tx, nil
}

// dispatch tries active providers in priority order. A provider rejection
// (*billing.APIError) is authoritative and stops the failover; transport
// failures move on to the next candidate. With no providers configured the
// delivery is simulated.
func (s *Service) dispatch(ctx context.Context, svc *catalog.Service, variation *catalog.Variation, amount float64, inputs map[string]string) ([]byte, error) {
	fulfiller, ok := s.fulfillers[svc.Category]
	if !ok {
		return SimulatedResponse(variation.Name), nil
	}

	candidates, err := s.providers.ListActiveByPriority(ctx)
	if err != nil {
		return nil, err
	}
	candidates = preferPinned(candidates, svc.ProviderID)

	if len(candidates) == 0 {
		return SimulatedResponse(variation.Name), nil
	}

	var lastErr error
	for _, p := range candidates {
		call := &Call{
			Provider: billing.ProviderConfig{
				Name:          p.Name,
				BaseURL:       p.BaseURL,
				AuthScheme:    p.AuthScheme,
				APIKey:        p.APIKey,
				APISecret:     p.APISecret,
				CustomHeaders: p.CustomHeaders,
			},
			ProviderKey: svc.ProviderKey,
			Variation:   variation,
			Amount:      amount,
			Inputs:      inputs,
		}

		raw, err := fulfiller.Fulfill(ctx, call)
		if err == nil {
			metrics.ProviderCallsTotal.WithLabelValues(p.Name, "ok").Inc()
			return raw, nil
		}

		var apiErr *billing.APIError
		if errors.As(err, &apiErr) {
			metrics.ProviderCallsTotal.WithLabelValues(p.Name, "rejected").Inc()
			return nil, err
		}
		if errors.Is(err, ErrMissingInput) {
			return nil, err
		}

		metrics.ProviderCallsTotal.WithLabelValues(p.Name, "transport_error").Inc()
		log.Warn().Err(err).Str("provider", p.Name).Msg("Provider unreachable, trying next candidate")
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, lastErr)
}

// preferPinned moves a service's pinned provider to the front of the
// candidate list while keeping the priority order for the rest.
func preferPinned(candidates []*provider.Provider, pinned uuid.NullUUID) []*provider.Provider {
	if !pinned.Valid {
		return candidates
	}
	for i, p := range candidates {
		if p.ID == pinned.UUID {
			reordered := make([]*provider.Provider, 0, len(candidates))
			reordered = append(reordered, p)
			reordered = append(reordered, candidates[:i]...)
			return append(reordered, candidates[i+1:]...)
		}
	}
	return candidates
}

func describe(variation *catalog.Variation, fee float64, inputs map[string]string) string {
	for _, key := range []string{"phone", "meter_number", "smartcard_number"} {
		if v := inputs[key]; v != "" {
			return fmt.Sprintf("%s for %s; fee ₦%.2f", variation.Name, v, fee)
		}
	}
	return fmt.Sprintf("%s; fee ₦%.2f", variation.Name, fee)
}
