package payment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/neighborfit/neighborfit/internal/activity"
)

// ErrFreeActivity is returned when a checkout is requested for an
// activity that costs nothing.
var ErrFreeActivity = errors.New("activity is free, no payment required")

// Rollback undoes the optimistic join for an activity after the payment
// provider reports a failure.
type Rollback func(activityID string) error

// Service coordinates paid joins: it records a pending payment, asks the
// provider for a checkout session, and rolls the join back when the
// provider reports failure. The local join itself never blocks on any of
// this.
type Service struct {
	client   Client
	repo     Repository
	rollback Rollback

	currency   string
	successURL string
	cancelURL  string
}

// NewService creates a payment service. currency is the ISO code used
// for all bookings (the demo platform charges in INR).
func NewService(client Client, repo Repository, rollback Rollback, currency, successURL, cancelURL string) *Service {
	return &Service{
		client:     client,
		repo:       repo,
		rollback:   rollback,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// RequestJoinPayment creates a pending payment record and a checkout
// session for a paid activity. The caller has already applied the
// optimistic join; the returned record tracks the confirmation.
func (s *Service) RequestJoinPayment(a *activity.Activity) (*Record, error) {
	if !a.Paid() {
		return nil, ErrFreeActivity
	}

	record := &Record{
		ActivityID: a.ID,
		Status:     StatusPending,
		Amount:     a.Price * 100, // rupees to paise
		Currency:   s.currency,
	}
	if err := s.repo.Insert(record); err != nil {
		return nil, fmt.Errorf("failed to insert payment record: %w", err)
	}

	sess, err := s.client.CreateCheckoutSession(&CheckoutParams{
		ActivityID:    a.ID,
		ActivityTitle: a.Title,
		Amount:        record.Amount,
		Currency:      s.currency,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
	})
	if err != nil {
		// Checkout never started, so the optimistic join cannot be
		// confirmed. Mark failed and roll back immediately.
		if failErr := s.markResult(record.ID, StatusFailed); failErr != nil {
			slog.Error("failed to mark payment record failed", "record_id", record.ID, "error", failErr)
		}
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	record.SessionID = sess.ID
	if err := s.repo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to attach session to payment record: %w", err)
	}

	slog.Info("payment requested for paid activity",
		"activity_id", a.ID,
		"record_id", record.ID,
		"amount", record.Amount,
		"currency", record.Currency,
	)
	return record, nil
}

// HandleResult applies the provider's opaque success/failure callback to
// the payment record. A failure rolls back the optimistic join. Results
// for records already in a terminal state are ignored.
func (s *Service) HandleResult(recordID string, succeeded bool) error {
	record, err := s.repo.GetByID(recordID)
	if err != nil {
		return err
	}
	if record.Terminal() {
		return nil
	}

	status := StatusSucceeded
	if !succeeded {
		status = StatusFailed
	}
	if err := s.markResult(recordID, status); err != nil {
		return err
	}

	if !succeeded && s.rollback != nil {
		if err := s.rollback(record.ActivityID); err != nil {
			return fmt.Errorf("failed to roll back join for activity %s: %w", record.ActivityID, err)
		}
		slog.Info("rolled back join after payment failure",
			"activity_id", record.ActivityID,
			"record_id", recordID,
		)
	}
	return nil
}

func (s *Service) markResult(recordID, status string) error {
	record, err := s.repo.GetByID(recordID)
	if err != nil {
		return err
	}
	record.Status = status
	return s.repo.Update(record)
}
