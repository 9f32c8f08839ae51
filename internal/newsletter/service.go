// Package newsletter handles subscription signups and the admin subscriber
// list.
package newsletter

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/metrics"
	"github.com/halcyonpress/halcyon/internal/models"
	"github.com/halcyonpress/halcyon/internal/sanitize"
)

// emailPattern is deliberately simple: one @, no whitespace, a dot in the
// domain. Real validation happens when the confirmation email goes out.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	maxEmailLen      = 254
	maxSourcePathLen = 300
)

// ErrInvalidEmail is rejected before the backend is ever contacted.
var ErrInvalidEmail = errors.New("newsletter: invalid email address")

// SubscriberStore is the slice of the backend this service needs.
type SubscriberStore interface {
	ListSubscribers(ctx context.Context) ([]map[string]any, error)
	InsertSubscriber(ctx context.Context, s models.NewsletterSubscriber) error
}

// Service validates and records signups.
type Service struct {
	store SubscriberStore
	now   func() time.Time
}

func NewService(store SubscriberStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Subscribe records a signup. Emails are lowercased; a duplicate email is a
// success (the backend keeps the existing row), so resubmitting a form never
// errors.
func (s *Service) Subscribe(ctx context.Context, email, sourcePath string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLen || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	sourcePath = strings.TrimSpace(sourcePath)
	if len(sourcePath) > maxSourcePathLen || !strings.HasPrefix(sourcePath, "/") {
		sourcePath = ""
	}

	sub := models.NewsletterSubscriber{
		ID:          uuid.NewString(),
		Email:       email,
		SubmittedAt: s.now().UTC(),
		SourcePath:  sourcePath,
	}
	if err := s.store.InsertSubscriber(ctx, sub); err != nil {
		metrics.BackendErrors.WithLabelValues("newsletter_subscribers").Inc()
		return err
	}
	metrics.NewsletterSignups.Inc()
	return nil
}

// List returns subscribers descending by submission time. Admin only.
func (s *Service) List(ctx context.Context, sess *auth.Session) ([]models.NewsletterSubscriber, error) {
	if err := auth.CanManageSite(sess).Err(); err != nil {
		return nil, err
	}
	rows, err := s.store.ListSubscribers(ctx)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("newsletter_subscribers").Inc()
		return nil, err
	}
	return sanitize.Subscribers(rows), nil
}
