package leads

import (
	"context"
	"net/url"
	"time"

	"github.com/jonathan/studentjobs/internal/types"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single notification attempt.
const DefaultTimeout = 10 * time.Second

// Service records submitted leads and notifies about employer leads.
type Service struct {
	notifier Notifier
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewService creates a Service. A non-positive timeout selects DefaultTimeout.
func NewService(notifier Notifier, logger *zap.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{notifier: notifier, logger: logger, timeout: timeout, now: time.Now}
}

// SubmitEmployer parses, logs and notifies about an employer lead. Validation
// problems and notification failures are logged, never returned: the visitor
// is always acknowledged.
func (s *Service) SubmitEmployer(ctx context.Context, form url.Values) types.EmployerLead {
	lead := ParseEmployerLead(form, s.now())

	s.logger.Info("Employer lead received",
		zap.String("lead_id", lead.ID),
		zap.String("company", lead.Company),
		zap.String("title", lead.Title),
		zap.String("email", lead.Email),
		zap.String("category", lead.Category))
	if err := lead.Validate(); err != nil {
		s.logger.Warn("Employer lead is incomplete", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	msg, err := EmployerMessage(lead)
	if err != nil {
		s.logger.Warn("Failed to render employer lead notification", zap.String("lead_id", lead.ID), zap.Error(err))
		return lead
	}
	s.dispatch(ctx, lead.ID, msg)
	return lead
}

// SubmitNewsletter parses and logs a newsletter signup.
func (s *Service) SubmitNewsletter(_ context.Context, form url.Values) types.NewsletterSignup {
	signup := ParseNewsletterSignup(form, s.now())

	s.logger.Info("Newsletter signup received",
		zap.String("lead_id", signup.ID),
		zap.String("email", signup.Email),
		zap.String("city", signup.City))
	if err := signup.Validate(); err != nil {
		s.logger.Warn("Newsletter signup is incomplete", zap.String("lead_id", signup.ID), zap.Error(err))
	}
	return signup
}

// dispatch runs detached from the request so a client disconnect does not
// abort delivery, bounded by the service timeout.
func (s *Service) dispatch(ctx context.Context, leadID string, msg Message) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Warn("Lead notification failed",
			zap.String("lead_id", leadID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	s.logger.Debug("Lead notification sent", zap.String("lead_id", leadID), zap.Duration("elapsed", time.Since(start)))
}
