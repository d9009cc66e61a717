// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/dailyhub/internal/app/store/audit"
	"github.com/dalemusser/dailyhub/internal/app/system/metrics"
	"github.com/dalemusser/dailyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Destinations accepted by Config.Auth.
const (
	DestAll = "all" // MongoDB + zap
	DestDB  = "db"  // MongoDB only
	DestLog = "log" // zap only
	DestOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (register, login, password reset).
	Auth string
}

// EventWriter persists audit events. *audit.Store satisfies it.
type EventWriter interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to MongoDB (via EventWriter) and structured logs (via zap).
type Logger struct {
	store   EventWriter
	zapLog  *zap.Logger
	config  Config
	metrics *metrics.Metrics
}

// New creates a new audit Logger.
func New(store EventWriter, zapLog *zap.Logger, config Config) *Logger {
	if config.Auth == "" {
		config.Auth = DestAll
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// WithMetrics makes every logged auth event also bump the auth counter.
func (l *Logger) WithMetrics(m *metrics.Metrics) *Logger {
	l.metrics = m
	return l
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so handlers under test can skip auditing.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	l.metrics.AuthEvent(event.EventType, event.Success)

	setting := l.config.Auth
	if event.Category != audit.CategoryAuth && event.Category != audit.CategorySecurity {
		setting = DestAll
	}
	if setting == DestOff {
		return
	}

	if setting == DestAll || setting == DestLog {
		l.logToZap(event)
	}

	if (setting == DestAll || setting == DestDB) && l.store != nil {
		wctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()
		if err := l.store.Log(wctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, eventType string, success bool) audit.Event {
	return audit.Event{
		Category:  audit.CategoryAuth,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
}

// --- Authentication Events ---

// Registered logs a new account.
func (l *Logger) Registered(ctx context.Context, r *http.Request, userID, email string) {
	e := fromRequest(r, audit.EventRegistered, true)
	e.UserID, e.Email = userID, email
	l.Log(ctx, e)
}

// RegisterFailedDuplicate logs a registration refused because the email exists.
func (l *Logger) RegisterFailedDuplicate(ctx context.Context, r *http.Request, email string) {
	e := fromRequest(r, audit.EventRegisterFailedDuplicate, false)
	e.Email = email
	e.FailureReason = "email already registered"
	l.Log(ctx, e)
}

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, email string) {
	e := fromRequest(r, audit.EventLoginSuccess, true)
	e.UserID, e.Email = userID, email
	l.Log(ctx, e)
}

// LoginFailedUserNotFound logs a login for an email with no account.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	e := fromRequest(r, audit.EventLoginFailedUserNotFound, false)
	e.Email = attemptedEmail
	e.FailureReason = "user not found"
	l.Log(ctx, e)
}

// LoginFailedWrongPassword logs a login with the wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID, email string) {
	e := fromRequest(r, audit.EventLoginFailedWrongPassword, false)
	e.UserID, e.Email = userID, email
	e.FailureReason = "wrong password"
	l.Log(ctx, e)
}

// LoginFailedRateLimit logs a request turned away by the auth limiter.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request) {
	e := fromRequest(r, audit.EventLoginFailedRateLimit, false)
	e.Category = audit.CategorySecurity
	e.FailureReason = "rate limit exceeded"
	e.Details = map[string]string{"path": r.URL.Path}
	l.Log(ctx, e)
}

// PasswordResetRequested logs issuance of a reset token for a known account.
func (l *Logger) PasswordResetRequested(ctx context.Context, r *http.Request, userID, email string) {
	e := fromRequest(r, audit.EventPasswordResetRequested, true)
	e.UserID, e.Email = userID, email
	l.Log(ctx, e)
}

// PasswordReset logs a completed password reset.
func (l *Logger) PasswordReset(ctx context.Context, r *http.Request, userID, email string) {
	e := fromRequest(r, audit.EventPasswordReset, true)
	e.UserID, e.Email = userID, email
	l.Log(ctx, e)
}

// PasswordResetFailed logs a rejected reset token.
func (l *Logger) PasswordResetFailed(ctx context.Context, r *http.Request, reason string) {
	e := fromRequest(r, audit.EventPasswordResetFailed, false)
	e.FailureReason = reason
	l.Log(ctx, e)
}
