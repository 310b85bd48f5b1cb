package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/logging"
)

const (
	OTPLength = 6

	MsgOTPSent       = "OTP sent to your email!"
	MsgLoginSuccess  = "Login successful!"
	msgMissingFields = "Username and password are required"
	msgOTPLength     = "OTP must be 6 digits"
	msgBadCreds      = "Invalid credentials"
	msgBadOTP        = "Invalid OTP"
	msgLoginConnect  = "Failed to connect to server"
	msgOTPConnect    = "Failed to verify OTP"
	msgExpired       = "Session expired, please log in again"
)

// Authenticator is the part of the backend client the login handshake uses.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.LoginResult, error)
	VerifyOTP(ctx context.Context, otp string) (*client.VerifyResult, error)
}

type Options struct {
	// ConfirmDelay is how long "Login successful!" stays up before the
	// dashboard takes over.
	ConfirmDelay time.Duration
	Now          func() time.Time
}

// Controller owns the login handshake and the authenticated session.
type Controller struct {
	auth  Authenticator
	store Store
	opts  Options

	mu          sync.Mutex
	stage       domain.Stage
	token       string
	user        json.RawMessage
	maskedEmail string

	busy atomic.Bool

	listenerMu    sync.Mutex
	onVerified    []func()
	onAuth        []func()
	onInvalidated []func(reason string)
}

func NewController(auth Authenticator, store Store, opts Options) *Controller {
	if store == nil {
		store = NewMemoryStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{auth: auth, store: store, opts: opts}
}

// OnVerified registers fn to run as soon as the OTP is accepted, before the
// confirmation delay.
func (c *Controller) OnVerified(fn func()) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.onVerified = append(c.onVerified, fn)
}

// OnAuthenticated registers fn to run once a login completes, after the
// confirmation delay.
func (c *Controller) OnAuthenticated(fn func()) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.onAuth = append(c.onAuth, fn)
}

// OnInvalidated registers fn to run whenever the session ends.
func (c *Controller) OnInvalidated(fn func(reason string)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.onInvalidated = append(c.onInvalidated, fn)
}

func (c *Controller) Stage() domain.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// MaskedEmail is the destination the backend reported for the OTP mail.
func (c *Controller) MaskedEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maskedEmail
}

// User returns the opaque user blob of the authenticated session.
func (c *Controller) User() json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	return append(json.RawMessage(nil), c.user...)
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Restore picks up a session persisted by an earlier run. An expired token
// is cleared from the store.
func (c *Controller) Restore(ctx context.Context) error {
	logger := logging.NewLogger(ctx)

	stored, err := c.store.Load(ctx)
	if err != nil {
		logger.LogError("session_restore", err)
		return err
	}
	if stored == nil || stored.Token == "" {
		return nil
	}

	if tokenExpired(stored.Token, c.opts.Now()) {
		logger.LogInfof("session_restore", "stored token expired, clearing")
		if err := c.store.Clear(ctx); err != nil {
			logger.LogError("session_restore", err)
		}
		return nil
	}

	c.mu.Lock()
	c.stage = domain.StageAuthenticated
	c.token = stored.Token
	c.user = stored.User
	c.maskedEmail = ""
	c.mu.Unlock()

	logger.LogInfof("session_restore", "restored session")
	return nil
}

// SubmitCredentials runs step one of the handshake.
func (c *Controller) SubmitCredentials(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.NewValidationError(msgMissingFields)
	}
	if c.Stage() != domain.StageAwaitingCredentials {
		return domain.ErrWrongStage
	}
	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	defer c.busy.Store(false)

	res, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return handshakeError(err, msgBadCreds, msgLoginConnect)
	}

	c.mu.Lock()
	c.stage = domain.StageAwaitingOTP
	c.maskedEmail = res.MaskedEmail
	c.mu.Unlock()
	return nil
}

// SanitizeOTP keeps the digits of input, at most OTPLength of them.
func SanitizeOTP(input string) string {
	var b strings.Builder
	for _, r := range input {
		if b.Len() == OTPLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SubmitOTP runs step two of the handshake. On success the session is
// persisted, and listeners fire after the confirmation delay.
func (c *Controller) SubmitOTP(ctx context.Context, code string) error {
	otp := SanitizeOTP(code)
	if len(otp) != OTPLength {
		return domain.NewValidationError(msgOTPLength)
	}
	if c.Stage() != domain.StageAwaitingOTP {
		return domain.ErrWrongStage
	}
	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}

	res, err := c.auth.VerifyOTP(ctx, otp)
	if err != nil {
		c.busy.Store(false)
		return handshakeError(err, msgBadOTP, msgOTPConnect)
	}

	if err := c.store.Save(ctx, domain.StoredSession{Token: res.Token, User: res.User}); err != nil {
		// the session still works for this run
		logging.NewLogger(ctx).LogError("session_persist", err)
	}

	c.mu.Lock()
	c.stage = domain.StageAuthenticated
	c.token = res.Token
	c.user = res.User
	c.maskedEmail = ""
	c.mu.Unlock()
	c.busy.Store(false)

	c.notify(&c.onVerified)
	c.wait(ctx, c.opts.ConfirmDelay)
	c.notify(&c.onAuth)
	return nil
}

// BackToLogin abandons a pending OTP step.
func (c *Controller) BackToLogin() error {
	if c.busy.Load() {
		return domain.ErrBusy
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != domain.StageAwaitingOTP {
		return domain.ErrWrongStage
	}
	c.stage = domain.StageAwaitingCredentials
	c.maskedEmail = ""
	return nil
}

// Token returns the bearer token of the authenticated session. An expired
// JWT ends the session instead.
func (c *Controller) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	stage, token := c.stage, c.token
	c.mu.Unlock()

	if stage != domain.StageAuthenticated || token == "" {
		return "", domain.ErrNotAuthenticated
	}
	if tokenExpired(token, c.opts.Now()) {
		c.Invalidate(ctx, "token expired")
		return "", domain.NewError(domain.KindAuthorization, msgExpired, nil)
	}
	return token, nil
}

func (c *Controller) Logout(ctx context.Context) {
	c.end(ctx, "logout")
}

// Invalidate ends the session after the backend rejected the token.
func (c *Controller) Invalidate(ctx context.Context, reason string) {
	c.end(ctx, reason)
}

func (c *Controller) end(ctx context.Context, reason string) {
	logger := logging.NewLogger(ctx)
	if err := c.store.Clear(ctx); err != nil {
		logger.LogError("session_clear", err)
	}

	c.mu.Lock()
	c.stage = domain.StageAwaitingCredentials
	c.token = ""
	c.user = nil
	c.maskedEmail = ""
	c.mu.Unlock()

	logger.LogInfof("session_end", "reason=%s", reason)

	c.listenerMu.Lock()
	listeners := append([]func(string){}, c.onInvalidated...)
	c.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(reason)
	}
}

func (c *Controller) notify(list *[]func()) {
	c.listenerMu.Lock()
	listeners := append([]func(){}, *list...)
	c.listenerMu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (c *Controller) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func handshakeError(err error, rejected, unreachable string) error {
	if errors.Is(err, client.ErrUnreachable) {
		return domain.NewError(domain.KindConnectivity, unreachable, err)
	}
	msg := client.BackendMessage(err)
	if msg == "" {
		msg = rejected
	}
	return domain.NewError(domain.KindAuthentication, msg, err)
}
