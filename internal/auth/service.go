// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sophiachat/sophia-tui/internal/api"
)

// =============================================================================
// OTP PURPOSES
// =============================================================================

// OTPPurpose tells the backend which flow a verification code belongs to.
type OTPPurpose string

const (
	OTPRegister       OTPPurpose = "register"
	OTPForgotPassword OTPPurpose = "forgot_password"
)

// ResendCooldown is the minimum gap between OTP resend requests for one
// email address. The UI shows a matching countdown; the limiter here is
// the enforcement.
const ResendCooldown = 60 * time.Second

// =============================================================================
// SERVICE
// =============================================================================

// Service maps account operations onto backend calls. Each operation is
// one request; none retries. Failures carry a user-readable message from
// the backend payload when one was present.
type Service struct {
	client *api.Client
	store  *Store

	mu       sync.Mutex
	resend   map[string]*rate.Limiter
	lastSent map[string]time.Time
}

// NewService creates an auth service bound to the given client and store.
func NewService(client *api.Client, store *Store) *Service {
	return &Service{
		client:   client,
		store:    store,
		resend:   make(map[string]*rate.Limiter),
		lastSent: make(map[string]time.Time),
	}
}

// Store returns the session store the service writes into.
func (s *Service) Store() *Store {
	return s.store
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

type loginPayload struct {
	ID     string `json:"_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Token  string `json:"token"`
}

// Login authenticates and populates the session store. A 200 response
// without a token is a failure, not a degraded success.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, api.NewValidationError("password is required")
	}

	var payload loginPayload
	_, err := s.client.Post(ctx, "/account/login", map[string]string{
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Token == "" {
		return nil, api.NewDecodeError("login response has no token", nil)
	}

	user := &User{
		ID:        payload.ID,
		Email:     payload.Email,
		Name:      payload.Name,
		AvatarURL: payload.Avatar,
	}
	s.store.SetUser(user)
	s.store.SetAccessToken(payload.Token)
	return s.store.GetUser(), nil
}

// Register creates an account. It does NOT log the user in; the caller
// routes to OTP verification next. Returns the backend's confirmation
// message.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	msg, err := s.client.Post(ctx, "/account/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		return "", err
	}
	return msg, nil
}

// =============================================================================
// OTP VERIFICATION
// =============================================================================

// successFlag catches backends that answer 200 with an explicit
// success=false payload.
type successFlag struct {
	Success *bool `json:"success"`
}

func (f successFlag) failed() bool {
	return f.Success != nil && !*f.Success
}

// VerifyOTP submits a verification code. Success means a 2xx response
// whose payload does not carry success=false; everything else is an
// error surfaced to the caller.
func (s *Service) VerifyOTP(ctx context.Context, email, code string, purpose OTPPurpose) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateOTP(code); err != nil {
		return err
	}

	var flag successFlag
	msg, err := s.client.Post(ctx, "/account/verifyOTP", map[string]string{
		"email": email,
		"otp":   code,
		"type":  string(purpose),
	}, &flag)
	if err != nil {
		return err
	}
	if flag.failed() {
		return &api.ClientError{Type: api.ErrTypeHTTP, Message: nonEmpty(msg, "verification failed")}
	}
	return nil
}

// ResendOTP requests a fresh code. At most one request per email per
// ResendCooldown; a premature retry is rejected locally.
func (s *Service) ResendOTP(ctx context.Context, email string, purpose OTPPurpose) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if !s.allowResend(email) {
		return api.NewValidationError("please wait before requesting another code")
	}

	var flag successFlag
	msg, err := s.client.Post(ctx, "/account/resendOTPtoEmail", map[string]string{
		"email": email,
		"type":  string(purpose),
	}, &flag)
	if err != nil {
		return err
	}
	if flag.failed() {
		return &api.ClientError{Type: api.ErrTypeHTTP, Message: nonEmpty(msg, "could not resend code")}
	}
	return nil
}

func (s *Service) allowResend(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.resend[email]
	if !ok {
		lim = rate.NewLimiter(rate.Every(ResendCooldown), 1)
		s.resend[email] = lim
	}
	if !lim.Allow() {
		return false
	}
	s.lastSent[email] = time.Now()
	return true
}

// ResendRemaining reports how long until another resend is allowed for
// email. Zero means allowed now.
func (s *Service) ResendRemaining(email string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastSent[email]
	if !ok {
		return 0
	}
	remaining := ResendCooldown - time.Since(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// PASSWORD RESET
// =============================================================================

// SendOTPForgotPassword starts the reset flow by mailing a code.
func (s *Service) SendOTPForgotPassword(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	_, err := s.client.Post(ctx, "/account/otp-reset-pass", map[string]string{
		"email": email,
	}, nil)
	return err
}

// ResetPassword sets a new password given a valid reset code.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateOTP(code); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	_, err := s.client.Post(ctx, "/account/resetPassword", map[string]string{
		"email":       email,
		"otp":         code,
		"newPassword": newPassword,
	}, nil)
	return err
}

// =============================================================================
// PROFILE
// =============================================================================

// ChangePassword replaces the logged-in user's password.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	user := s.store.GetUser()
	if user == nil {
		return api.ErrUnauthorized
	}
	if currentPassword == "" {
		return api.NewValidationError("current password is required")
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	_, err := s.client.Put(ctx, "/account/change-password/"+user.ID, map[string]string{
		"currentPass": currentPassword,
		"newPass":     newPassword,
	}, nil)
	return err
}

// UpdateName changes the display name and mirrors it into the store.
func (s *Service) UpdateName(ctx context.Context, name string) error {
	user := s.store.GetUser()
	if user == nil {
		return api.ErrUnauthorized
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	_, err := s.client.Put(ctx, "/account/update/"+user.ID, map[string]string{
		"name": name,
	}, nil)
	if err != nil {
		return err
	}
	s.store.UpdateName(name)
	return nil
}

type avatarPayload struct {
	AvatarURL string `json:"avatarUrl"`
}

// UploadAvatar sends an image file as multipart form data and returns
// the new avatar URL, which is also mirrored into the store.
func (s *Service) UploadAvatar(ctx context.Context, path string) (string, error) {
	if s.store.GetUser() == nil {
		return "", api.ErrUnauthorized
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", api.NewValidationError("cannot read file: " + path)
	}

	var payload avatarPayload
	_, err = s.client.PostMultipart(ctx, "/account/avatar", nil, []api.MultipartFile{
		{Field: "avatar", Filename: path, Content: content},
	}, &payload)
	if err != nil {
		return "", err
	}
	if payload.AvatarURL == "" {
		return "", api.NewDecodeError("avatar response has no url", nil)
	}
	s.store.UpdateAvatar(payload.AvatarURL)
	return payload.AvatarURL, nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
