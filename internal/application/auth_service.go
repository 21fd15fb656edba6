package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	repo "github.com/ipdr-analysis/auth-server/internal/domain/repository"
	"github.com/ipdr-analysis/auth-server/pkg/helpers"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

const (
	reasonUserNotFound    = "User not found"
	reasonInvalidPassword = "Invalid password"
)

// AuditMirror receives a copy of every audit entry after it has been persisted.
type AuditMirror interface {
	IndexLoginLog(ctx context.Context, entry entity.LoginLog) error
}

// LockoutNotifier is told when an account crosses the failed-login threshold.
type LockoutNotifier interface {
	NotifyAccountLocked(ctx context.Context, u *entity.User, ip string) error
}

// AuthService composes the credential store, audit log, password policy and
// token service into the register/login/refresh/logout/me/logs operations.
type AuthService struct {
	Users     repo.UserRepository
	LoginLogs repo.LoginLogRepository
	Tokens    *TokenService
	Logger    *logrus.Logger

	// Optional collaborators; nil disables them.
	Mirror   AuditMirror
	Notifier LockoutNotifier

	// HashCost overrides helpers.BcryptCost when non-zero.
	HashCost int
	Now      func() time.Time
	NewID    func() string

	loginLocks keyedMutex
}

func NewAuthService(users repo.UserRepository, logs repo.LoginLogRepository, tokens *TokenService, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:     users,
		LoginLogs: logs,
		Tokens:    tokens,
		Logger:    logger,
		Now:       time.Now,
		NewID:     newTimeOrderedID,
	}
}

// newTimeOrderedID returns a UUIDv7 so ids sort by creation time.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	IPAddress string
	Location  string
}

type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	Location  string
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	User   entity.PublicUser
	Tokens helpers.TokenPair
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return newTimeOrderedID()
}

func (s *AuthService) hashCost() int {
	if s.HashCost != 0 {
		return s.HashCost
	}
	return helpers.BcryptCost
}

func (s *AuthService) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

// audit persists an entry and mirrors it. Persist failures are logged and returned.
func (s *AuthService) audit(ctx context.Context, entry entity.LoginLog) error {
	entry.ID = s.newID()
	entry.Timestamp = s.now()
	if err := s.LoginLogs.Append(ctx, &entry); err != nil {
		s.log().WithError(err).WithFields(logrus.Fields{
			"action":  entry.Action,
			"user_id": entry.UserID,
		}).Error("write login log failed")
		return fmt.Errorf("%w: %w", ErrLogWrite, err)
	}
	if s.Mirror != nil {
		if err := s.Mirror.IndexLoginLog(ctx, entry); err != nil {
			s.log().WithError(err).WithField("log_id", entry.ID).Warn("mirror login log failed")
		}
	}
	return nil
}

func validateRegistration(in RegisterInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return &FieldError{Message: "All fields are required"}
	}
	if !emailPattern.MatchString(in.Email) {
		return &FieldError{Field: "email", Message: "Invalid email format"}
	}
	if !usernamePattern.MatchString(in.Username) {
		return &FieldError{Field: "username", Message: "Username must be 3-20 characters, alphanumeric with underscores"}
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return &FieldError{Field: "password", Message: fmt.Sprintf("Password must be at most %d bytes", helpers.MaxPasswordBytes)}
	}
	return nil
}

// Register creates a user, records the event and signs the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.Users.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrConflict
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, storeFailure(err)
	}

	strength := helpers.CheckPasswordStrength(in.Password)
	if !strength.Acceptable() {
		return nil, &WeakPasswordError{Strength: strength}
	}

	hash, err := helpers.HashPasswordWithCost(in.Password, s.hashCost())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:               s.newID(),
		Username:         in.Username,
		Email:            in.Email,
		PasswordHash:     hash,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Role:             entity.RoleUser,
		IPAddress:        in.IPAddress,
		Location:         in.Location,
		RegistrationDate: s.now(),
		IsActive:         true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateIdentity) {
			return nil, ErrConflict
		}
		return nil, storeFailure(err)
	}

	if err := s.audit(ctx, entity.LoginLog{
		UserID:    u.ID,
		Action:    entity.ActionRegister,
		IPAddress: in.IPAddress,
		Location:  in.Location,
		Success:   true,
	}); err != nil {
		return nil, err
	}

	pair, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	authStats.Add(statRegister, 1)
	s.log().WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	return &AuthResult{User: u.Sanitize(), Tokens: pair}, nil
}

// Login checks credentials and applies the lockout policy. Unknown users and
// wrong passwords both surface as ErrInvalidCredentials; only the audit log
// tells them apart.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, &FieldError{Message: "Username and password are required"}
	}

	unlock := s.loginLocks.Lock(in.Username)
	defer unlock()

	u, err := s.Users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repo.ErrNotFound) {
		authStats.Add(statLoginFailure, 1)
		if err := s.audit(ctx, entity.LoginLog{
			UserID:    entity.UnknownUserID,
			Action:    entity.ActionLogin,
			IPAddress: in.IPAddress,
			Location:  in.Location,
			Reason:    reasonUserNotFound,
		}); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	if u.AccountLocked {
		return nil, ErrAccountLocked
	}
	if !u.IsActive {
		return nil, ErrAccountDeactivated
	}

	if !helpers.CompareHashAndPassword(u.PasswordHash, in.Password) {
		return nil, s.failLogin(ctx, u, in)
	}

	u.RecordSuccessfulLogin(s.now())
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, storeFailure(err)
	}
	if err := s.audit(ctx, entity.LoginLog{
		UserID:    u.ID,
		Action:    entity.ActionLogin,
		IPAddress: in.IPAddress,
		Location:  in.Location,
		Success:   true,
	}); err != nil {
		return nil, err
	}

	pair, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	authStats.Add(statLoginSuccess, 1)
	return &AuthResult{User: u.Sanitize(), Tokens: pair}, nil
}

func (s *AuthService) failLogin(ctx context.Context, u *entity.User, in LoginInput) error {
	authStats.Add(statLoginFailure, 1)
	locked := u.RecordFailedLogin()
	if err := s.Users.Update(ctx, u); err != nil {
		return storeFailure(err)
	}

	attempts := u.FailedLoginAttempts
	if err := s.audit(ctx, entity.LoginLog{
		UserID:         u.ID,
		Action:         entity.ActionLogin,
		IPAddress:      in.IPAddress,
		Location:       in.Location,
		Reason:         reasonInvalidPassword,
		FailedAttempts: &attempts,
	}); err != nil {
		return err
	}

	if locked {
		authStats.Add(statAccountLocked, 1)
		s.log().WithFields(logrus.Fields{"user_id": u.ID, "attempts": attempts}).Warn("account locked")
		if s.Notifier != nil {
			if err := s.Notifier.NotifyAccountLocked(ctx, u, in.IPAddress); err != nil {
				s.log().WithError(err).WithField("user_id", u.ID).Warn("lockout notification failed")
			}
		}
	}
	return ErrInvalidCredentials
}

// Refresh returns a new access token for a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.Tokens.RefreshAccess(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	authStats.Add(statRefreshSuccess, 1)
	return access, nil
}

// Logout acknowledges a client-side sign out. The refresh token is NOT revoked
// and stays valid until it expires. A verifiable token gets a logout audit entry.
func (s *AuthService) Logout(ctx context.Context, refreshToken, ip string) {
	authStats.Add(statLogout, 1)
	if refreshToken == "" {
		return
	}
	c, err := s.Tokens.Verify(refreshToken, RefreshToken)
	if err != nil {
		return
	}
	// logout has no failure mode for the caller
	_ = s.audit(ctx, entity.LoginLog{
		UserID:    c.UserID,
		Action:    entity.ActionLogout,
		IPAddress: ip,
		Success:   true,
	})
}

// Me resolves the active user behind an access token.
func (s *AuthService) Me(ctx context.Context, accessToken string) (entity.PublicUser, error) {
	u, err := s.Tokens.ResolveUser(ctx, accessToken, AccessToken)
	if err != nil {
		return entity.PublicUser{}, err
	}
	return u.Sanitize(), nil
}

// Logs returns the whole audit trail, oldest first.
func (s *AuthService) Logs(ctx context.Context) ([]entity.LoginLog, error) {
	logs, err := s.LoginLogs.List(ctx)
	if err != nil {
		s.log().WithError(err).Error("read login logs failed")
		return nil, storeFailure(err)
	}
	return logs, nil
}
