package account

import (
	"context"
	"regexp"

	"papa-pizza/internal/logger"

	"go.uber.org/zap"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)

// Service is the account authority: registration, credential checks and the
// privilege guard every gated operation runs through.
type Service interface {
	Register(ctx context.Context, acting Session, username, password string, grantAdmin bool) (Account, error)
	Login(ctx context.Context, username, password string) (Session, Account, error)
	// Current resolves the session's account, or ErrNotAuthenticated.
	Current(ctx context.Context, sess Session) (Account, error)
	// Require fails with ErrNotAuthenticated or ErrInsufficientPrivilege.
	// Privilege is re-read from the store so a demotion takes effect
	// immediately, not at next login.
	Require(ctx context.Context, sess Session, level Privilege) (Account, error)
	IsAdmin(ctx context.Context, sess Session) bool
	List(ctx context.Context) ([]Account, error)
	Promote(ctx context.Context, id int) error
	Demote(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	secret   []byte
	throttle *loginThrottle
}

func NewService(repo Repository, sessionSecret string) Service {
	return &service{
		repo:     repo,
		secret:   []byte(sessionSecret),
		throttle: newLoginThrottle(),
	}
}

func (s *service) Register(ctx context.Context, acting Session, username, password string, grantAdmin bool) (Account, error) {
	log := logger.FromCtx(ctx)

	if !usernamePattern.MatchString(username) {
		return Account{}, ErrInvalidUsername
	}
	if len(password) < 4 {
		return Account{}, ErrPasswordTooShort
	}

	level := PrivilegeUser
	if grantAdmin {
		// only an admin session may mint another admin
		if _, err := s.Require(ctx, acting, PrivilegeAdmin); err != nil {
			return Account{}, err
		}
		level = PrivilegeAdmin
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return Account{}, err
	}

	acc, err := s.repo.Create(ctx, username, hashed, level)
	if err != nil {
		log.Error("failed to create account", zap.String("username", username), zap.Error(err))
		return Account{}, err
	}

	log.Info("account registered",
		zap.Int("account_id", acc.ID),
		zap.String("username", acc.Username),
		zap.String("privilege", acc.Privilege.String()),
	)
	return acc, nil
}

func (s *service) Login(ctx context.Context, username, password string) (Session, Account, error) {
	log := logger.FromCtx(ctx)

	if !s.throttle.allow(username) {
		log.Warn("login throttled", zap.String("username", username))
		return Session{}, Account{}, ErrTooManyAttempts
	}

	acc, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return Session{}, Account{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, acc.Password) {
		log.Warn("password mismatch", zap.String("username", username))
		return Session{}, Account{}, ErrInvalidCredentials
	}

	token, err := issueSessionToken(s.secret, acc)
	if err != nil {
		log.Error("failed to issue session token", zap.Error(err))
		return Session{}, Account{}, err
	}

	log.Info("login successful",
		zap.Int("account_id", acc.ID),
		zap.String("privilege", acc.Privilege.String()),
	)
	return Session{Token: token}, acc, nil
}

func (s *service) Current(ctx context.Context, sess Session) (Account, error) {
	if sess.IsAnonymous() {
		return Account{}, ErrNotAuthenticated
	}
	claims, err := parseSessionToken(s.secret, sess.Token)
	if err != nil {
		return Account{}, ErrNotAuthenticated
	}
	return s.repo.FindByID(ctx, claims.AccountID)
}

func (s *service) Require(ctx context.Context, sess Session, level Privilege) (Account, error) {
	acc, err := s.Current(ctx, sess)
	if err != nil {
		return Account{}, ErrNotAuthenticated
	}
	if acc.Privilege < level {
		return Account{}, ErrInsufficientPrivilege
	}
	return acc, nil
}

func (s *service) IsAdmin(ctx context.Context, sess Session) bool {
	_, err := s.Require(ctx, sess, PrivilegeAdmin)
	return err == nil
}

func (s *service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *service) Promote(ctx context.Context, id int) error {
	return s.repo.SetPrivilege(ctx, id, PrivilegeAdmin)
}

func (s *service) Demote(ctx context.Context, id int) error {
	return s.repo.SetPrivilege(ctx, id, PrivilegeUser)
}
