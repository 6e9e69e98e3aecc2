// Package services contains server-side business logic. This file implements
// AccountService: registration, credential login, and the lifecycle of
// session tokens (issue, resolve, revoke).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
)

// MinPasswordLength is the policy floor for plaintext passwords at signup.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AccountService provides account operations:
// - Register: validate and create users, storing only a password hash
// - Login: verify credentials with a uniform failure for bad email or password
// - IssueSession / ResolveSession / RevokeSession: session token lifecycle
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.TokenCodec
	hasher      *auth.PasswordHasher
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		codec:       auth.NewTokenCodec([]byte(cfg.SecretKey), cfg.SessionTokenValidityDuration),
		hasher:      auth.NewPasswordHasher(cfg.BCryptCost),
	}
}

// Register validates the credentials, hashes the password, and creates the
// user. The plaintext is hashed exactly once and never stored. Duplicate
// emails yield common.ErrorEmailTaken; shape failures common.ErrorValidation.
func (s *AccountService) Register(ctx context.Context, email string, password string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email", common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password too short", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login returns the user matching email and password. Unknown email and
// wrong password are indistinguishable to the caller: both yield
// common.ErrorInvalidCredentials, and an unknown email still pays for a
// hash comparison so the two cases take similar time.
func (s *AccountService) Login(ctx context.Context, email string, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Check(password, auth.DummyHash)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

// IssueSession mints a signed token for the user and records it in the
// user's live session list. The token is only valid while that row exists.
func (s *AccountService) IssueSession(ctx context.Context, user *models.User) (string, error) {
	token, err := s.codec.Issue(user.ID, common.SessionAccessAuth)
	if err != nil {
		return "", common.ErrorInternal
	}

	repo := s.repomanager.Sessions(s.db)
	if err := repo.Add(ctx, user.ID, common.SessionAccessAuth, token); err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ResolveSession maps a presented token back to its user. The token must
// carry a valid signature, decode to an existing user with the auth access
// class, and still be present in that user's session list. Every failure
// mode collapses to common.ErrorUnauthenticated.
func (s *AccountService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	userID, access, err := s.codec.Verify(token)
	if err != nil {
		return nil, common.ErrorUnauthenticated
	}
	if access != common.SessionAccessAuth {
		return nil, common.ErrorUnauthenticated
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrorUnauthenticated
	}

	live, err := s.repomanager.Sessions(s.db).Exists(ctx, userID, access, token)
	if err != nil || !live {
		return nil, common.ErrorUnauthenticated
	}

	return user, nil
}

// RevokeSession removes the token from the user's session list. Revoking a
// token that is already gone is not an error.
func (s *AccountService) RevokeSession(ctx context.Context, user *models.User, token string) error {
	repo := s.repomanager.Sessions(s.db)
	if err := repo.Delete(ctx, user.ID, token); err != nil {
		return common.ErrorInternal
	}
	return nil
}
