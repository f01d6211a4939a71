// Package services contains server-side business logic. UserService handles
// registration, login and token verification on top of the credential store,
// the password hasher and the token issuer.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userauth/internal/shared"
)

// DB is the handle the service reads through and opens transactions on.
// *sql.DB satisfies it.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

// TokenManager issues and verifies bearer tokens.
type TokenManager interface {
	GenerateToken(userID int64, username string) (string, error)
	ParseToken(token string) (*auth.Claims, error)
}

// UserService is stateless between calls; all dependencies are injected at
// construction and only read afterwards, so one instance serves concurrent
// requests.
type UserService struct {
	db          DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenManager
	// dummyHash is compared against when the user does not exist so unknown
	// usernames cost the same as wrong passwords.
	dummyHash string
}

func NewUserService(db DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenManager) (*UserService, error) {
	secret, err := shared.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummy, err := hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash:   dummy,
	}, nil
}

// Register creates a user with a freshly salted password hash. The lookup
// and the insert share one transaction; a concurrent insert that wins the
// race still surfaces as common.ErrConflict through the unique index.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrValidation
	}

	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByUsername(ctx, username)
		if err == nil {
			return common.ErrConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}

		created, err = repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.User{ID: created.ID, UserName: created.UserName, CreatedAt: created.CreatedAt}, nil
}

// Login checks the credentials and returns a signed token. Unknown users and
// wrong passwords both yield common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Compare(s.dummyHash, password)
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return "", common.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(user.ID, user.UserName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return token, nil
}

// Verify validates signature and expiry of token and returns its claims.
// Every failure is reported as common.ErrUnauthorized wrapping the cause.
func (s *UserService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, common.ErrInvalidToken)
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	return claims, nil
}
