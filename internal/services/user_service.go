package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
	"github.com/hackmap/engine/pkg/logger"
	"github.com/hackmap/engine/pkg/utils"
)

type UserService interface {
	SignUp(ctx context.Context, input *SignUpInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, patch *ProfilePatch) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}

type SignUpInput struct {
	Username      string
	Email         string
	Password      string
	Bio           string
	Skills        []string
	GithubLink    string
	PortfolioLink string
	AvatarURL     string
}

// ProfilePatch is a merge patch: nil fields are left untouched.
type ProfilePatch struct {
	Username      *string
	Email         *string
	Bio           *string
	Skills        *[]string
	GithubLink    *string
	PortfolioLink *string
	AvatarURL     *string
}

type userService struct {
	store repository.Store
	opts  options
}

func NewUserService(store repository.Store, opts ...Option) UserService {
	return &userService{store: store, opts: buildOptions(opts)}
}

var _ UserService = (*userService)(nil)

var errInvalidCredentials = appErr.New(appErr.CodeUnauthorized, "invalid username or password")

func (s *userService) SignUp(ctx context.Context, input *SignUpInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.opts.passwordCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "password cannot be hashed")
	}

	u := &models.User{
		Username:      strings.TrimSpace(input.Username),
		Email:         strings.TrimSpace(input.Email),
		PasswordHash:  string(hash),
		Bio:           input.Bio,
		Skills:        utils.NormalizeSet(input.Skills),
		GithubLink:    input.GithubLink,
		PortfolioLink: input.PortfolioLink,
		AvatarURL:     input.AvatarURL,
		CreatedAt:     s.opts.now(),
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}

	logger.L().Info("user signed up", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.store.Users().GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, appErr.New(appErr.CodeNotFound, "user not found")
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, patch *ProfilePatch) (*models.User, error) {
	var out *models.User
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		applyPatch(u, patch)
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("profile updated", zap.Uint("user_id", userID))
	return out, nil
}

func applyPatch(u *models.User, p *ProfilePatch) {
	if p == nil {
		return
	}
	if p.Username != nil {
		u.Username = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		u.Email = strings.TrimSpace(*p.Email)
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Skills != nil {
		u.Skills = utils.NormalizeSet(*p.Skills)
	}
	if p.GithubLink != nil {
		u.GithubLink = *p.GithubLink
	}
	if p.PortfolioLink != nil {
		u.PortfolioLink = *p.PortfolioLink
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}

// ChangePassword hashes outside the transaction; the transaction only
// checks that the stored hash is unchanged and writes the new one.
func (s *userService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return appErr.New(appErr.CodeUnauthorized, "current password is incorrect")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "compare password failed")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.opts.passwordCost)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "password cannot be hashed")
	}

	compared := u.PasswordHash
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		fresh, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		if fresh.PasswordHash != compared {
			return appErr.New(appErr.CodeUnauthorized, "password changed concurrently")
		}
		fresh.PasswordHash = string(hash)
		return tx.Users().Update(ctx, fresh)
	})
}
