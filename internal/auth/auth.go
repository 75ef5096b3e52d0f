// Package auth signs storefront users in against the resource server and
// gates operations on the signed-in identity.
//
// In plaintext mode credentials are matched by the resource server through
// an exact-equality query and checked again here. Blocked accounts are only
// refused at sign-in.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rinsh4dd/e-com/internal/config"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,shopemail"`
	Password string `json:"password" validate:"required,strongpassword"`
}

type Service struct {
	users    store.Users
	mode     string
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(users store.Users, passwordMode string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if passwordMode == "" {
		passwordMode = config.PasswordPlaintext
	}
	return &Service{
		users:    users,
		mode:     passwordMode,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// Login returns the matching user without its password.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if u.IsBlocked {
		s.logger.Info("blocked user refused", zap.String("user_id", u.ID.String()))
		return nil, ErrAccountBlocked
	}
	pub := u.Public()
	return &pub, nil
}

// AdminLogin is Login restricted to the admin role.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Role.IsAdmin() {
		return nil, ErrInvalidAdminCredentials
	}
	if u.IsBlocked {
		return nil, ErrAccountBlocked
	}
	pub := u.Public()
	return &pub, nil
}

// authenticate returns nil and no error when nothing matches.
func (s *Service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil
	}

	if s.mode == config.PasswordBcrypt {
		found, err := s.users.Find(ctx, store.UserFilter{Email: email})
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		for _, u := range found {
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
				return &u, nil
			}
		}
		return nil, nil
	}

	found, err := s.users.Find(ctx, store.UserFilter{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	for _, u := range found {
		if u.Email == email && u.Password == password {
			return &u, nil
		}
	}
	return nil, nil
}

// Register creates a user account. The caller decides whether to sign the
// new account in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.users.Find(ctx, store.UserFilter{Email: req.Email})
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken.WithDetails(map[string]string{"email": ErrEmailTaken.Message})
	}

	password := req.Password
	if s.mode == config.PasswordBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		password = string(hash)
	}

	created, err := s.users.Create(ctx, models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  password,
		Role:      models.RoleUser,
		CreatedAt: s.now().UTC().Format(time.RFC3339Nano),
		Cart:      []models.CartItem{},
		Wishlist:  []models.WishlistItem{},
		Orders:    []models.Order{},
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", zap.String("user_id", created.ID.String()))
	pub := created.Public()
	return &pub, nil
}
