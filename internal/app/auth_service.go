package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"splitmate/internal/model"
	"splitmate/internal/pkg/jwtutil"
	"splitmate/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailExists  = errors.New("email already registered")
	// ErrInvalidCredentials is returned both for an unknown email and for a
	// wrong password, so a caller cannot probe which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrUserNotFound       = errors.New("user not found")
)

type UserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

type AuthService struct {
	userRepo   UserStore
	publisher  ActivityPublisher
	jwtSecret  string
	jwtTTL     time.Duration
	bcryptCost int
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *model.User
}

func NewAuthService(
	userRepo UserStore,
	publisher ActivityPublisher,
	jwtSecret string,
	jwtTTL time.Duration,
	bcryptCost int,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		publisher:  publisher,
		jwtSecret:  jwtSecret,
		jwtTTL:     jwtTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new credential record. The handler validates request
// shape; the checks here only re-assert the same rules defensively. The
// users.email unique index is the final word on duplicates, so a concurrent
// registration that slips past the pre-check still surfaces as ErrEmailExists.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)
	password := input.Password

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}
	if len(password) < 6 {
		return nil, ErrInvalidInput
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.recordActivity(ctx, user.ID, nil, "user.registered", user.Email)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtTTL, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token failed: %w", err)
	}

	s.recordActivity(ctx, user.ID, nil, "user.login", user.Email)
	return &LoginResult{Token: token, User: user}, nil
}

// Logout only confirms the identity still exists. Sessions are stateless,
// so there is no server-side token state to clear.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	s.recordActivity(ctx, userID, nil, "user.logout", user.Email)
	return nil
}

// recordActivity is best effort: a broker outage must not fail the request.
func (s *AuthService) recordActivity(ctx context.Context, userID uint, groupID *uint, action, detail string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, model.Activity{
		UserID:    userID,
		GroupID:   groupID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
}
