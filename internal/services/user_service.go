package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

var validate = validator.New()

var (
	nameRule     = fmt.Sprintf("required,min=%d", constants.MinNameLength)
	passwordRule = fmt.Sprintf("required,min=%d,max=%d", constants.MinPasswordLength, constants.MaxPasswordLength)
)

// UserService handles user registration and administration.
type UserService struct {
	store    repository.Store
	adminKey string
}

// NewUserService creates a new UserService. Registrations may request the
// admin role only when they present adminKey; an empty key disables that.
func NewUserService(store repository.Store, adminKey string) *UserService {
	return &UserService{
		store:    store,
		adminKey: adminKey,
	}
}

// CreateUserInput represents the required information to create a new user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
	AdminKey string
}

// UpdateUserInput represents a partial user update. Nil fields are kept.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *models.UserRole
}

// ListUsersInput represents filters for listing users.
type ListUsersInput struct {
	UserID  *uint64
	Role    *models.UserRole
	Page    int
	PerPage int
}

// CreateUser registers a user. The requested role is honoured only with a
// valid admin key; everyone else becomes a member.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateUserFields(name, input.Email, input.Password); err != nil {
		return nil, err
	}
	if input.Role != "" && !input.Role.IsValid() {
		return nil, invalid("role", "must be one of admin, member")
	}

	if _, err := s.store.Users().FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleMember
	if s.validAdminKey(input.AdminKey) && input.Role != "" {
		role = input.Role
	}

	user := &models.User{
		Name:         name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser applies a partial update to an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userID uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, invalid("role", "must be one of admin, member")
		}
		user.Role = *input.Role
	}

	if input.Email != nil {
		other, err := s.store.Users().FindByEmail(ctx, user.Email)
		if err == nil && other.ID != user.ID {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	if input.Password != nil {
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// LoadPrincipal returns the principal for userID with its current role.
// A user that no longer exists is unauthenticated.
func (s *UserService) LoadPrincipal(ctx context.Context, userID uint64) (*authz.Principal, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return &authz.Principal{ID: user.ID, Role: user.Role}, nil
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) ([]models.User, utils.Pagination, error) {
	params := utils.NormalizePagination(input.Page, input.PerPage)
	users, total, err := s.store.Users().List(ctx, repository.UserFilter{
		UserID:     input.UserID,
		Role:       input.Role,
		Pagination: params,
	})
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, utils.NewPagination(params, total), nil
}

func (s *UserService) validAdminKey(key string) bool {
	if s.adminKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.adminKey), []byte(key)) == 1
}

func validateUserFields(name, email, password string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateName(name string) error {
	if err := validate.Var(name, nameRule); err != nil {
		return invalid("name", fmt.Sprintf("must be at least %d characters", constants.MinNameLength))
	}
	return nil
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

// validatePassword bounds the length in runes through the tag and in bytes
// for bcrypt, which rejects anything longer than MaxPasswordLength bytes.
func validatePassword(password string) error {
	if err := validate.Var(password, passwordRule); err != nil || len(password) > constants.MaxPasswordLength {
		return errPasswordLength()
	}
	return nil
}

func errPasswordLength() error {
	return invalid("password", fmt.Sprintf("must be between %d and %d characters",
		constants.MinPasswordLength, constants.MaxPasswordLength))
}

func hashPassword(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errPasswordLength()
	}
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	return hashed, nil
}
