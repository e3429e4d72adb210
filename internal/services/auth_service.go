package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/senselive/vms-api/internal/config"
	"github.com/senselive/vms-api/internal/middleware"
	"github.com/senselive/vms-api/internal/models"
	"github.com/senselive/vms-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles staff accounts: registration, login, token issuance,
// profile updates and password changes.
type AuthService struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	cfg            *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		cfg:            cfg,
	}
}

// RegisterInput carries a new staff account.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         string
	DepartmentID uint
	Password     string
	Designation  string
	Status       string
}

// Register creates a staff account after validating role, email uniqueness
// and department existence.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !models.ValidRole(in.Role) {
		return nil, NewValidationError("Invalid role specified.")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewValidationError("Email already registered.")
	}

	deptExists, err := s.departmentRepo.Exists(ctx, in.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !deptExists {
		return nil, NewValidationError("Invalid department ID.")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		PasswordHash: hash,
		Designation:  in.Designation,
		Status:       in.Status,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Login authenticates a user and issues a signed token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// UpdateUserInput carries a partial profile update; empty fields are left
// untouched.
type UpdateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         string
	DepartmentID uint
	Password     string
	Designation  string
	Status       string
}

// UpdateUser applies the provided fields to an existing account.
func (s *AuthService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) error {
	if in.Role != "" && !models.ValidRole(in.Role) {
		return NewValidationError("Invalid role specified.")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if in.DepartmentID != 0 {
		deptExists, err := s.departmentRepo.Exists(ctx, in.DepartmentID)
		if err != nil {
			return err
		}
		if !deptExists {
			return NewValidationError("Invalid department ID.")
		}
		user.DepartmentID = in.DepartmentID
	}

	changed := in.DepartmentID != 0
	set := func(dst *string, incoming string) {
		if strings.TrimSpace(incoming) != "" {
			*dst = incoming
			changed = true
		}
	}
	set(&user.FirstName, in.FirstName)
	set(&user.LastName, in.LastName)
	set(&user.Email, in.Email)
	set(&user.Phone, in.Phone)
	set(&user.Role, in.Role)
	set(&user.Designation, in.Designation)
	set(&user.Status, in.Status)

	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		changed = true
	}

	if !changed {
		return NewValidationError("No fields provided for update.")
	}

	return s.userRepo.Update(ctx, user)
}

// ChangePassword verifies the old password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrOldPasswordWrong
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePasswordHash(ctx, userID, hash)
}

// generateJWT creates a signed token embedding the caller's identity context
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		Designation:  user.Designation,
		DepartmentID: user.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
