package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/senselive/vms-api/internal/config"
	"github.com/senselive/vms-api/internal/middleware"
	"github.com/senselive/vms-api/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Mock UserRepository
type mockUserRepository struct {
	mockFindByID      func(ctx context.Context, id uint) (*models.User, error)
	mockFindByEmail   func(ctx context.Context, email string) (*models.User, error)
	mockExistsByEmail func(ctx context.Context, email string) (bool, error)
	mockCreate        func(ctx context.Context, user *models.User) error
	mockUpdate        func(ctx context.Context, user *models.User) error
	mockUpdateHash    func(ctx context.Context, id uint, hash string) error
	mockList          func(ctx context.Context, departmentID uint) ([]models.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.mockFindByEmail != nil {
		return m.mockFindByEmail(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.mockExistsByEmail != nil {
		return m.mockExistsByEmail(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	if m.mockUpdateHash != nil {
		return m.mockUpdateHash(ctx, id, hash)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, departmentID uint) ([]models.User, error) {
	if m.mockList != nil {
		return m.mockList(ctx, departmentID)
	}
	return nil, nil
}

// Mock DepartmentRepository
type mockDepartmentRepository struct {
	mockExists func(ctx context.Context, id uint) (bool, error)
	mockList   func(ctx context.Context) ([]models.Department, error)
}

func (m *mockDepartmentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if m.mockExists != nil {
		return m.mockExists(ctx, id)
	}
	return true, nil
}

func (m *mockDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	if m.mockList != nil {
		return m.mockList(ctx)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, &mockDepartmentRepository{}, testConfig())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:    "Ravi",
		Email:        "ravi@example.com",
		Role:         "superuser",
		DepartmentID: 1,
		Password:     "secret123",
	})
	assert.True(t, IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepository{
		mockExistsByEmail: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewAuthService(userRepo, &mockDepartmentRepository{}, testConfig())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:    "Ravi",
		Email:        "ravi@example.com",
		Role:         models.RoleManager,
		DepartmentID: 1,
		Password:     "secret123",
	})
	assert.True(t, IsValidation(err))
}

func TestRegisterUnknownDepartment(t *testing.T) {
	deptRepo := &mockDepartmentRepository{
		mockExists: func(ctx context.Context, id uint) (bool, error) {
			return false, nil
		},
	}
	svc := NewAuthService(&mockUserRepository{}, deptRepo, testConfig())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:    "Ravi",
		Email:        "ravi@example.com",
		Role:         models.RoleManager,
		DepartmentID: 42,
		Password:     "secret123",
	})
	assert.True(t, IsValidation(err))
}

func TestRegisterHashesPassword(t *testing.T) {
	var created *models.User
	userRepo := &mockUserRepository{
		mockCreate: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(userRepo, &mockDepartmentRepository{}, testConfig())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:    "Ravi",
		Email:        "ravi@example.com",
		Role:         models.RoleSecurity,
		DepartmentID: 1,
		Password:     "secret123",
	})
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.True(t, VerifyPassword("secret123", created.PasswordHash))
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	hash, err := HashPassword("right-password")
	assert.NoError(t, err)

	userRepo := &mockUserRepository{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			if email == "known@example.com" {
				return &models.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewAuthService(userRepo, &mockDepartmentRepository{}, testConfig())

	_, errUnknown := svc.Login(context.Background(), "unknown@example.com", "whatever")
	_, errWrongPass := svc.Login(context.Background(), "known@example.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)

	userRepo := &mockUserRepository{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:           7,
				Email:        email,
				Role:         models.RoleManager,
				Designation:  "Plant Head",
				DepartmentID: 3,
				PasswordHash: hash,
			}, nil
		},
	}
	cfg := testConfig()
	svc := NewAuthService(userRepo, &mockDepartmentRepository{}, cfg)

	result, err := svc.Login(context.Background(), "ravi@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	var claims middleware.Claims
	_, err = jwt.ParseWithClaims(result.Token, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, uint(3), claims.DepartmentID)
	assert.Equal(t, "Plant Head", claims.Designation)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	hash, err := HashPassword("current")
	assert.NoError(t, err)

	userRepo := &mockUserRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(userRepo, &mockDepartmentRepository{}, testConfig())

	err = svc.ChangePassword(context.Background(), 1, "not-current", "new-password")
	assert.ErrorIs(t, err, ErrOldPasswordWrong)
}

func TestUpdateUserNoFields(t *testing.T) {
	userRepo := &mockUserRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	svc := NewAuthService(userRepo, &mockDepartmentRepository{}, testConfig())

	err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{})
	assert.True(t, IsValidation(err))
}
