package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
)

// PasswordHasher abstracts the password hash so tests can swap the cost
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher is the production hasher
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(out), err
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// LoginRequest authenticates by email
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResult carries the issued token and the authenticated user
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// AuthService handles registration, login and current-user lookup
type AuthService struct {
	db     *gorm.DB
	hashes PasswordHasher
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, hashes: BcryptHasher{}}
}

// Register creates an account. Staff are approved immediately; managers wait
// for admin approval. Admin accounts are not self-registerable.
func (s *AuthService) Register(req *RegisterRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return "", &ValidationError{Msg: "username, email and password are required"}
	}

	role := model.Role(strings.ToUpper(req.Role))
	if role != model.RoleStaff && role != model.RoleManager {
		return "", &ValidationError{Msg: "role must be STAFF or MANAGER"}
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return "", &ConflictError{Msg: "username is already taken"}
	}
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return "", &ConflictError{Msg: "email is already in use"}
	}

	hash, err := s.hashes.Hash(req.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	status := model.StatusPending
	if role == model.RoleStaff {
		status = model.StatusApproved
	}

	user := model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
		Status:   status,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	logger.GetLogger().Info("User registered",
		zap.String("username", username),
		zap.String("role", string(role)),
		zap.String("status", string(status)))

	if role == model.RoleStaff {
		return "Staff registered successfully. You can login now.", nil
	}
	return "Manager registered successfully. Waiting for admin approval.", nil
}

// Login authenticates by email and issues a JWT. Pending or rejected
// accounts cannot log in.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)

	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", Key: email}
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hashes.Compare(user.Password, req.Password); err != nil {
		return nil, &ValidationError{Msg: "invalid credentials"}
	}

	switch user.Status {
	case model.StatusPending:
		return nil, &ForbiddenError{Msg: "account is waiting for admin approval"}
	case model.StatusRejected:
		return nil, &ForbiddenError{Msg: "account has been rejected"}
	}

	token, err := jwtutil.GenerateToken(user.Username, user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.GetLogger().Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return &LoginResult{Token: token, User: user}, nil
}

// CurrentUser looks an account up by username
func (s *AuthService) CurrentUser(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", Key: username}
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
