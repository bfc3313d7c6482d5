package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
	"inventory-service/pkg/config"
	"inventory-service/pkg/jwtutil"
)

func initTestJWT() {
	jwtutil.Initialize(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})
}

func TestRegisterStaffIsApprovedImmediately(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	msg, err := svc.Register(&RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "secret123", Role: "STAFF",
	})
	require.NoError(t, err)
	assert.Contains(t, msg, "login now")

	var user model.User
	require.NoError(t, db.Where("username = ?", "bob").First(&user).Error)
	assert.Equal(t, model.StatusApproved, user.Status)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
}

func TestRegisterManagerWaitsForApproval(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	msg, err := svc.Register(&RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "secret123", Role: "MANAGER",
	})
	require.NoError(t, err)
	assert.Contains(t, msg, "approval")

	var user model.User
	require.NoError(t, db.Where("username = ?", "carol").First(&user).Error)
	assert.Equal(t, model.StatusPending, user.Status)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(&RegisterRequest{
		Username: "eve", Email: "eve@example.com", Password: "secret123", Role: "ADMIN",
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "bob", model.RoleStaff)
	svc := NewAuthService(db)
	var conflict *ConflictError

	_, err := svc.Register(&RegisterRequest{
		Username: "bob", Email: "new@example.com", Password: "secret123", Role: "STAFF",
	})
	require.ErrorAs(t, err, &conflict)

	_, err = svc.Register(&RegisterRequest{
		Username: "bob2", Email: "bob@example.com", Password: "secret123", Role: "STAFF",
	})
	require.ErrorAs(t, err, &conflict)
}

func TestLoginIssuesToken(t *testing.T) {
	db := setupTestDB(t)
	initTestJWT()
	user := createTestUser(t, db, "bob", model.RoleStaff)

	svc := NewAuthService(db)
	result, err := svc.Login(&LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := jwtutil.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "STAFF", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	initTestJWT()
	user := createTestUser(t, db, "bob", model.RoleStaff)

	svc := NewAuthService(db)
	_, err := svc.Login(&LoginRequest{Email: user.Email, Password: "wrong"})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestLoginPendingAndRejectedBlocked(t *testing.T) {
	db := setupTestDB(t)
	initTestJWT()
	svc := NewAuthService(db)

	pending := createTestUser(t, db, "carol", model.RoleManager)
	require.NoError(t, db.Model(pending).Update("status", model.StatusPending).Error)

	_, err := svc.Login(&LoginRequest{Email: pending.Email, Password: "secret123"})
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	rejected := createTestUser(t, db, "dave", model.RoleManager)
	require.NoError(t, db.Model(rejected).Update("status", model.StatusRejected).Error)

	_, err = svc.Login(&LoginRequest{Email: rejected.Email, Password: "secret123"})
	require.ErrorAs(t, err, &forbidden)
}

func TestCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "bob", model.RoleStaff)

	svc := NewAuthService(db)
	user, err := svc.CurrentUser("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = svc.CurrentUser("ghost")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
