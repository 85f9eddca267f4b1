package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/approval"
	autherrors "github.com/theesh-25755/HR-mobile-app/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const accessTokenTTL = 24 * time.Hour

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := strings.ToLower(req.Role)
	if role == "" {
		role = string(approval.RoleEmployee)
	}
	if !isKnownRole(role) {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}

	name := req.Name
	if name == "" {
		// fall back to the local part of the e-mail, as the mobile app does
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Name:     name,
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrUserNotFound
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := generateToken(user.Email, user.Role, user.Name, accessTokenTTL)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		AccessToken: accessToken,
		User:        AuthResponse{Email: user.Email, Name: user.Name, Role: user.Role},
	}, nil
}

func isKnownRole(role string) bool {
	switch approval.Role(role) {
	case approval.RoleEmployee, approval.RoleSupervisor, approval.RoleProjectManager,
		approval.RoleHRManager, approval.RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// generateToken issues the identity context: the workflow layer reads
// exactly these three claims and trusts them fully.
func generateToken(email, role, name string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"name":  name,
		"exp":   time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
