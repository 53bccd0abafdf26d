package users_services

import (
	"errors"
	"fmt"
	"time"

	users_dto "github.com/git-webzoom/assistente-x-hub/internal/features/users/dto"
	users_enums "github.com/git-webzoom/assistente-x-hub/internal/features/users/enums"
	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	users_repositories "github.com/git-webzoom/assistente-x-hub/internal/features/users/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepository      *users_repositories.UserRepository
	tenantRepository    *users_repositories.TenantRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
}

func NewUserService(
	userRepository *users_repositories.UserRepository,
	tenantRepository *users_repositories.TenantRepository,
	secretKeyRepository *users_repositories.SecretKeyRepository,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		tenantRepository:    tenantRepository,
		secretKeyRepository: secretKeyRepository,
	}
}

// SignUp provisions a fresh tenant and its first dashboard user.
func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) error {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tenant := &users_models.Tenant{
		ID:        uuid.New(),
		Name:      request.TenantName,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tenantRepository.CreateTenant(tenant); err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		TenantID:             tenant.ID,
		Email:                request.Email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *UserService) SignIn(request *users_dto.SignInRequestDTO) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil || user == nil {
		return nil, errors.New("user with this email does not exist")
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	if !user.HasPassword() {
		return nil, errors.New("password is incorrect")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors.New("password is incorrect")
	}

	return s.GenerateAccessToken(user)
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	// Tokens issued before a password change are rejected.
	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0).Truncate(time.Second)
	userPasswordTime := user.PasswordCreationTime.Truncate(time.Second)

	if !tokenPasswordTime.Equal(userPasswordTime) {
		return nil, errors.New("password has been changed, please sign in again")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	expiration := time.Now().UTC().Add(time.Hour * 24 * 30)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"tenantId":             user.TenantID.String(),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Token:    tokenString,
	}, nil
}
