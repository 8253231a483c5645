package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-portal/config"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAccountNotFound    = errors.New("account not found")
)

// PatientEmailDomain completes patient identifiers given without an email domain.
const PatientEmailDomain = "patient.com"

type AuthUsecase interface {
	PatientSignup(ctx context.Context, req *dto.PatientCredentialsRequest) (*dto.TokenResponse, error)
	PatientLogin(ctx context.Context, req *dto.PatientCredentialsRequest) (*dto.TokenResponse, error)
	AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, subject, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetPatientAccount(ctx context.Context, id string) (*entity.PatientAccount, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	accountRepo repository.PatientAccountRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	admin       config.AdminConfig
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.PatientAccountRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	admin config.AdminConfig,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		accountRepo: accountRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		admin:       admin,
	}
}

// PatientEmail turns a login identifier into the account email: identifiers
// without "@" become <name>@patient.com.
func PatientEmail(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return strings.ToLower(identifier)
	}
	return strings.ToLower(strings.Join(strings.Fields(identifier), ".")) + "@" + PatientEmailDomain
}

func (u *authUsecase) PatientSignup(ctx context.Context, req *dto.PatientCredentialsRequest) (*dto.TokenResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	account := &entity.PatientAccount{
		Email:    PatientEmail(req.Name),
		Password: string(hashedPassword),
	}

	if err := u.accountRepo.Create(u.db.WithContext(ctx), account); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient account: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient account created: id=%s", account.ID)
	return u.issueTokens(ctx, account.ID.String(), account.Email, entity.RolePatient)
}

func (u *authUsecase) PatientLogin(ctx context.Context, req *dto.PatientCredentialsRequest) (*dto.TokenResponse, error) {
	// Read-only, no transaction needed
	account, err := u.accountRepo.FindByEmail(u.db.WithContext(ctx), PatientEmail(req.Name))
	if err != nil {
		u.log.Warnf("Failed to find patient account by email: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, account.ID.String(), account.Email, entity.RolePatient)
}

// AdminLogin checks the configured operator credentials.
func (u *authUsecase) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if u.admin.Email == "" || u.admin.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), u.admin.Email) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	u.log.Info("Admin signed in")
	return u.issueTokens(ctx, entity.AdminSubject, u.admin.Email, entity.RoleAdmin)
}

func (u *authUsecase) Logout(ctx context.Context, subject, accessTokenID, refreshTokenID string) error {
	keys := []string{accessKey(subject, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, refreshKey(subject, refreshTokenID))
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete session tokens: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Check if refresh token exists in Redis
	key := refreshKey(claims.Subject, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, key).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single use
	if err := u.redisClient.Del(ctx, key).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.Subject, claims.Email, claims.Role)
}

func (u *authUsecase) GetPatientAccount(ctx context.Context, id string) (*entity.PatientAccount, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	account, err := u.accountRepo.FindByID(u.db.WithContext(ctx), accountID)
	if err != nil {
		u.log.Warnf("Failed to find patient account by ID: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// issueTokens signs an access/refresh pair and records both in Redis.
func (u *authUsecase) issueTokens(ctx context.Context, subject, email, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(subject, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(subject, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, accessKey(subject, accessTokenID), "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey(subject, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		Role:         role,
	}, nil
}

func accessKey(subject, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", subject, tokenID)
}

func refreshKey(subject, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", subject, tokenID)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
