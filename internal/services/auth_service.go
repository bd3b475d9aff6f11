package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"auditionhub_backend/internal/auth"
	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const passwordResetTTL = time.Hour

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	ForgotPassword(ctx context.Context, db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
	SetupTwoFactor(db *gorm.DB, userID string) (*dto.TwoFactorSetupResponse, error)
	EnableTwoFactor(db *gorm.DB, userID, code string) error
	DisableTwoFactor(db *gorm.DB, userID, code string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	subscriptionRepo repositories.SubscriptionRepository
	emailRepo        repositories.EmailRepository
	tokens           *auth.TokenManager
	notifier         *email.Notifier
	refreshTTL       time.Duration
	issuer           string
	inboundDomain    string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	emailRepo repositories.EmailRepository,
	tokens *auth.TokenManager,
	notifier *email.Notifier,
	refreshTTL time.Duration,
	issuer string,
	inboundDomain string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		subscriptionRepo: subscriptionRepo,
		emailRepo:        emailRepo,
		tokens:           tokens,
		notifier:         notifier,
		refreshTTL:       refreshTTL,
		issuer:           issuer,
		inboundDomain:    inboundDomain,
	}
}

// Register creates the parent together with a FREE subscription and default
// email settings, then signs the user in.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         models.UserRoleParent,
	}

	var resp *dto.AuthResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return repoErr(err)
		}

		sub := &models.Subscription{
			UserID:    user.ID,
			Tier:      models.SubscriptionTierFree,
			Status:    models.SubscriptionStatusActive,
			StartDate: time.Now().UTC(),
		}
		if err := s.subscriptionRepo.Create(tx, sub); err != nil {
			return apperrors.DatabaseError(err)
		}
		user.Subscription = sub

		if err := s.emailRepo.CreateSettings(tx, defaultEmailSettings(user.ID, s.inboundDomain)); err != nil {
			return apperrors.DatabaseError(err)
		}

		resp, err = s.issueTokens(tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return resp, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.TOTPEnabled {
		if req.OTPCode == "" {
			return nil, apperrors.ErrOTPRequired
		}
		if !auth.ValidateTOTP(req.OTPCode, user.TOTPSecret) {
			logger.CtxWarn(ctx, "invalid one-time code on login", "user_id", user.ID)
			return nil, apperrors.ErrInvalidOTP
		}
	}

	return s.issueTokens(db, user)
}

// Refresh rotates the refresh token: the presented one is revoked and a new pair issued.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	var resp *dto.AuthResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		stored, err := s.refreshTokenRepo.FindByHash(tx, auth.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return apperrors.ErrInvalidToken
			}
			return apperrors.DatabaseError(err)
		}
		if !stored.Usable(time.Now()) {
			return apperrors.ErrInvalidToken
		}

		if err := s.refreshTokenRepo.Revoke(tx, stored.ID); err != nil {
			// lost a race with another refresh of the same token
			if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return apperrors.ErrInvalidToken
			}
			return apperrors.DatabaseError(err)
		}

		user, err := s.userRepo.FindByID(tx, stored.UserID)
		if err != nil {
			return apperrors.ErrInvalidToken
		}

		resp, err = s.issueTokens(tx, user)
		return err
	})
	return resp, err
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	stored, err := s.refreshTokenRepo.FindByHash(db, auth.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.DatabaseError(err)
	}
	if stored.RevokedAt != nil {
		return nil
	}
	if err := s.refreshTokenRepo.Revoke(db, stored.ID); err != nil && !errors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// ForgotPassword never reveals whether the address is registered.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxDebug(ctx, "password reset requested for unknown email")
			return nil
		}
		return apperrors.DatabaseError(err)
	}

	token, err := auth.NewOpaqueToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expires := time.Now().UTC().Add(passwordResetTTL)
	user.ResetTokenHash = auth.HashToken(token)
	user.ResetTokenExpiresAt = &expires
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.DatabaseError(err)
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, user.Name, token, passwordResetTTL); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "user_id", user.ID)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByResetTokenHash(tx, auth.HashToken(req.Token))
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrInvalidToken
			}
			return apperrors.DatabaseError(err)
		}
		if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
			return apperrors.ErrInvalidToken
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return apperrors.InternalError(err)
		}
		user.PasswordHash = hash
		user.ResetTokenHash = ""
		user.ResetTokenExpiresAt = nil
		if err := s.userRepo.Update(tx, user); err != nil {
			return apperrors.DatabaseError(err)
		}

		if err := s.refreshTokenRepo.RevokeAllForUser(tx, user.ID); err != nil {
			return apperrors.DatabaseError(err)
		}
		return nil
	})
}

// SetupTwoFactor stores a fresh secret; 2FA stays off until EnableTwoFactor confirms a code.
func (s *AuthServiceImpl) SetupTwoFactor(db *gorm.DB, userID string) (*dto.TwoFactorSetupResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, repoErr(err)
	}
	if user.TOTPEnabled {
		return nil, apperrors.ErrInvalidOperation("auth", "Two-factor authentication is already enabled")
	}

	key, err := auth.GenerateTOTP(s.issuer, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.TOTPSecret = key.Secret
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.TwoFactorSetupResponse{Secret: key.Secret, OTPAuthURL: key.URL}, nil
}

func (s *AuthServiceImpl) EnableTwoFactor(db *gorm.DB, userID, code string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return repoErr(err)
	}
	if user.TOTPSecret == "" {
		return apperrors.ErrTwoFactorNotSetUp
	}
	if !auth.ValidateTOTP(code, user.TOTPSecret) {
		return apperrors.ErrInvalidOTP
	}
	user.TOTPEnabled = true
	return repoErr(s.userRepo.Update(db, user))
}

func (s *AuthServiceImpl) DisableTwoFactor(db *gorm.DB, userID, code string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return repoErr(err)
	}
	if !user.TOTPEnabled {
		return apperrors.ErrTwoFactorNotSetUp
	}
	if !auth.ValidateTOTP(code, user.TOTPSecret) {
		return apperrors.ErrInvalidOTP
	}
	user.TOTPEnabled = false
	user.TOTPSecret = ""
	return repoErr(s.userRepo.Update(db, user))
}

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	access, exp, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: auth.HashToken(refresh),
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
	}
	if err := s.refreshTokenRepo.Create(db, stored); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresAt:    exp,
		User:         dto.NewUserDTO(user),
	}, nil
}
