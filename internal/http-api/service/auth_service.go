package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangaist/internal/config"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/repository"
	"mangaist/internal/middleware/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the payload of internally issued access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// HandleCallback resolves or creates the account behind an external
	// id_token and issues internal tokens for it.
	HandleCallback(ctx context.Context, rawIDToken string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, err error)
	RevokeToken(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	verifier         IdentityVerifier
	isAdminEmail     func(string) bool
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	verifier IdentityVerifier,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		verifier:         verifier,
		isAdminEmail:     cfg.IsAdminEmail,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

func (s *authService) HandleCallback(ctx context.Context, rawIDToken string) (string, string, *models.User, error) {
	identity, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", "", nil, err
	}

	user, err := s.userRepo.FindByAuthID(ctx, identity.AuthID)
	switch {
	case err == nil:
		// The allowlist is re-applied on every callback; it never demotes.
		role := ResolveRole(user.Email, user.Role, s.isAdminEmail)
		if role != user.Role {
			user.Role = role
			if err := s.userRepo.Update(ctx, user); err != nil {
				return "", "", nil, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			ID:               uuid.New().String(),
			AuthID:           identity.AuthID,
			Email:            identity.Email,
			Name:             identity.Name,
			Surname:          identity.Surname,
			Nickname:         identity.Nickname,
			ProfileImage:     identity.Picture,
			Role:             ResolveRole(identity.Email, models.RoleUser, s.isAdminEmail),
			ProfileCompleted: false,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", "", nil, err
		}
	default:
		return "", "", nil, err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// generateRefreshToken hands out "<id>.<secret>" and stores only the bcrypt
// hash of the secret half.
func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	id := uuid.New().String()
	secret := uuid.New().String()

	hash, err := auth.HashSecret(secret)
	if err != nil {
		return "", err
	}

	refreshToken := &models.RefreshToken{
		ID:         id,
		UserID:     user.ID,
		SecretHash: hash,
		ExpiresAt:  time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return id + "." + secret, nil
}

// lookupRefreshToken validates format, existence, revocation, expiry and the
// secret hash of a presented refresh token.
func (s *authService) lookupRefreshToken(ctx context.Context, raw string) (*models.RefreshToken, string, error) {
	id, secret, found := strings.Cut(raw, ".")
	if !found || id == "" || secret == "" {
		return nil, "", ErrInvalidToken
	}

	token, err := s.refreshTokenRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", ErrInvalidToken
	}
	if token.Revoked {
		return nil, "", ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		s.refreshTokenRepo.Delete(ctx, token.ID)
		return nil, "", ErrExpiredToken
	}
	if err := auth.VerifySecret(token.SecretHash, secret); err != nil {
		return nil, "", ErrInvalidToken
	}
	return token, secret, nil
}

// RefreshAccessToken rotates both tokens: the presented refresh token is
// revoked and a fresh pair is issued.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	token, _, err := s.lookupRefreshToken(ctx, refreshTokenString)
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return "", "", err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, token.ID); err != nil {
		return "", "", err
	}

	newAccessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

func (s *authService) RevokeToken(ctx context.Context, refreshTokenString string) error {
	token, _, err := s.lookupRefreshToken(ctx, refreshTokenString)
	if err != nil {
		return err
	}
	return s.refreshTokenRepo.Revoke(ctx, token.ID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
