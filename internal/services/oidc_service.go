package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/flypacademy/podcast-academy/internal/auth/service"
	"github.com/flypacademy/podcast-academy/internal/config"
	"github.com/flypacademy/podcast-academy/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

// oidcService implements login through an external OIDC provider.
// Users signing in through the provider are provisioned on first login.
type oidcService struct {
	verifier       *oidc.IDTokenVerifier
	oauthConfig    *oauth2.Config
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewOIDCService creates a new OIDC login service. Returns nil when no
// provider is configured; callers treat a nil service as the feature being
// disabled.
func NewOIDCService(
	ctx context.Context,
	cfg config.OIDCConfig,
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) (*oidcService, error) {
	if cfg.ProviderURL == "" {
		return nil, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &oidcService{
		verifier:       verifier,
		oauthConfig:    oauthConfig,
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}, nil
}

// AuthURL builds the provider's authorization URL for the given state
func (s *oidcService) AuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// CompleteLogin exchanges the authorization code, verifies the returned ID
// token and signs the user in, provisioning an account on first login.
// Returns our own access and refresh tokens.
func (s *oidcService) CompleteLogin(ctx context.Context, code string) (string, string, error) {
	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		return "", "", fmt.Errorf("provider response is missing id_token")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to verify id token: %w", err)
	}

	var claims struct {
		Email             string `json:"email"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", "", fmt.Errorf("failed to parse id token claims: %w", err)
	}

	email := strings.TrimSpace(strings.ToLower(claims.Email))
	if email == "" {
		return "", "", fmt.Errorf("provider did not supply an email claim")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		user, err = s.provisionUser(ctx, email, claims.PreferredUsername)
		if err != nil {
			return "", "", err
		}
		s.logger.Info("provisioned user from OIDC login",
			zap.Int("userId", user.ID),
			zap.String("email", email))
	}

	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID, user.Role)
}

// provisionUser creates an account for a first-time OIDC login. The account
// gets a random unguessable password so it cannot be entered through the
// password login until the user sets one.
func (s *oidcService) provisionUser(ctx context.Context, email, preferredUsername string) (*models.User, error) {
	username := strings.TrimSpace(preferredUsername)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	// Deduplicate the username if it is already taken
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		suffix := make([]byte, 3)
		if _, err := rand.Read(suffix); err != nil {
			return nil, fmt.Errorf("failed to generate username suffix: %w", err)
		}
		username = fmt.Sprintf("%s_%s", username, hex.EncodeToString(suffix))
	}

	randomPassword := make([]byte, 32)
	if _, err := rand.Read(randomPassword); err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword(randomPassword, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
