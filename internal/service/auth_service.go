package service

import (
	"context"
	"errors"
	"time"

	"askhub/internal/dto"
	"askhub/internal/models"
	"askhub/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReviewerExists     = errors.New("reviewer already exists")
)

type AuthService struct {
	reviewerRepo ReviewerStore
	jwtManager   *auth.JWTManager
	logger       *zap.Logger
}

func NewAuthService(reviewerRepo ReviewerStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		reviewerRepo: reviewerRepo,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// Check if reviewer exists
	existing, _ := s.reviewerRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrReviewerExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reviewer := &models.Reviewer{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewerRepo.Create(ctx, reviewer); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(reviewer)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	reviewer, err := s.reviewerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, reviewer.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(reviewer)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	reviewerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	reviewer, err := s.reviewerRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, ErrReviewerNotFound
	}

	return s.buildAuthResponse(reviewer)
}

func (s *AuthService) buildAuthResponse(reviewer *models.Reviewer) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(reviewer.ID.String(), reviewer.Username, reviewer.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(reviewer.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		Reviewer: dto.ReviewerResponse{
			ID:       reviewer.ID.String(),
			Username: reviewer.Username,
			Email:    reviewer.Email,
		},
	}, nil
}
