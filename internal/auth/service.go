package auth

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errors "github.com/frahmantamala/employee-management/internal"
)

// Service performs authentication: credential verification and token
// issuance. Token signing itself is stateless.
type Service struct {
	repo     RepositoryAPI
	tokenGen TokenGeneratorAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenGen: tokenGen,
		logger:   logger,
	}
}

func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
	}
}

// Authenticate verifies the credential and returns a signed token carrying
// username and role.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	storedHash, role, err := s.repo.GetCredential(dto.Username)
	if err != nil {
		s.logger.Warn("authentication failed: unknown user", "username", dto.Username)
		return nil, errors.ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		s.logger.Warn("authentication failed: bad password", "username", dto.Username)
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokenGen.GenerateAccessToken(dto.Username, role)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "username", dto.Username)
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	return &LoginResponse{
		Token:    token,
		Username: dto.Username,
		Role:     role,
	}, nil
}

// ValidateAccessToken verifies signature and expiry and returns the claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

// GenerateAccessToken signs a token asserting (username, role) with the
// configured expiration.
func (j *JWTTokenGenerator) GenerateAccessToken(username string, role Role) (string, error) {
	now := time.Now()

	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken checks signature, structure and expiry. Expired tokens fail
// distinctly from malformed ones.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, errors.ErrInvalidToken
	}

	return claims, nil
}
