package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecuaforma/simulador-backend/internal/config"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
)

const (
	// TokenTypeUser marks a candidate token.
	TokenTypeUser = "user"
	// TokenTypeAdmin marks an admin token.
	TokenTypeAdmin = "admin"
)

const (
	googleAuthURL      = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

	oauthStateTTL = 10 * time.Minute
)

var (
	// ErrInvalidCredentials is returned when an admin login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOAuthStateInvalid is returned when the callback state nonce is
	// unknown or already consumed.
	ErrOAuthStateInvalid = errors.New("oauth state invalid or expired")
	// ErrOAuthExchange is returned when Google rejects the code exchange.
	ErrOAuthExchange = errors.New("oauth code exchange failed")
)

// Claims is the JWT payload for both candidate and admin tokens.
type Claims struct {
	TokenType string    `json:"token_type"`
	UserID    uuid.UUID `json:"user_id,omitempty"`
	AdminID   int       `json:"admin_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles admin password login, candidate Google sign-in and
// token issuance.
type AuthService struct {
	cfg        *config.Config
	rdb        *redis.Client
	userRepo   *repository.UserRepository
	adminRepo  *repository.AdminRepository
	httpClient *http.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	rdb *redis.Client,
	userRepo *repository.UserRepository,
	adminRepo *repository.AdminRepository,
) *AuthService {
	return &AuthService{
		cfg:       cfg,
		rdb:       rdb,
		userRepo:  userRepo,
		adminRepo: adminRepo,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AdminLogin validates admin credentials and returns a signed token.
func (s *AuthService) AdminLogin(ctx context.Context, req *model.AdminLoginRequest) (*model.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn a comparison anyway so missing accounts are not
			// distinguishable by response time.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinvalid"), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}

	if err := s.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateAdminToken(admin)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.AdminLoginResponse{Token: token, Admin: *admin}, nil
}

// BeginGoogleLogin stores a fresh state nonce and returns the Google consent
// URL the client should be redirected to.
func (s *AuthService) BeginGoogleLogin(ctx context.Context) (string, error) {
	state, err := randomToken(16)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	if err := s.rdb.Set(ctx, config.CacheKey.OAuthStateKey(state), "1", oauthStateTTL).Err(); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.GoogleClientID)
	params.Set("redirect_uri", s.cfg.GoogleRedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)

	return googleAuthURL + "?" + params.Encode(), nil
}

// CompleteGoogleLogin consumes the state nonce, exchanges the authorization
// code, upserts the candidate account and returns a signed token.
func (s *AuthService) CompleteGoogleLogin(ctx context.Context, state, code string) (*model.UserLoginResponse, error) {
	deleted, err := s.rdb.Del(ctx, config.CacheKey.OAuthStateKey(state)).Result()
	if err != nil {
		return nil, fmt.Errorf("consume state: %w", err)
	}
	if deleted == 0 {
		return nil, ErrOAuthStateInvalid
	}

	idToken, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	info, err := s.fetchTokenInfo(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpsertByGoogleID(ctx, info.Sub, info.Email, info.Name)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.GenerateUserToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("Candidate signed in via Google")

	return &model.UserLoginResponse{Token: token, User: *user}, nil
}

// GetUser loads the candidate account behind a token.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GenerateUserToken signs a candidate JWT.
func (s *AuthService) GenerateUserToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		TokenType: TokenTypeUser,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// GenerateAdminToken signs an admin JWT.
func (s *AuthService) GenerateAdminToken(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := &Claims{
		TokenType: TokenTypeAdmin,
		AdminID:   admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(admin.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against a plaintext password.
func (s *AuthService) CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type googleTokenInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Aud   string `json:"aud"`
}

func (s *AuthService) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", s.cfg.GoogleClientID)
	form.Set("client_secret", s.cfg.GoogleClientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", s.cfg.GoogleRedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("Google code exchange rejected")
		return "", ErrOAuthExchange
	}

	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.IDToken == "" {
		return "", ErrOAuthExchange
	}
	return body.IDToken, nil
}

func (s *AuthService) fetchTokenInfo(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleTokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrOAuthExchange
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}
	if info.Aud != s.cfg.GoogleClientID {
		return nil, ErrOAuthExchange
	}
	if info.Sub == "" || info.Email == "" {
		return nil, ErrOAuthExchange
	}
	return &info, nil
}

func randomToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
