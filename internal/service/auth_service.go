package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"atlas/internal/manager"
	"atlas/internal/model"
	"atlas/internal/pkg/cache"
	"atlas/internal/pkg/jwt"
	"atlas/internal/pkg/password"
)

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrInvalidPassword = errors.New("密码错误")
	ErrInvalidToken    = errors.New("Token无效")
	ErrExpiredToken    = errors.New("Token已过期")
)

// AuthService 认证服务
// 用户数据走数据核心的用户管理器，刷新令牌走 TokenStore
type AuthService struct {
	users         *manager.UserManager
	tokens        *cache.TokenStore
	jwt           *jwt.JWT
	refreshExpiry time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(
	users *manager.UserManager,
	tokens *cache.TokenStore,
	jwtSecret string,
	accessTokenExpiry time.Duration,
	refreshTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		jwt:           jwt.NewJWT(jwtSecret, accessTokenExpiry),
		refreshExpiry: refreshTokenExpiry,
	}
}

// RegisterResult 注册结果
type RegisterResult struct {
	UserID   string
	Username string
	Role     string
	Durable  bool
}

// Register 用户注册
// 新注册用户默认为 viewer，唯一性约束由用户管理器负责
func (s *AuthService) Register(ctx context.Context, username, email, pwd, phone string) (*RegisterResult, error) {
	hashed, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, errors.New("密码加密失败")
	}

	user, durable, err := s.users.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
		Role:         model.RoleViewer,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Durable:  durable,
	}, nil
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	User         *model.User
}

// Login 用户登录
func (s *AuthService) Login(ctx context.Context, username, pwd string) (*LoginResult, error) {
	user := s.users.GetByUsername(ctx, username)
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !password.Verify(pwd, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, errors.New("生成Token失败")
	}

	refreshToken := jwt.GenerateRefreshToken()
	s.tokens.Put(ctx, refreshToken, cache.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	})

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwt.GetExpiration().Seconds()),
		TokenType:    "Bearer",
		User:         user,
	}, nil
}

// RefreshTokenResult 刷新Token结果
type RefreshTokenResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
}

// RefreshToken 刷新Access Token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*RefreshTokenResult, error) {
	session := s.tokens.Get(ctx, refreshToken)
	if session == nil {
		return nil, ErrInvalidToken
	}

	user := s.users.GetByID(ctx, session.UserID)
	if user == nil {
		return nil, ErrUserNotFound
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, errors.New("生成Token失败")
	}

	return &RefreshTokenResult{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwt.GetExpiration().Seconds()),
		TokenType:   "Bearer",
	}, nil
}

// Logout 退出登录，吊销刷新令牌
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	s.tokens.Delete(ctx, refreshToken)
}

// GetUserByID 根据ID获取用户信息
func (s *AuthService) GetUserByID(ctx context.Context, userID string) *model.User {
	return s.users.GetByID(ctx, userID)
}

// ValidateToken 验证Access Token并返回Claims
func (s *AuthService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}
