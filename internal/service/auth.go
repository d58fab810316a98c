package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/config"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
)

// ErrInvalidToken token 无效或已过期
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthResponse 登录/注册返回
type AuthResponse struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
}

// AuthService 认证服务：基于用户存储签发和校验 JWT
type AuthService struct {
	logger *zap.Logger
	store  *store.Store
	secret []byte
	ttl    time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(logger *zap.Logger, st *store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		logger: logger,
		store:  st,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Login 按邮箱登录（演示数据不校验密码，与参考实现一致）
func (s *AuthService) Login(ctx context.Context, email string) (*AuthResponse, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// Register 注册新用户并直接登录
func (s *AuthService) Register(ctx context.Context, name, email string, role models.UserRole) (*AuthResponse, error) {
	user := models.User{
		ID:        "user-" + uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.store.AddUser(user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return s.issueTokens(user)
}

// CurrentUser 根据 token 获取当前用户
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	sub, _ := claims["sub"].(string)
	user, err := s.store.GetUser(sub)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateToken 校验 JWT 并返回 claims
func (s *AuthService) ValidateToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// issueTokens 签发访问 token 和刷新 token
func (s *AuthService) issueTokens(user models.User) (*AuthResponse, error) {
	now := time.Now()

	sign := func(ttl time.Duration, kind string) (string, error) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  user.ID,
			"name": user.Name,
			"role": string(user.Role),
			"kind": kind,
			"iat":  now.Unix(),
			"exp":  now.Add(ttl).Unix(),
		})
		return token.SignedString(s.secret)
	}

	access, err := sign(s.ttl, "access")
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := sign(s.ttl*24, "refresh")
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &AuthResponse{User: user, Token: access, RefreshToken: refresh}, nil
}
