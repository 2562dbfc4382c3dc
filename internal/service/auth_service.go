package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"

    "github.com/google/uuid"
)

// AuthService 账号注册 / 登录 / token 解析。
// 核心领域只做授权，这里负责把请求方解析成 actor
type AuthService struct {
    users  repository.UserRepository
    secret []byte
    ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) *AuthService {
    if ttl <= 0 {
        ttl = 24 * time.Hour
    }
    return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

// Register 注册普通成员。角色不开放注册入口：
// 首个管理员由启动时 EnsureAdmin 播种，其余由后台角色管理提升
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, fmt.Errorf("hash password: %w", err)
    }
    u := &model.User{
        ID:       uuid.New().String(),
        Email:    email,
        Name:     name,
        Password: string(hash),
        Role:     model.RoleMember,
    }
    if err := s.users.Create(ctx, u); err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return nil, ErrEmailTaken
        }
        return nil, err
    }
    return u, nil
}

// EnsureAdmin 启动时播种管理员：邮箱不存在则建号，已存在则原地提权。
// 幂等，重启不会重复建号，也不会覆盖已有口令
func (s *AuthService) EnsureAdmin(ctx context.Context, email, name, password string) (*model.User, error) {
    existing, err := s.users.GetByEmail(ctx, email)
    if err == nil {
        if existing.Role != model.RoleAdmin {
            if err := s.users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
                return nil, err
            }
            existing.Role = model.RoleAdmin
        }
        return existing, nil
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, err
    }
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, fmt.Errorf("hash password: %w", err)
    }
    u := &model.User{
        ID:       uuid.New().String(),
        Email:    email,
        Name:     name,
        Password: string(hash),
        Role:     model.RoleAdmin,
    }
    if err := s.users.Create(ctx, u); err != nil {
        return nil, err
    }
    return u, nil
}

// Login 校验口令并签发 JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
    u, err := s.users.GetByEmail(ctx, email)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return "", nil, ErrBadCredentials
        }
        return "", nil, err
    }
    if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
        return "", nil, ErrBadCredentials
    }
    now := time.Now()
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
        Subject:   u.ID,
        IssuedAt:  jwt.NewNumericDate(now),
        ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
    })
    signed, err := token.SignedString(s.secret)
    if err != nil {
        return "", nil, fmt.Errorf("sign token: %w", err)
    }
    return signed, u, nil
}

// ParseToken 返回 token 主体的用户 ID
func (s *AuthService) ParseToken(tokenString string) (string, error) {
    token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
        }
        return s.secret, nil
    })
    if err != nil {
        return "", err
    }
    claims, ok := token.Claims.(*jwt.RegisteredClaims)
    if !ok || !token.Valid || claims.Subject == "" {
        return "", errors.New("invalid token")
    }
    return claims.Subject, nil
}

// ResolveActor token 为空返回 nil actor（匿名），无错误
func (s *AuthService) ResolveActor(ctx context.Context, tokenString string) (*model.User, error) {
    if tokenString == "" {
        return nil, nil
    }
    uid, err := s.ParseToken(tokenString)
    if err != nil {
        return nil, err
    }
    u, err := s.users.GetByID(ctx, uid)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return u, nil
}
