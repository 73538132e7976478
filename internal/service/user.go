package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/internal/repository"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo   *repository.UserRepository
	rdb    *redis.Client
	secret string
}

func NewUserService(repo *repository.UserRepository, rdb *redis.Client, secret string) *UserService {
	return &UserService{repo: repo, rdb: rdb, secret: secret}
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *UserService) Register(ctx context.Context, nickname, password, email string) error {
	_, err := s.repo.FindByNickname(ctx, nickname)
	if err == nil {
		return e.ErrUserExist
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return e.ErrPassword
	}
	user := &model.User{
		Nickname: nickname,
		Password: string(hashedPassword),
		Email:    email,
		Role:     1,
		Status:   model.UserStatusNormal, //默认正常
	}
	if err := s.repo.CreateUser(ctx, nil, user); err != nil {
		return e.ErrServer
	}
	return nil
}

// 鉴权加密
func (s *UserService) generateToken(userID uint, nickname string, role int) (string, error) {
	claims := &jwt.MapClaims{
		"user_id":  userID,
		"nickname": nickname,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *UserService) Login(ctx context.Context, nickname, password string) (*LoginResponse, error) {
	user, err := s.repo.FindByNickname(ctx, nickname)
	if err != nil {
		return nil, e.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, e.ErrPassword
	}
	if user.Status == model.UserStatusBanned {
		return nil, e.ErrUserBanned
	}
	token, err := s.generateToken(user.ID, user.Nickname, user.Role)
	if err != nil {
		return nil, e.ErrToken
	}
	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// 个人信息的修改
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, avatar, bio string) error {
	if err := s.repo.UpdateProfile(ctx, nil, userID, avatar, bio); err != nil {
		return e.ErrServer
	}
	s.rdb.Del(ctx, fmt.Sprintf(CacheKeyUserProfile, userID))
	return nil
}

// 获取他人公开资料，短TTL缓存，空值占位挡穿透
func (s *UserService) GetUserProfile(ctx context.Context, targetID uint) (*UserProfileVO, error) {
	cacheKey := fmt.Sprintf(CacheKeyUserProfile, targetID)
	val, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		if val == CacheNullPlaceholder {
			return nil, e.ErrUserNotFound
		}
		var profile UserProfileVO
		if json.Unmarshal([]byte(val), &profile) == nil {
			return &profile, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("redis error:%v", err)
	}
	user, err := s.repo.FindUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.rdb.Set(ctx, cacheKey, CacheNullPlaceholder, time.Minute)
			return nil, e.ErrUserNotFound
		}
		return nil, e.ErrServer
	}
	profile := &UserProfileVO{
		ID:                user.ID,
		Nickname:          user.Nickname,
		Avatar:            user.Avatar,
		Bio:               user.Bio,
		SubscriptionCount: user.SubscriptionCount,
		SubscriberCount:   user.SubscriberCount,
		CreatedAt:         user.CreatedAt,
	}
	data, _ := json.Marshal(profile)
	s.rdb.Set(ctx, cacheKey, data, getRandomExpire(30*time.Minute))
	return profile, nil
}

func (s *UserService) BanUser(ctx context.Context, id uint) error {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return e.ErrUserNotFound
	}
	if user.Role == 2 {
		return e.ErrPermission
	}
	if err := s.repo.BanUser(ctx, nil, id); err != nil {
		return e.ErrServer
	}
	s.rdb.Del(ctx, fmt.Sprintf(CacheKeyUserProfile, id))
	return nil
}

func (s *UserService) UnbanUser(ctx context.Context, targetID uint) error {
	targetUser, err := s.repo.FindUserByID(ctx, targetID)
	if err != nil {
		return e.ErrUserNotFound
	}
	if targetUser.Status == model.UserStatusNormal {
		return e.ErrInvalidArgs
	}
	return s.repo.UnbanUser(ctx, nil, targetID)
}
