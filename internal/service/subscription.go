package service

import (
	"context"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/internal/repository"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"gorm.io/gorm"
)

type SubscriptionService struct {
	repo     *repository.SubscriptionRepository
	userRepo *repository.UserRepository
	notify   *NotificationService
	db       *gorm.DB
}

func NewSubscriptionService(repo *repository.SubscriptionRepository, user *repository.UserRepository, notify *NotificationService, db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{repo: repo, userRepo: user, notify: notify, db: db}
}

// 订阅，关系和两侧计数在同一事务里动
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, targetID uint) error {
	if subscriberID == targetID {
		return e.ErrSelfAction
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetID); err != nil {
		return e.ErrUserNotFound
	}
	isSubscribed, err := s.repo.IsSubscribed(ctx, subscriberID, targetID)
	if err != nil {
		return e.ErrServer
	}
	if isSubscribed {
		return e.ErrAlreadySubscribed
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Subscribe(ctx, tx, subscriberID, targetID); err != nil {
			return err
		}
		if err := s.userRepo.UpdateSubscriptionCount(ctx, tx, subscriberID, 1); err != nil {
			return err
		}
		return s.userRepo.UpdateSubscriberCount(ctx, tx, targetID, 1)
	})
	if err != nil {
		return e.ErrServer
	}
	s.notify.sendNotification(ctx, nil, targetID, subscriberID, model.NotifyTypeSubscribe, "订阅了你", 0)
	return nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, targetID uint) error {
	isSubscribed, err := s.repo.IsSubscribed(ctx, subscriberID, targetID)
	if err != nil {
		return e.ErrServer
	}
	if !isSubscribed {
		return e.ErrNotSubscribed
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Unsubscribe(ctx, tx, subscriberID, targetID); err != nil {
			return err
		}
		if err := s.userRepo.UpdateSubscriptionCount(ctx, tx, subscriberID, -1); err != nil {
			return err
		}
		return s.userRepo.UpdateSubscriberCount(ctx, tx, targetID, -1)
	})
	if err != nil {
		return e.ErrServer
	}
	return nil
}

// 获取当前用户的订阅列表
func (s *SubscriptionService) GetSubscriptions(ctx context.Context, userID uint, page, pageSize int) ([]model.User, error) {
	offset := (page - 1) * pageSize
	return s.repo.GetSubscriptions(ctx, userID, offset, pageSize)
}

// 获取当前用户的粉丝列表
func (s *SubscriptionService) GetSubscribers(ctx context.Context, userID uint, page, pageSize int) ([]model.User, error) {
	offset := (page - 1) * pageSize
	return s.repo.GetSubscribers(ctx, userID, offset, pageSize)
}
