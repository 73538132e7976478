package service

import (
	"math/rand"
	"time"

	"github.com/Faus21/wander-wave-sub000/internal/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type Service struct {
	User         *UserService
	Post         *PostService
	Interaction  *InteractionService
	Subscription *SubscriptionService
	Notification *NotificationService
	Flow         *FlowService
	Recommend    *RecommendService
}

func NewService(db *gorm.DB, rdb *redis.Client, repos *repository.Repositories, jwtSecret string) *Service {
	notify := NewNotificationService(repos.Notification)
	postSvc := NewPostService(repos.Post, repos.HashTag, rdb, db)
	return &Service{
		User:         NewUserService(repos.User, rdb, jwtSecret),
		Post:         postSvc,
		Interaction:  NewInteractionService(repos.Like, repos.Save, repos.Post, notify, postSvc, db),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User, notify, db),
		Notification: notify,
		Flow:         NewFlowService(repos.User, repos.Post, repos.Like, repos.Save, repos.Subscription, rdb),
		Recommend:    NewRecommendService(repos.User, repos.Subscription, rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
}
