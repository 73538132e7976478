package repository

import "gorm.io/gorm"

type Repositories struct {
	User         *UserRepository
	Post         *PostRepository
	HashTag      *HashTagRepository
	Like         *LikeRepository
	Save         *SaveRepository
	Subscription *SubscriptionRepository
	Notification *NotificationRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		HashTag:      NewHashTagRepository(db),
		Like:         NewLikeRepository(db),
		Save:         NewSaveRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
