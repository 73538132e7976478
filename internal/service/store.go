package service

import (
	"context"

	"github.com/Faus21/wander-wave-sub000/internal/model"
)

// 流和推荐引擎只读这些存储契约，由 repository 实现

type UserStore interface {
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	FindByNickname(ctx context.Context, nickname string) (*model.User, error)
	RandomUsers(ctx context.Context, limit int, exclude []uint) ([]model.User, error)
}

type PostStore interface {
	ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error)
	ListByHashtag(ctx context.Context, hashtagID uint, limit int) ([]model.Post, error)
	MostPopular(ctx context.Context, limit int) ([]model.Post, error)
}

// 点赞库和收藏库各实现一份
type InteractionStore interface {
	ListPostsByUser(ctx context.Context, userID uint, limit int) ([]model.Post, error)
}

type SubscriptionStore interface {
	GetSubscriptionIDs(ctx context.Context, userID uint) ([]uint, error)
	GetSubscriberIDs(ctx context.Context, userID uint) ([]uint, error)
}
