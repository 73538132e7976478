package service

import (
	"time"

	"github.com/Faus21/wander-wave-sub000/internal/model"
)

// 流条目，按请求现做，不落库
type FeedItemVO struct {
	PostID         uint      `json:"post_id"`
	Title          string    `json:"title"`
	Pros           []string  `json:"pros"`
	Cons           []string  `json:"cons"`
	Hashtags       []string  `json:"hashtags"`
	LikeCount      int64     `json:"like_count"`
	SaveCount      int64     `json:"save_count"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorID       uint      `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	AuthorAvatar   string    `json:"author_avatar"`
}

func NewFeedItemVO(p *model.Post) FeedItemVO {
	tags := make([]string, 0, len(p.Hashtags))
	for _, t := range p.Hashtags {
		tags = append(tags, t.Title)
	}
	return FeedItemVO{
		PostID:         p.ID,
		Title:          p.Title,
		Pros:           p.Pros,
		Cons:           p.Cons,
		Hashtags:       tags,
		LikeCount:      p.LikeCount,
		SaveCount:      p.SaveCount,
		CreatedAt:      p.CreatedAt,
		AuthorID:       p.UserID,
		AuthorNickname: p.User.Nickname,
		AuthorAvatar:   p.User.Avatar,
	}
}

// 用户摘要
type UserSummaryVO struct {
	ID              uint   `json:"id"`
	Nickname        string `json:"nickname"`
	Avatar          string `json:"avatar"`
	Bio             string `json:"bio"`
	SubscriberCount int    `json:"subscriber_count"`
}

func NewUserSummaryVO(u *model.User) UserSummaryVO {
	return UserSummaryVO{
		ID:              u.ID,
		Nickname:        u.Nickname,
		Avatar:          u.Avatar,
		Bio:             u.Bio,
		SubscriberCount: u.SubscriberCount,
	}
}

// 用户公开资料
type UserProfileVO struct {
	ID                uint      `json:"id"`
	Nickname          string    `json:"nickname"`
	Avatar            string    `json:"avatar"`
	Bio               string    `json:"bio"`
	SubscriptionCount int       `json:"subscription_count"`
	SubscriberCount   int       `json:"subscriber_count"`
	CreatedAt         time.Time `json:"created_at"`
}
