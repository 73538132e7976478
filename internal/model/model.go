package model

import (
	"gorm.io/gorm"
)

// 通知类型
const (
	NotifyTypeSystem    = 0
	NotifyTypeSubscribe = 1
	NotifyTypeLike      = 2
	NotifyTypeSave      = 3
)

// 用户状态
const (
	UserStatusBanned = 0
	UserStatusNormal = 1
)

// 用户
type User struct {
	gorm.Model
	Nickname          string `gorm:"type:varchar(32);uniqueIndex;not null;comment:昵称" json:"nickname"`
	Password          string `gorm:"type:varchar(128);not null;comment:密码(加盐hash)" json:"-"`
	Email             string `gorm:"type:varchar(64);uniqueIndex;comment:邮箱" json:"email"`
	Avatar            string `gorm:"type:varchar(255);comment:头像URL" json:"avatar"`
	Bio               string `gorm:"type:varchar(500);comment:简介" json:"bio"`
	Role              int    `gorm:"type:tinyint;default:1;comment:角色(1:普通用户,2:管理员)" json:"role"`
	Status            int    `gorm:"type:tinyint;default:1;comment:状态(0:封禁,1:正常)" json:"status"`
	SubscriptionCount int    `gorm:"default:0;comment:关注数" json:"subscription_count"`
	SubscriberCount   int    `gorm:"default:0;comment:粉丝数" json:"subscriber_count"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// 游记
type Post struct {
	gorm.Model
	Title     string   `gorm:"type:varchar(255);not null;comment:标题" json:"title"`
	Pros      []string `gorm:"serializer:json;comment:优点列表" json:"pros"`
	Cons      []string `gorm:"serializer:json;comment:缺点列表" json:"cons"`
	UserID    uint     `gorm:"not null;index:idx_author;comment:作者ID" json:"user_id"`
	LikeCount int64    `gorm:"default:0;comment:点赞数" json:"like_count"`
	SaveCount int64    `gorm:"default:0;comment:收藏数" json:"save_count"`

	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hashtags []HashTag `gorm:"many2many:post_hashtags" json:"hashtags,omitempty"`
}

// 话题标签
type HashTag struct {
	gorm.Model
	Title string `gorm:"type:varchar(64);uniqueIndex;not null;comment:标签名" json:"title"`
}

// 订阅关系
type Subscription struct {
	gorm.Model
	SubscriberID   uint `gorm:"not null;index:idx_subscriber;comment:订阅者ID" json:"subscriber_id"`
	SubscribedToID uint `gorm:"not null;index:idx_subscribed_to;comment:被订阅者ID" json:"subscribed_to_id"`

	Subscriber   User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	SubscribedTo User `gorm:"foreignKey:SubscribedToID" json:"subscribed_to,omitempty"`
}

// 点赞
type Like struct {
	gorm.Model
	UserID uint `gorm:"not null;index:idx_user;comment:用户ID" json:"user_id"`
	PostID uint `gorm:"not null;index:idx_post;comment:游记ID" json:"post_id"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// 收藏
type Save struct {
	gorm.Model
	UserID uint `gorm:"not null;index:idx_user;comment:用户ID" json:"user_id"`
	PostID uint `gorm:"not null;index:idx_post;comment:游记ID" json:"post_id"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// 通知
type Notification struct {
	gorm.Model
	RecipientID uint   `gorm:"not null;index:idx_recipient;comment:接收者ID" json:"recipient_id"`
	ActorID     uint   `gorm:"comment:触发者ID(0表示系统)" json:"actor_id"`
	Type        int    `gorm:"type:tinyint;not null;comment:类型" json:"type"`
	Content     string `gorm:"type:varchar(255);comment:内容" json:"content"`
	TargetID    uint   `gorm:"comment:目标对象ID" json:"target_id"`
	IsRead      bool   `gorm:"default:false;comment:是否已读" json:"is_read"`

	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
