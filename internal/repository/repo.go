package repository

import (
	"context"

	"github.com/Faus21/wander-wave-sub000/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// 用户查找函数&&状态更新
func (r *UserRepository) CreateUser(ctx context.Context, tx *gorm.DB, user *model.User) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(user).Error
}
func (r *UserRepository) FindByNickname(ctx context.Context, nickname string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("nickname=?", nickname).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
func (r *UserRepository) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// 随机取一页用户，冷启动和补足用
func (r *UserRepository) RandomUsers(ctx context.Context, limit int, exclude []uint) ([]model.User, error) {
	db := r.DB.WithContext(ctx).Model(&model.User{}).Where("status=?", model.UserStatusNormal)
	if len(exclude) > 0 {
		db = db.Where("id NOT IN ?", exclude)
	}
	var users []model.User
	err := db.Order("RAND()").Limit(limit).Find(&users).Error
	return users, err
}

// 个人信息更改
func (r *UserRepository) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uint, avatar, bio string) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	updates := map[string]interface{}{}
	if avatar != "" {
		updates["avatar"] = avatar
	}
	if bio != "" {
		updates["bio"] = bio
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).Updates(updates).Error
}

// 订阅计数由订阅写路径维护
func (r *UserRepository) UpdateSubscriptionCount(ctx context.Context, tx *gorm.DB, userID uint, delta int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).Update("subscription_count", gorm.Expr("subscription_count + ?", delta)).Error
}
func (r *UserRepository) UpdateSubscriberCount(ctx context.Context, tx *gorm.DB, userID uint, delta int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).Update("subscriber_count", gorm.Expr("subscriber_count + ?", delta)).Error
}

// 封禁处理
func (r *UserRepository) BanUser(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", id).Update("status", model.UserStatusBanned).Error
}
func (r *UserRepository) UnbanUser(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", id).Update("status", model.UserStatusNormal).Error
}
func (r *UserRepository) IsUserBanned(ctx context.Context, id uint) (bool, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Select("status").First(&user, id).Error
	if err != nil {
		return false, err
	}
	return user.Status == model.UserStatusBanned, nil
}

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// 处理游记操作：发布、获取详细、删除
func (r *PostRepository) CreatePost(ctx context.Context, tx *gorm.DB, post *model.Post) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(post).Error
}
func (r *PostRepository) FindPostByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Preload("User").Preload("Hashtags").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}
func (r *PostRepository) DeletePost(ctx context.Context, tx *gorm.DB, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Delete(&model.Post{}, postID).Error
}

// 获取指定作者的全部游记，标签和作者一并取出
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Where("user_id=?", authorID).Preload("User").Preload("Hashtags").Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// 获取指定用户主页
func (r *PostRepository) ListByAuthorPage(ctx context.Context, authorID uint, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Where("user_id=?", authorID).Preload("User").Preload("Hashtags").Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// 按标签取游记
func (r *PostRepository) ListByHashtag(ctx context.Context, hashtagID uint, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN post_hashtags ON posts.id = post_hashtags.post_id").
		Where("post_hashtags.hash_tag_id=?", hashtagID).
		Preload("User").Preload("Hashtags").
		Order("posts.created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// 热门排行，点赞数降序，同分取最新
func (r *PostRepository) MostPopular(ctx context.Context, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Preload("User").Preload("Hashtags").Order("like_count DESC, created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// 点赞收藏计数由互动写路径维护
func (r *PostRepository) UpdateLikeCount(ctx context.Context, tx *gorm.DB, postID uint, delta int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("id=?", postID).Update("like_count", gorm.Expr("like_count + ?", delta)).Error
}
func (r *PostRepository) UpdateSaveCount(ctx context.Context, tx *gorm.DB, postID uint, delta int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("id=?", postID).Update("save_count", gorm.Expr("save_count + ?", delta)).Error
}

type HashTagRepository struct {
	DB *gorm.DB
}

func NewHashTagRepository(db *gorm.DB) *HashTagRepository {
	return &HashTagRepository{DB: db}
}

// 发布时确保标签存在
func (r *HashTagRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, title string) (*model.HashTag, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var tag model.HashTag
	err := db.WithContext(ctx).Where(model.HashTag{Title: title}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
func (r *HashTagRepository) FindByTitle(ctx context.Context, title string) (*model.HashTag, error) {
	var tag model.HashTag
	err := r.DB.WithContext(ctx).Where("title=?", title).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

type LikeRepository struct {
	DB *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

// 处理点赞
func (r *LikeRepository) AddLike(ctx context.Context, tx *gorm.DB, like *model.Like) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(like).Error
}
func (r *LikeRepository) RemoveLike(ctx context.Context, tx *gorm.DB, userID, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("user_id=? AND post_id=?", userID, postID).Delete(&model.Like{}).Error
}
func (r *LikeRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).Where("user_id=? AND post_id=?", userID, postID).Count(&count).Error
	return count > 0, err
}

// 最近点赞过的游记，兴趣信号用
func (r *LikeRepository) ListPostsByUser(ctx context.Context, userID uint, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN likes ON posts.id = likes.post_id").
		Where("likes.user_id=?", userID).
		Preload("Hashtags").
		Order("likes.created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

type SaveRepository struct {
	DB *gorm.DB
}

func NewSaveRepository(db *gorm.DB) *SaveRepository {
	return &SaveRepository{DB: db}
}

// 处理收藏
func (r *SaveRepository) AddSave(ctx context.Context, tx *gorm.DB, save *model.Save) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(save).Error
}
func (r *SaveRepository) RemoveSave(ctx context.Context, tx *gorm.DB, userID, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("user_id=? AND post_id=?", userID, postID).Delete(&model.Save{}).Error
}
func (r *SaveRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Save{}).Where("user_id=? AND post_id=?", userID, postID).Count(&count).Error
	return count > 0, err
}

// 最近收藏的游记
func (r *SaveRepository) ListPostsByUser(ctx context.Context, userID uint, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN saves ON posts.id = saves.post_id").
		Where("saves.user_id=?", userID).
		Preload("Hashtags").
		Order("saves.created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// 处理订阅关系
func (r *SubscriptionRepository) Subscribe(ctx context.Context, tx *gorm.DB, subscriberID, targetID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	sub := model.Subscription{
		SubscriberID:   subscriberID,
		SubscribedToID: targetID,
	}
	return db.WithContext(ctx).Create(&sub).Error
}
func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, tx *gorm.DB, subscriberID, targetID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("subscriber_id=? AND subscribed_to_id=?", subscriberID, targetID).Delete(&model.Subscription{}).Error
}
func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, targetID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id=? AND subscribed_to_id=?", subscriberID, targetID).Count(&count).Error
	return count > 0, err
}
func (r *SubscriptionRepository) GetSubscriptionIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id=?", userID).Pluck("subscribed_to_id", &ids).Error
	return ids, err
}
func (r *SubscriptionRepository) GetSubscriberIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Subscription{}).Where("subscribed_to_id=?", userID).Pluck("subscriber_id", &ids).Error
	return ids, err
}

// 获取订阅列表
func (r *SubscriptionRepository) GetSubscriptions(ctx context.Context, userID uint, offset, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Table("users").
		Select("users.id,users.nickname,users.avatar,users.bio,users.subscriber_count,users.created_at").
		Joins("JOIN subscriptions ON users.id = subscriptions.subscribed_to_id").
		Where("subscriptions.subscriber_id=?", userID).
		Order("subscriptions.created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// 获取粉丝列表（谁订阅了我）
func (r *SubscriptionRepository) GetSubscribers(ctx context.Context, userID uint, offset, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Table("users").
		Select("users.id,users.nickname,users.avatar,users.bio,users.subscriber_count,users.created_at").
		Joins("JOIN subscriptions ON users.id = subscriptions.subscriber_id").
		Where("subscriptions.subscribed_to_id=?", userID).
		Order("subscriptions.created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// 信息通知
type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}
func (r *NotificationRepository) CreateNotification(ctx context.Context, tx *gorm.DB, n *model.Notification) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(n).Error
}
func (r *NotificationRepository) GetNotifications(ctx context.Context, userID uint, offset, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.WithContext(ctx).Where("recipient_id=?", userID).Preload("Actor").Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, err
}

// 红标信息
func (r *NotificationRepository) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id=? AND is_read=?", userID, false).Count(&count).Error
	return count, err
}
func (r *NotificationRepository) MarkAsRead(ctx context.Context, tx *gorm.DB, notificationID, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Notification{}).Where("id=? AND recipient_id=?", notificationID, userID).Update("is_read", true).Error
}
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id=? AND is_read=?", userID, false).Update("is_read", true).Error
}
