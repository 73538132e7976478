package service

import (
	"context"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/internal/repository"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"gorm.io/gorm"
)

type InteractionService struct {
	likeRepo *repository.LikeRepository
	saveRepo *repository.SaveRepository
	postRepo *repository.PostRepository
	notify   *NotificationService
	post     *PostService
	db       *gorm.DB
}

func NewInteractionService(like *repository.LikeRepository, save *repository.SaveRepository, post *repository.PostRepository, notify *NotificationService, postSvc *PostService, db *gorm.DB) *InteractionService {
	return &InteractionService{likeRepo: like, saveRepo: save, postRepo: post, notify: notify, post: postSvc, db: db}
}

// 点赞开关，计数和记录在同一事务里动
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return e.ErrPostNotFound
	}
	hasLiked, err := s.likeRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return e.ErrServer
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if hasLiked {
			if err := s.likeRepo.RemoveLike(ctx, tx, userID, postID); err != nil {
				return err
			}
			return s.postRepo.UpdateLikeCount(ctx, tx, postID, -1)
		}
		like := &model.Like{UserID: userID, PostID: postID}
		if err := s.likeRepo.AddLike(ctx, tx, like); err != nil {
			return err
		}
		return s.postRepo.UpdateLikeCount(ctx, tx, postID, 1)
	})
	if err != nil {
		return e.ErrServer
	}
	s.post.DeletePostCache(ctx, postID)
	if !hasLiked && post.UserID != userID {
		s.notify.sendNotification(ctx, nil, post.UserID, userID, model.NotifyTypeLike, "赞了你的游记", postID)
	}
	return nil
}

// 收藏开关
func (s *InteractionService) ToggleSave(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return e.ErrPostNotFound
	}
	hasSaved, err := s.saveRepo.IsSaved(ctx, userID, postID)
	if err != nil {
		return e.ErrServer
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if hasSaved {
			if err := s.saveRepo.RemoveSave(ctx, tx, userID, postID); err != nil {
				return err
			}
			return s.postRepo.UpdateSaveCount(ctx, tx, postID, -1)
		}
		save := &model.Save{UserID: userID, PostID: postID}
		if err := s.saveRepo.AddSave(ctx, tx, save); err != nil {
			return err
		}
		return s.postRepo.UpdateSaveCount(ctx, tx, postID, 1)
	})
	if err != nil {
		return e.ErrServer
	}
	s.post.DeletePostCache(ctx, postID)
	if !hasSaved && post.UserID != userID {
		s.notify.sendNotification(ctx, nil, post.UserID, userID, model.NotifyTypeSave, "收藏了你的游记", postID)
	}
	return nil
}

// 获取点赞过的游记
func (s *InteractionService) GetLikedPosts(ctx context.Context, userID uint, limit int) ([]model.Post, error) {
	if limit <= 0 || limit > PageSize {
		limit = PageSize
	}
	return s.likeRepo.ListPostsByUser(ctx, userID, limit)
}

// 获取收藏列表
func (s *InteractionService) GetSavedPosts(ctx context.Context, userID uint, limit int) ([]model.Post, error) {
	if limit <= 0 || limit > PageSize {
		limit = PageSize
	}
	return s.saveRepo.ListPostsByUser(ctx, userID, limit)
}
