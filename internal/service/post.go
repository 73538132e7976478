package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/internal/repository"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type PostService struct {
	repo    *repository.PostRepository
	tagRepo *repository.HashTagRepository
	rdb     *redis.Client
	db      *gorm.DB
}

func NewPostService(repo *repository.PostRepository, tagRepo *repository.HashTagRepository, rdb *redis.Client, db *gorm.DB) *PostService {
	return &PostService{repo: repo, tagRepo: tagRepo, rdb: rdb, db: db}
}

// 发布游记，标签不存在就建
func (s *PostService) CreatePost(ctx context.Context, authorID uint, title string, pros, cons, hashtags []string) error {
	if utf8.RuneCountInString(title) == 0 || utf8.RuneCountInString(title) > 255 {
		return e.ErrInvalidArgs
	}
	if len(pros) == 0 && len(cons) == 0 {
		return e.ErrInvalidArgs
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &model.Post{
			Title:  title,
			Pros:   pros,
			Cons:   cons,
			UserID: authorID,
		}
		for _, tagTitle := range hashtags {
			if tagTitle == "" {
				continue
			}
			tag, err := s.tagRepo.FindOrCreate(ctx, tx, tagTitle)
			if err != nil {
				return err
			}
			post.Hashtags = append(post.Hashtags, *tag)
		}
		return s.repo.CreatePost(ctx, tx, post)
	})
	if err != nil {
		return e.ErrServer
	}
	return nil
}

func (s *PostService) GetPostDetail(ctx context.Context, postID uint) (*model.Post, error) {
	cacheKey := fmt.Sprintf(CacheKeyPostDetail, postID)
	val, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		if val == CacheNullPlaceholder {
			return nil, e.ErrPostNotFound
		}
		var post model.Post
		if json.Unmarshal([]byte(val), &post) == nil {
			return &post, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("redis error:%v", err)
	}
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.rdb.Set(ctx, cacheKey, CacheNullPlaceholder, time.Minute)
			return nil, e.ErrPostNotFound
		}
		return nil, e.ErrServer
	}
	data, _ := json.Marshal(post)
	s.rdb.Set(ctx, cacheKey, data, getRandomExpire(30*time.Minute))
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, postID, authorID uint) error {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return e.ErrPostNotFound
	}
	if post.UserID != authorID {
		return e.ErrPermission
	}
	if err := s.repo.DeletePost(ctx, nil, postID); err != nil {
		return e.ErrServer
	}
	s.DeletePostCache(ctx, postID)
	return nil
}

func (s *PostService) DeletePostCache(ctx context.Context, postID uint) {
	s.rdb.Del(ctx, fmt.Sprintf(CacheKeyPostDetail, postID))
}

// 获取指定用户主页
func (s *PostService) GetUserPosts(ctx context.Context, targetID uint, page, pageSize int) ([]model.Post, error) {
	offset := (page - 1) * pageSize
	return s.repo.ListByAuthorPage(ctx, targetID, offset, pageSize)
}

// 热门排行榜
func (s *PostService) GetLeaderboard(ctx context.Context, limit int) ([]model.Post, error) {
	return s.repo.MostPopular(ctx, limit)
}
