package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type FlowService struct {
	users UserStore
	posts PostStore
	likes InteractionStore
	saves InteractionStore
	subs  SubscriptionStore
	rdb   *redis.Client
	sf    singleflight.Group
}

func NewFlowService(users UserStore, posts PostStore, likes, saves InteractionStore, subs SubscriptionStore, rdb *redis.Client) *FlowService {
	return &FlowService{users: users, posts: posts, likes: likes, saves: saves, subs: subs, rdb: rdb}
}

// 订阅流：订阅作者的全部游记合并，按发布时间最新在前
func (s *FlowService) PersonalFlow(ctx context.Context, userID uint) ([]FeedItemVO, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, e.ErrUserNotFound
	}
	subIDs, err := s.subs.GetSubscriptionIDs(ctx, userID)
	if err != nil {
		return nil, e.ErrServer
	}
	if len(subIDs) == 0 {
		return []FeedItemVO{}, nil
	}
	var (
		mu    sync.Mutex
		posts []model.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range subIDs {
		id := id
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(gctx, flowReadTimeout)
			defer cancel()
			list, err := s.posts.ListByAuthor(rctx, id)
			if err != nil {
				// 单个订阅读失败只丢掉该来源，已注销的作者也走这里
				log.Printf("personal flow: posts of author %d skipped: %v", id, err)
				return nil
			}
			mu.Lock()
			posts = append(posts, list...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	items := make([]FeedItemVO, 0, len(posts))
	for i := range posts {
		items = append(items, NewFeedItemVO(&posts[i]))
	}
	return items, nil
}

// 从最近的点赞和收藏提取兴趣标签，重复保留作权重
func (s *FlowService) extractAffinity(ctx context.Context, userID uint, limit int) []model.HashTag {
	var tags []model.HashTag
	sources := []struct {
		name  string
		store InteractionStore
	}{
		{"likes", s.likes},
		{"saves", s.saves},
	}
	for _, src := range sources {
		rctx, cancel := context.WithTimeout(ctx, flowReadTimeout)
		posts, err := src.store.ListPostsByUser(rctx, userID, limit)
		cancel()
		if err != nil {
			log.Printf("affinity: %s of user %d skipped: %v", src.name, userID, err)
			continue
		}
		for i := range posts {
			tags = append(tags, posts[i].Hashtags...)
		}
	}
	return tags
}

// 推荐流：兴趣标签候选在前，热门候选在后，按游记ID去重保序
func (s *FlowService) RecommendationFlow(ctx context.Context, userID uint) ([]FeedItemVO, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, e.ErrUserNotFound
	}
	tags := s.extractAffinity(ctx, userID, PageSize)
	seenTags := make(map[uint]bool, len(tags))
	tagIDs := make([]uint, 0, len(tags))
	for _, t := range tags {
		if !seenTags[t.ID] {
			seenTags[t.ID] = true
			tagIDs = append(tagIDs, t.ID)
		}
	}
	byTag := make([][]model.Post, len(tagIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, tagID := range tagIDs {
		i, tagID := i, tagID
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(gctx, flowReadTimeout)
			defer cancel()
			list, err := s.posts.ListByHashtag(rctx, tagID, PageSize)
			if err != nil {
				log.Printf("recommendation flow: hashtag %d skipped: %v", tagID, err)
				return nil
			}
			byTag[i] = list
			return nil
		})
	}
	_ = g.Wait()
	var candidates []model.Post
	for _, list := range byTag {
		candidates = append(candidates, list...)
	}
	popular, err := s.fetchPopular(ctx, PageSize)
	if err != nil {
		// 热门来源失败不致命，内容候选照常返回
		log.Printf("recommendation flow: popular lookup skipped: %v", err)
	}
	candidates = append(candidates, popular...)

	seen := make(map[uint]bool, len(candidates))
	items := make([]FeedItemVO, 0, len(candidates))
	for i := range candidates {
		if seen[candidates[i].ID] {
			continue
		}
		seen[candidates[i].ID] = true
		items = append(items, NewFeedItemVO(&candidates[i]))
	}
	return items, nil
}

// 热门榜走短TTL缓存，singleflight 合并同时的回源
func (s *FlowService) fetchPopular(ctx context.Context, limit int) ([]model.Post, error) {
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, CacheKeyPopularPosts).Result()
		if err == nil {
			var posts []model.Post
			if json.Unmarshal([]byte(val), &posts) == nil {
				return posts, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("redis error:%v", err)
		}
	}
	v, err, _ := s.sf.Do(CacheKeyPopularPosts, func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(ctx, flowReadTimeout)
		defer cancel()
		posts, err := s.posts.MostPopular(rctx, limit)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			data, _ := json.Marshal(posts)
			s.rdb.Set(ctx, CacheKeyPopularPosts, data, getRandomExpire(time.Minute))
		}
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Post), nil
}
