package service

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"golang.org/x/sync/errgroup"
)

type RecommendService struct {
	users UserStore
	subs  SubscriptionStore

	// rand.Rand 不并发安全，测试可注入固定种子
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRecommendService(users UserStore, subs SubscriptionStore, rng *rand.Rand) *RecommendService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RecommendService{users: users, subs: subs, rng: rng}
}

// 可能认识的人：二跳扩展为主，信号不足随机补足，固定返回 RecommendationPageSize 条
// 全站用户不足时有多少返回多少，绝不凑数
func (s *RecommendService) RecommendUsers(ctx context.Context, userID uint) ([]UserSummaryVO, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, e.ErrUserNotFound
	}
	subIDs, err := s.subs.GetSubscriptionIDs(ctx, userID)
	if err != nil {
		return nil, e.ErrServer
	}
	excluded := make(map[uint]bool, len(subIDs)+1)
	excluded[userID] = true
	for _, id := range subIDs {
		excluded[id] = true
	}

	candidates := s.expandOneHop(ctx, subIDs, excluded)
	if len(candidates) >= RecommendationPageSize {
		s.shuffle(candidates)
		summaries := make([]UserSummaryVO, 0, RecommendationPageSize)
		for _, id := range candidates {
			if len(summaries) == RecommendationPageSize {
				break
			}
			u, err := s.users.FindUserByID(ctx, id)
			if err != nil {
				// 候选已注销就换下一个
				continue
			}
			summaries = append(summaries, NewUserSummaryVO(u))
		}
		return s.backfill(ctx, summaries, excluded), nil
	}

	summaries := make([]UserSummaryVO, 0, RecommendationPageSize)
	for _, id := range candidates {
		u, err := s.users.FindUserByID(ctx, id)
		if err != nil {
			continue
		}
		summaries = append(summaries, NewUserSummaryVO(u))
	}
	return s.backfill(ctx, summaries, excluded), nil
}

// 二跳扩展：订阅的订阅，去掉自己和已订阅的
func (s *RecommendService) expandOneHop(ctx context.Context, subIDs []uint, excluded map[uint]bool) []uint {
	if len(subIDs) == 0 {
		return nil
	}
	hops := make([][]uint, len(subIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, subID := range subIDs {
		i, subID := i, subID
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(gctx, flowReadTimeout)
			defer cancel()
			ids, err := s.subs.GetSubscriptionIDs(rctx, subID)
			if err != nil {
				log.Printf("recommend users: expansion of %d skipped: %v", subID, err)
				return nil
			}
			hops[i] = ids
			return nil
		})
	}
	_ = g.Wait()
	seen := make(map[uint]bool)
	var candidates []uint
	for _, hop := range hops {
		for _, id := range hop {
			if excluded[id] || seen[id] {
				continue
			}
			seen[id] = true
			candidates = append(candidates, id)
		}
	}
	return candidates
}

// 随机补足到固定条数
func (s *RecommendService) backfill(ctx context.Context, summaries []UserSummaryVO, excluded map[uint]bool) []UserSummaryVO {
	need := RecommendationPageSize - len(summaries)
	if need <= 0 {
		return summaries
	}
	exclude := make([]uint, 0, len(excluded)+len(summaries))
	for id := range excluded {
		exclude = append(exclude, id)
	}
	for _, vo := range summaries {
		exclude = append(exclude, vo.ID)
	}
	users, err := s.users.RandomUsers(ctx, need, exclude)
	if err != nil {
		log.Printf("recommend users: random backfill skipped: %v", err)
		return summaries
	}
	for i := range users {
		summaries = append(summaries, NewUserSummaryVO(&users[i]))
	}
	return summaries
}

func (s *RecommendService) shuffle(ids []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
