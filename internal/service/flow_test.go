package service

import (
	"context"
	"testing"
	"time"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUser(id uint, nickname string) *model.User {
	return &model.User{
		Model:    gorm.Model{ID: id},
		Nickname: nickname,
		Status:   model.UserStatusNormal,
	}
}

func newTestPost(id, authorID uint, createdAt time.Time, tags ...model.HashTag) model.Post {
	return model.Post{
		Model:    gorm.Model{ID: id, CreatedAt: createdAt},
		Title:    "trip",
		Pros:     []string{"风景好"},
		UserID:   authorID,
		User:     model.User{Model: gorm.Model{ID: authorID}},
		Hashtags: tags,
	}
}

func newFlowService(users *fakeUserStore, posts *fakePostStore, likes, saves *fakeInteractionStore, subs *fakeSubscriptionStore) *FlowService {
	if likes == nil {
		likes = &fakeInteractionStore{}
	}
	if saves == nil {
		saves = &fakeInteractionStore{}
	}
	return NewFlowService(users, posts, likes, saves, subs, nil)
}

func TestPersonalFlowUnknownUser(t *testing.T) {
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{}},
		&fakePostStore{},
		nil, nil,
		&fakeSubscriptionStore{},
	)
	_, err := svc.PersonalFlow(context.Background(), 42)
	assert.ErrorIs(t, err, e.ErrUserNotFound)
}

func TestPersonalFlowEmptySubscriptions(t *testing.T) {
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{},
		nil, nil,
		&fakeSubscriptionStore{subs: map[uint][]uint{}},
	)
	items, err := svc.PersonalFlow(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPersonalFlowOrderingAndAuthors(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{byAuthor: map[uint][]model.Post{
			2: {newTestPost(101, 2, t1), newTestPost(102, 2, t3)},
			3: {newTestPost(103, 3, t2)},
		}},
		nil, nil,
		&fakeSubscriptionStore{subs: map[uint][]uint{1: {2, 3}}},
	)
	items, err := svc.PersonalFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// 最新在前
	assert.Equal(t, uint(102), items[0].PostID)
	assert.Equal(t, uint(103), items[1].PostID)
	assert.Equal(t, uint(101), items[2].PostID)
	// 作者都来自订阅集合
	subscribed := map[uint]bool{2: true, 3: true}
	for _, item := range items {
		assert.True(t, subscribed[item.AuthorID])
	}
	assert.Equal(t, uint(2), items[0].AuthorID)
	assert.Equal(t, uint(3), items[1].AuthorID)
}

func TestPersonalFlowSkipsFailedAuthor(t *testing.T) {
	now := time.Now()
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{
			byAuthor:    map[uint][]model.Post{3: {newTestPost(103, 3, now)}},
			failAuthors: map[uint]bool{2: true},
		},
		nil, nil,
		&fakeSubscriptionStore{subs: map[uint][]uint{1: {2, 3}}},
	)
	items, err := svc.PersonalFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(103), items[0].PostID)
}

func TestRecommendationFlowColdStart(t *testing.T) {
	now := time.Now()
	popular := []model.Post{
		newTestPost(201, 5, now),
		newTestPost(202, 6, now.Add(-time.Hour)),
	}
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{popular: popular},
		nil, nil,
		&fakeSubscriptionStore{},
	)
	items, err := svc.RecommendationFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint(201), items[0].PostID)
	assert.Equal(t, uint(202), items[1].PostID)
}

func TestRecommendationFlowDedup(t *testing.T) {
	now := time.Now()
	beach := model.HashTag{Model: gorm.Model{ID: 7}, Title: "海滩"}
	q1 := newTestPost(301, 5, now)
	q2 := newTestPost(302, 6, now)
	q3 := newTestPost(303, 7, now)
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{
			byTag:   map[uint][]model.Post{7: {q1, q2}},
			popular: []model.Post{q2, q3},
		},
		&fakeInteractionStore{posts: []model.Post{newTestPost(100, 2, now, beach)}},
		nil,
		&fakeSubscriptionStore{},
	)
	items, err := svc.RecommendationFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// 内容候选在前，重复的 q2 只出现一次
	assert.Equal(t, uint(301), items[0].PostID)
	assert.Equal(t, uint(302), items[1].PostID)
	assert.Equal(t, uint(303), items[2].PostID)
}

func TestRecommendationFlowDuplicateTagsLookupOnce(t *testing.T) {
	now := time.Now()
	beach := model.HashTag{Model: gorm.Model{ID: 7}, Title: "海滩"}
	posts := &fakePostStore{
		byTag: map[uint][]model.Post{7: {newTestPost(301, 5, now)}},
	}
	// 两个点赞一个收藏都带同一个标签，查询只发一次
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		posts,
		&fakeInteractionStore{posts: []model.Post{
			newTestPost(100, 2, now, beach),
			newTestPost(101, 3, now, beach),
		}},
		&fakeInteractionStore{posts: []model.Post{newTestPost(102, 4, now, beach)}},
		&fakeSubscriptionStore{},
	)
	items, err := svc.RecommendationFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, posts.tagCalls[7])
}

func TestRecommendationFlowPartialTagFailure(t *testing.T) {
	now := time.Now()
	beach := model.HashTag{Model: gorm.Model{ID: 7}, Title: "海滩"}
	hills := model.HashTag{Model: gorm.Model{ID: 8}, Title: "山地"}
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{
			byTag:    map[uint][]model.Post{8: {newTestPost(305, 5, now)}},
			failTags: map[uint]bool{7: true},
		},
		&fakeInteractionStore{posts: []model.Post{newTestPost(100, 2, now, beach, hills)}},
		nil,
		&fakeSubscriptionStore{},
	)
	items, err := svc.RecommendationFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(305), items[0].PostID)
}

func TestRecommendationFlowPopularFailureNotFatal(t *testing.T) {
	now := time.Now()
	beach := model.HashTag{Model: gorm.Model{ID: 7}, Title: "海滩"}
	svc := newFlowService(
		&fakeUserStore{users: map[uint]*model.User{1: newTestUser(1, "alice")}},
		&fakePostStore{
			byTag:      map[uint][]model.Post{7: {newTestPost(301, 5, now)}},
			popularErr: errStoreDown,
		},
		&fakeInteractionStore{posts: []model.Post{newTestPost(100, 2, now, beach)}},
		nil,
		&fakeSubscriptionStore{},
	)
	items, err := svc.RecommendationFlow(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(301), items[0].PostID)
}
