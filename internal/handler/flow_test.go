package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Faus21/wander-wave-sub000/internal/model"
	"github.com/Faus21/wander-wave-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUsers struct {
	user *model.User
}

func (s *stubUsers) FindUserByID(_ context.Context, id uint) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) FindByNickname(_ context.Context, _ string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) RandomUsers(_ context.Context, _ int, _ []uint) ([]model.User, error) {
	return nil, nil
}

type stubPosts struct {
	byAuthor map[uint][]model.Post
}

func (s *stubPosts) ListByAuthor(_ context.Context, authorID uint) ([]model.Post, error) {
	return s.byAuthor[authorID], nil
}
func (s *stubPosts) ListByHashtag(_ context.Context, _ uint, _ int) ([]model.Post, error) {
	return nil, nil
}
func (s *stubPosts) MostPopular(_ context.Context, _ int) ([]model.Post, error) {
	return nil, nil
}

type stubInteractions struct{}

func (stubInteractions) ListPostsByUser(_ context.Context, _ uint, _ int) ([]model.Post, error) {
	return nil, nil
}

type stubSubs struct {
	subs []uint
}

func (s *stubSubs) GetSubscriptionIDs(_ context.Context, _ uint) ([]uint, error) {
	return s.subs, nil
}
func (s *stubSubs) GetSubscriberIDs(_ context.Context, _ uint) ([]uint, error) {
	return nil, nil
}

func TestSliceFlowPage(t *testing.T) {
	items := make([]service.FeedItemVO, 25)
	for i := range items {
		items[i].PostID = uint(i + 1)
	}
	assert.Len(t, sliceFlowPage(items, 1, 10), 10)
	assert.Len(t, sliceFlowPage(items, 3, 10), 5)
	assert.Empty(t, sliceFlowPage(items, 4, 10))
	assert.Equal(t, uint(11), sliceFlowPage(items, 2, 10)[0].PostID)
}

func TestGetPersonalFlowEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Now()
	user := &model.User{Model: gorm.Model{ID: 1}, Nickname: "alice"}
	flow := service.NewFlowService(
		&stubUsers{user: user},
		&stubPosts{byAuthor: map[uint][]model.Post{
			2: {
				{Model: gorm.Model{ID: 10, CreatedAt: now}, Title: "冰岛环岛", UserID: 2},
				{Model: gorm.Model{ID: 11, CreatedAt: now.Add(time.Hour)}, Title: "海边徒步", UserID: 2},
			},
		}},
		stubInteractions{}, stubInteractions{},
		&stubSubs{subs: []uint{2}},
		nil,
	)
	h := NewHandler(&service.Service{Flow: flow})

	r := gin.New()
	r.GET("/user/flow", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		h.GetPersonalFlow(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/flow", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Code int                  `json:"code"`
		Data []service.FeedItemVO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, uint(11), resp.Data[0].PostID)
	assert.Equal(t, uint(10), resp.Data[1].PostID)
}
