package handler

import (
	"github.com/Faus21/wander-wave-sub000/internal/service"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"github.com/gin-gonic/gin"
)

// 分页是贴在流结果上的包装，核心算法不感知
func sliceFlowPage(items []service.FeedItemVO, page, pageSize int) []service.FeedItemVO {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []service.FeedItemVO{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// 订阅流
func (h *Handler) GetPersonalFlow(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.Service.Flow.PersonalFlow(c.Request.Context(), uid)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	page, pageSize := parsePage(c)
	e.SuccessResponse(c, sliceFlowPage(items, page, pageSize))
}

// 推荐流
func (h *Handler) GetRecommendationFlow(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.Service.Flow.RecommendationFlow(c.Request.Context(), uid)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	page, pageSize := parsePage(c)
	e.SuccessResponse(c, sliceFlowPage(items, page, pageSize))
}

// 可能认识的人
func (h *Handler) GetRecommendedUsers(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	users, err := h.Service.Recommend.RecommendUsers(c.Request.Context(), uid)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, users)
}
