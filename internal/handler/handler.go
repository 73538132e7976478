package handler

import (
	"strconv"

	"github.com/Faus21/wander-wave-sub000/internal/service"
	"github.com/Faus21/wander-wave-sub000/pkg/e"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{Service: svc}
}

type RegisterReq struct {
	Nickname string `json:"nickname" binding:"required,max=32"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}
type LoginReq struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}
type UpdateProfileReq struct {
	Avatar string `json:"avatar" binding:"omitempty"`
	Bio    string `json:"bio" binding:"omitempty,max=500"`
}

// 获取id并验证函数，减少重复代码
func getUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		e.ErrorResponse(c, e.ErrUnAuthorized)
		return 0, false
	}
	uid, ok := userID.(uint)
	if !ok {
		e.ErrorResponse(c, e.ErrServer)
		return 0, false
	}
	return uid, true
}
func parseIDParam(c *gin.Context, paramKey string) (uint, error) {
	paramID := c.Param(paramKey)
	id, err := strconv.ParseUint(paramID, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
func parsePage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return page, pageSize
}

// 注册与登陆
func (h *Handler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.User.Register(c.Request.Context(), req.Nickname, req.Password, req.Email); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}
func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	resp, err := h.Service.User.Login(c.Request.Context(), req.Nickname, req.Password)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, resp)
}

// 更新个人信息
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.User.UpdateProfile(c.Request.Context(), uid, req.Avatar, req.Bio); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

// 获取公开资料
func (h *Handler) GetUserProfile(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	profile, err := h.Service.User.GetUserProfile(c.Request.Context(), id)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, profile)
}

// 处理游记相关
type CreatePostReq struct {
	Title    string   `json:"title" binding:"required,max=255"`
	Pros     []string `json:"pros"`
	Cons     []string `json:"cons"`
	Hashtags []string `json:"hashtags" binding:"omitempty,max=10"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Post.CreatePost(c.Request.Context(), uid, req.Title, req.Pros, req.Cons, req.Hashtags); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) GetPostDetail(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	post, err := h.Service.Post.GetPostDetail(c.Request.Context(), id)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Post.DeletePost(c.Request.Context(), id, uid); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

// 获取指定用户主页
func (h *Handler) GetUserPosts(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	page, pageSize := parsePage(c)
	posts, err := h.Service.Post.GetUserPosts(c.Request.Context(), id, page, pageSize)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, posts)
}

// 热门排行榜
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	posts, err := h.Service.Post.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, posts)
}

// 点赞收藏
func (h *Handler) ToggleLike(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Interaction.ToggleLike(c.Request.Context(), uid, id); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) ToggleSave(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Interaction.ToggleSave(c.Request.Context(), uid, id); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) GetLikedPosts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	posts, err := h.Service.Interaction.GetLikedPosts(c.Request.Context(), uid, limit)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, posts)
}

func (h *Handler) GetSavedPosts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	posts, err := h.Service.Interaction.GetSavedPosts(c.Request.Context(), uid, limit)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, posts)
}

// 订阅关系
func (h *Handler) Subscribe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Subscription.Subscribe(c.Request.Context(), uid, id); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Subscription.Unsubscribe(c.Request.Context(), uid, id); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) GetSubscriptions(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePage(c)
	users, err := h.Service.Subscription.GetSubscriptions(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, users)
}

func (h *Handler) GetSubscribers(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePage(c)
	users, err := h.Service.Subscription.GetSubscribers(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, users)
}

// 通知中心
func (h *Handler) GetNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePage(c)
	notifications, err := h.Service.Notification.GetNotifications(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, notifications)
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	count, err := h.Service.Notification.GetUnreadCount(c.Request.Context(), uid)
	if err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, gin.H{"unread": count})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.Notification.MarkNotificationRead(c.Request.Context(), id, uid); err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.Service.Notification.MarkAllNotificationsRead(c.Request.Context(), uid); err != nil {
		e.ErrorResponse(c, e.ErrServer)
		return
	}
	e.SuccessResponse(c, nil)
}

// administer
func (h *Handler) BanUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.User.BanUser(c.Request.Context(), id); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) UnbanUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Service.User.UnbanUser(c.Request.Context(), id); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}
