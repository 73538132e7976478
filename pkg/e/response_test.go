package e

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func TestSuccessResponse(t *testing.T) {
	c, w := newTestContext(t)
	SuccessResponse(c, gin.H{"hello": "world"})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, Success, resp.Code)
	assert.Equal(t, "success", resp.Msg)
}

func TestErrorResponseBizError(t *testing.T) {
	c, w := newTestContext(t)
	ErrorResponse(c, ErrUserNotFound)
	// 业务错误用 200 + 业务码
	assert.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorUserNotFound, resp.Code)
	assert.Equal(t, ErrUserNotFound.Msg, resp.Msg)
}

func TestErrorResponseSystemError(t *testing.T) {
	c, w := newTestContext(t)
	ErrorResponse(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorServer, resp.Code)
}
