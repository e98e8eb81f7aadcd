package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParsePagination(t *testing.T) {
	c, _ := newTestContext("/api/clients?page=3&limit=5")
	page, limit := ParsePagination(c)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, int64(5), limit)

	// 缺省值
	c, _ = newTestContext("/api/clients")
	page, limit = ParsePagination(c)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(20), limit)

	// 非法值回退缺省
	c, _ = newTestContext("/api/clients?page=abc&limit=-1")
	page, limit = ParsePagination(c)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(20), limit)
}

func TestPaginatedResponse(t *testing.T) {
	c, w := newTestContext("/api/clients?page=2&limit=10")

	PaginatedResponse(c, []string{"a", "b"}, 25, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	pagination, ok := body["pagination"].(map[string]interface{})
	assert.True(t, ok)
	assert.EqualValues(t, 25, pagination["total"])
	assert.EqualValues(t, 2, pagination["page"])
	assert.EqualValues(t, 10, pagination["limit"])
	// 25条、每页10条 => 3页
	assert.EqualValues(t, 3, pagination["pages"])
}
