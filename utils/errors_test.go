package utils

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiErrorConstructors(t *testing.T) {
	notFound := CreateNotFoundError("客户")
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
	assert.Equal(t, "客户不存在", notFound.Message)
	assert.Equal(t, "RESOURCE_NOT_FOUND", notFound.ErrorCode)

	unauthorized := CreateUnauthorizedError()
	assert.Equal(t, http.StatusUnauthorized, unauthorized.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", unauthorized.ErrorCode)

	forbidden := CreateForbiddenError()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)
	assert.Equal(t, "FORBIDDEN", forbidden.ErrorCode)

	badRequest := CreateBadRequestError("无效的客户ID")
	assert.Equal(t, http.StatusBadRequest, badRequest.StatusCode)
	assert.Equal(t, "无效的客户ID", badRequest.Error())
}

func TestHandleErrorWithApiError(t *testing.T) {
	c, w := newTestContext("/api/analytics/overview")

	HandleError(c, CreateForbiddenError())

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "权限不足", body["error"])
	assert.Equal(t, "FORBIDDEN", body["code"])
}
