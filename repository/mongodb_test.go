package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestExecuteDbOperation_RetriesOnRetryableError(t *testing.T) {
	attempts := 0
	result, err := ExecuteDbOperation(func() (interface{}, error) {
		attempts++
		if attempts == 1 {
			// PrimarySteppedDown，可重试
			return nil, mongo.CommandError{Code: 189, Message: "PrimarySteppedDown"}
		}
		return "ok", nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, attempts)
}

func TestExecuteDbOperation_StopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		attempts++
		return nil, errors.New("E11000 duplicate key error")
	}, 3)

	assert.Error(t, err)
	// 不可重试的错误不消耗剩余重试次数
	assert.Equal(t, 1, attempts)
}

func TestExecuteDbOperation_ExhaustsRetries(t *testing.T) {
	attempts := 0
	wantErr := errors.New("connection refused")
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		attempts++
		return nil, wantErr
	}, 2)

	assert.Equal(t, wantErr, err)
	assert.Equal(t, 2, attempts)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(mongo.CommandError{Code: 91}))    // ShutdownInProgress
	assert.True(t, isRetryableError(mongo.CommandError{Code: 10107})) // NotMaster
	assert.False(t, isRetryableError(mongo.CommandError{Code: 11000}))

	assert.True(t, isRetryableError(errors.New("connection refused")))
	assert.True(t, isRetryableError(errors.New("server selection error: context deadline exceeded")))
	assert.False(t, isRetryableError(errors.New("document validation failure")))
}

func TestFindUserByID_InvalidID(t *testing.T) {
	user, err := FindUserByID("不是有效的ObjectID")
	assert.Nil(t, user)
	assert.Error(t, err)
}
