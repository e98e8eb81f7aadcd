package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestExpiredInvitationFilter(t *testing.T) {
	filter := ExpiredInvitationFilter(testNow)

	assert.Equal(t, "pending", filter["status"])

	createdAt, ok := filter["createdAt"].(bson.M)
	assert.True(t, ok)
	cutoff, ok := createdAt["$lt"].(time.Time)
	assert.True(t, ok)
	// 截止时间为14天前
	assert.Equal(t, testNow.Add(-14*24*time.Hour), cutoff)
}
