package service

import (
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// 待接受邀请的有效天数
const invitationTTLDays = 14

// ScheduleDailyTaskAt 每天指定时间执行任务
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			duration := next.Sub(now)
			time.Sleep(duration)
			task()
		}
	}()
}

// ExpiredInvitationFilter 构造超期待接受邀请的查询条件
func ExpiredInvitationFilter(now time.Time) bson.M {
	cutoff := now.Add(-invitationTTLDays * 24 * time.Hour)
	return bson.M{
		"status":    "pending",
		"createdAt": bson.M{"$lt": cutoff},
	}
}

// ExpirePendingInvitations 每日任务：将超期的待接受邀请标记为已过期
func ExpirePendingInvitations() {
	now := time.Now()
	utils.Logger.Info().Time("now", now).Msg("开始执行每日邀请过期检查任务")

	ctx := repository.GetContext()
	collection := repository.Collection(repository.InvitationsCollection)

	result, err := collection.UpdateMany(ctx,
		ExpiredInvitationFilter(now),
		bson.M{"$set": bson.M{"status": "expired"}},
	)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("邀请过期检查任务执行失败")
		return
	}

	utils.Logger.Info().
		Int64("matched", result.MatchedCount).
		Int64("modified", result.ModifiedCount).
		Msg("邀请过期检查任务执行完成")
}
