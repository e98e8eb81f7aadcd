package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/service"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"
)

// fetchSnapshotForRequest 获取当前用户工作区的记录集快照。
// 四类报表互相独立，每次请求都基于同一时刻的完整快照计算。
func fetchSnapshotForRequest(c *gin.Context) (*repository.WorkspaceSnapshot, bool) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return nil, false
	}

	// 只有员工角色可以查看分析报表
	if !utils.IsStaffRole(user.Role) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return nil, false
	}

	utils.LogInfo(map[string]interface{}{
		"username":    user.Username,
		"workspaceId": user.WorkspaceID,
		"path":        c.Request.URL.Path,
	}, "获取分析报表")

	snapshot, err := repository.FetchWorkspaceSnapshot(c.Request.Context(), user.WorkspaceID)
	if err != nil {
		// 拉取失败时整个报表调用失败，不返回部分结果
		utils.HandleError(c, err)
		return nil, false
	}

	return snapshot, true
}

// GetWorkspaceOverview 获取工作区总览报告
func GetWorkspaceOverview(c *gin.Context) {
	snapshot, ok := fetchSnapshotForRequest(c)
	if !ok {
		return
	}

	report := service.ComputeWorkspaceOverview(snapshot, time.Now())
	utils.SuccessResponse(c, report, "成功")
}

// GetStaffPerformance 获取员工绩效报告
func GetStaffPerformance(c *gin.Context) {
	snapshot, ok := fetchSnapshotForRequest(c)
	if !ok {
		return
	}

	report := service.ComputeStaffPerformance(snapshot, time.Now())
	utils.SuccessResponse(c, report, "成功")
}

// GetPipelineFunnel 获取贷款管道漏斗报告
func GetPipelineFunnel(c *gin.Context) {
	snapshot, ok := fetchSnapshotForRequest(c)
	if !ok {
		return
	}

	report := service.ComputePipelineFunnel(snapshot, time.Now(), service.NewClientCorrelationEstimator())
	utils.SuccessResponse(c, report, "成功")
}

// GetClientEngagement 获取客户参与度报告
func GetClientEngagement(c *gin.Context) {
	snapshot, ok := fetchSnapshotForRequest(c)
	if !ok {
		return
	}

	report := service.ComputeClientEngagement(snapshot, time.Now())
	utils.SuccessResponse(c, report, "成功")
}
