package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/service"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"
)

// ExportAnalyticsReport 导出分析报表为Excel工作簿（总览+管道漏斗两个工作表）
func ExportAnalyticsReport(c *gin.Context) {
	snapshot, ok := fetchSnapshotForRequest(c)
	if !ok {
		return
	}

	now := time.Now()
	overview := service.ComputeWorkspaceOverview(snapshot, now)
	funnel := service.ComputePipelineFunnel(snapshot, now, service.NewClientCorrelationEstimator())

	file := excelize.NewFile()
	defer file.Close()

	if err := writeOverviewSheet(file, overview); err != nil {
		utils.HandleError(c, fmt.Errorf("生成总览工作表失败: %w", err))
		return
	}
	if err := writeFunnelSheet(file, funnel); err != nil {
		utils.HandleError(c, fmt.Errorf("生成漏斗工作表失败: %w", err))
		return
	}

	// 删除默认工作表
	_ = file.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("analytics_%s.xlsx", now.Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := file.Write(c.Writer); err != nil {
		utils.Logger.Error().Err(err).Msg("写入Excel响应失败")
		return
	}
	c.Status(http.StatusOK)
}

// writeOverviewSheet 写入总览工作表
func writeOverviewSheet(file *excelize.File, overview models.WorkspaceOverviewReport) error {
	const sheet = "Overview"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"指标", "数值"},
		{"客户总数", overview.ClientStats.Total},
		{"活跃客户", overview.ClientStats.Active},
		{"潜在客户", overview.ClientStats.Prospects},
		{"非活跃客户", overview.ClientStats.Inactive},
		{"近30天新增客户", overview.ClientStats.NewLast30Days},
		{"贷款文件总数", overview.LoanFiles.Total},
		{"贷款总金额", overview.LoanFiles.TotalAmount},
		{"平均贷款金额", overview.LoanFiles.AverageAmount},
		{"平均进度", overview.LoanFiles.AverageProgress},
		{"任务总数", overview.Tasks.Total},
		{"已完成任务", overview.Tasks.Completed},
		{"逾期任务", overview.Tasks.Overdue},
		{"任务完成率", overview.Tasks.CompletionRate},
		{"文档总数", overview.Documents.Total},
		{"文档总大小", overview.Documents.TotalSize},
		{"用户总数", overview.Users.Total},
		{"邀请总数", overview.Invitations.Total},
		{"邀请接受率", overview.Invitations.AcceptanceRate},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

// writeFunnelSheet 写入管道漏斗工作表
func writeFunnelSheet(file *excelize.File, funnel models.PipelineFunnelReport) error {
	const sheet = "Pipeline"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"指标", "数值"},
		{"文件总数", funnel.TotalFiles},
		{"草稿", funnel.DraftCount},
		{"进行中", funnel.InProgress},
		{"审核中", funnel.UnderReview},
		{"已批准", funnel.Approved},
		{"已放款", funnel.Funded},
		{"已拒绝", funnel.Declined},
		{"已取消", funnel.Cancelled},
		{"已处理文件数", funnel.TotalProcessed},
	}

	// map遍历顺序不稳定，导出前先排序
	rateKeys := make([]string, 0, len(funnel.ConversionRates))
	for key := range funnel.ConversionRates {
		rateKeys = append(rateKeys, key)
	}
	sort.Strings(rateKeys)
	for _, key := range rateKeys {
		rows = append(rows, []interface{}{"转化率:" + key, funnel.ConversionRates[key]})
	}

	stageKeys := make([]string, 0, len(funnel.StageTimes))
	for key := range funnel.StageTimes {
		stageKeys = append(stageKeys, key)
	}
	sort.Strings(stageKeys)
	for _, key := range stageKeys {
		rows = append(rows, []interface{}{"平均耗时(ms):" + key, funnel.StageTimes[key]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}
