package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

func loanFile(status models.LoanFileStatus, clientID string, createdAt time.Time) models.LoanFile {
	return models.LoanFile{
		Status:    status,
		ClientID:  clientID,
		CreatedAt: createdAt,
	}
}

func TestComputePipelineFunnel_ConversionRates(t *testing.T) {
	base := testNow.Add(-10 * 24 * time.Hour)
	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		LoanFiles: []models.LoanFile{
			loanFile(models.LoanFileStatusDRAFT, "c1", base),
			loanFile(models.LoanFileStatusIN_PROGRESS, "c2", base),
			loanFile(models.LoanFileStatusAPPROVED, "c3", base),
			loanFile(models.LoanFileStatusFUNDED, "c4", base),
		},
	}

	report := ComputePipelineFunnel(snapshot, testNow, nil)

	assert.Equal(t, 4, report.TotalFiles)
	assert.Equal(t, 1, report.DraftCount)
	// 已处理数 = 总数 - 草稿数
	assert.Equal(t, 3, report.TotalProcessed)
	assert.InDelta(t, 33.33, report.ConversionRates["funded"], 0.01)
	assert.InDelta(t, 33.33, report.ConversionRates["approved"], 0.01)
	assert.InDelta(t, 33.33, report.ConversionRates["in_progress"], 0.01)
	assert.Zero(t, report.ConversionRates["declined"])
}

func TestComputePipelineFunnel_AllDraft(t *testing.T) {
	base := testNow.Add(-10 * 24 * time.Hour)
	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		LoanFiles: []models.LoanFile{
			loanFile(models.LoanFileStatusDRAFT, "c1", base),
			loanFile(models.LoanFileStatusDRAFT, "c2", base),
		},
	}

	report := ComputePipelineFunnel(snapshot, testNow, nil)

	// 没有文件离开草稿状态时全部转化率为0，不发生除零
	assert.Equal(t, 0, report.TotalProcessed)
	for status, rate := range report.ConversionRates {
		assert.Zerof(t, rate, "状态%s的转化率应为0", status)
	}
}

func TestComputePipelineFunnel_Empty(t *testing.T) {
	snapshot := &repository.WorkspaceSnapshot{WorkspaceID: "ws1"}

	report := ComputePipelineFunnel(snapshot, testNow, nil)

	assert.Zero(t, report.TotalFiles)
	assert.Zero(t, report.TotalProcessed)
	for _, stageTime := range report.StageTimes {
		assert.Zero(t, stageTime)
	}
}

func TestEstimateStageDuration_PairsByClient(t *testing.T) {
	estimator := NewClientCorrelationEstimator()
	day := 24 * time.Hour
	base := testNow.Add(-30 * day)

	from := []models.LoanFile{
		loanFile(models.LoanFileStatusDRAFT, "c1", base),
	}
	to := []models.LoanFile{
		loanFile(models.LoanFileStatusIN_PROGRESS, "c1", base.Add(5*day)),
	}

	// 同客户、创建更早的文件配对成功，差值5天
	assert.InDelta(t, float64((5 * day).Milliseconds()), estimator.EstimateStageDuration(from, to), 0.001)
}

func TestEstimateStageDuration_NoMatch(t *testing.T) {
	estimator := NewClientCorrelationEstimator()
	day := 24 * time.Hour
	base := testNow.Add(-30 * day)

	// 不同客户不配对
	from := []models.LoanFile{loanFile(models.LoanFileStatusDRAFT, "c1", base)}
	to := []models.LoanFile{loanFile(models.LoanFileStatusIN_PROGRESS, "c2", base.Add(5*day))}
	assert.Zero(t, estimator.EstimateStageDuration(from, to))

	// 同客户但创建时间不更早也不配对
	from = []models.LoanFile{loanFile(models.LoanFileStatusDRAFT, "c1", base.Add(6*day))}
	to = []models.LoanFile{loanFile(models.LoanFileStatusIN_PROGRESS, "c1", base.Add(5*day))}
	assert.Zero(t, estimator.EstimateStageDuration(from, to))
}

func TestEstimateStageDuration_PicksEarliestCandidate(t *testing.T) {
	estimator := NewClientCorrelationEstimator()
	day := 24 * time.Hour
	base := testNow.Add(-30 * day)

	// 同客户有多个更早的候选文件时，取创建最早的那个
	from := []models.LoanFile{
		loanFile(models.LoanFileStatusDRAFT, "c1", base.Add(3*day)),
		loanFile(models.LoanFileStatusDRAFT, "c1", base),
	}
	to := []models.LoanFile{
		loanFile(models.LoanFileStatusIN_PROGRESS, "c1", base.Add(10*day)),
	}

	assert.InDelta(t, float64((10 * day).Milliseconds()), estimator.EstimateStageDuration(from, to), 0.001)
}

func TestEstimateStageDuration_AveragesOverMatches(t *testing.T) {
	estimator := NewClientCorrelationEstimator()
	day := 24 * time.Hour
	base := testNow.Add(-30 * day)

	from := []models.LoanFile{
		loanFile(models.LoanFileStatusDRAFT, "c1", base),
		loanFile(models.LoanFileStatusDRAFT, "c2", base),
	}
	to := []models.LoanFile{
		loanFile(models.LoanFileStatusIN_PROGRESS, "c1", base.Add(2*day)),
		loanFile(models.LoanFileStatusIN_PROGRESS, "c2", base.Add(4*day)),
		loanFile(models.LoanFileStatusIN_PROGRESS, "c3", base.Add(9*day)), // 无法配对，不参与均值
	}

	assert.InDelta(t, float64((3 * day).Milliseconds()), estimator.EstimateStageDuration(from, to), 0.001)
}

func TestComputePipelineFunnel_StageTimes(t *testing.T) {
	day := 24 * time.Hour
	base := testNow.Add(-30 * day)
	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		LoanFiles: []models.LoanFile{
			loanFile(models.LoanFileStatusDRAFT, "c1", base),
			loanFile(models.LoanFileStatusIN_PROGRESS, "c1", base.Add(4*day)),
		},
	}

	report := ComputePipelineFunnel(snapshot, testNow, NewClientCorrelationEstimator())

	assert.InDelta(t, float64((4 * day).Milliseconds()), report.StageTimes["draft_to_in_progress"], 0.001)
	assert.Zero(t, report.StageTimes["approved_to_funded"])
}
