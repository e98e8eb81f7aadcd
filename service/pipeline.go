package service

import (
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

// 管道中相邻阶段的估算配对
var stagePairs = []struct {
	Key  string
	From models.LoanFileStatus
	To   models.LoanFileStatus
}{
	{"draft_to_in_progress", models.LoanFileStatusDRAFT, models.LoanFileStatusIN_PROGRESS},
	{"in_progress_to_under_review", models.LoanFileStatusIN_PROGRESS, models.LoanFileStatusUNDER_REVIEW},
	{"under_review_to_approved", models.LoanFileStatusUNDER_REVIEW, models.LoanFileStatusAPPROVED},
	{"approved_to_funded", models.LoanFileStatusAPPROVED, models.LoanFileStatusFUNDED},
}

// CorrelationKeyFunc 阶段配对使用的关联键
type CorrelationKeyFunc func(models.LoanFile) string

// StageDurationEstimator 阶段耗时估算器。
// 系统不持久化状态流转日志，只保留当前状态和创建时间，
// 因此阶段耗时只能通过关联键配对估算；关联策略可替换而不影响聚合逻辑。
type StageDurationEstimator interface {
	// EstimateStageDuration 估算从from阶段到to阶段的平均耗时（毫秒），无可配对样本时返回0
	EstimateStageDuration(from, to []models.LoanFile) float64
}

// correlationEstimator 按关联键配对的估算器实现
type correlationEstimator struct {
	key CorrelationKeyFunc
}

// NewCorrelationEstimator 创建按指定关联键配对的估算器
func NewCorrelationEstimator(key CorrelationKeyFunc) StageDurationEstimator {
	return &correlationEstimator{key: key}
}

// NewClientCorrelationEstimator 创建按clientId关联的默认估算器
func NewClientCorrelationEstimator() StageDurationEstimator {
	return NewCorrelationEstimator(func(f models.LoanFile) string {
		return f.ClientID
	})
}

// EstimateStageDuration 对每个处于to阶段的文件，在from阶段中寻找同关联键、
// 创建时间更早的文件（多个候选取最早创建的），取两者创建时间差，对所有配对取均值。
func (e *correlationEstimator) EstimateStageDuration(from, to []models.LoanFile) float64 {
	// 按关联键索引from阶段文件
	fromByKey := map[string][]models.LoanFile{}
	for _, f := range from {
		k := e.key(f)
		fromByKey[k] = append(fromByKey[k], f)
	}

	deltas := []float64{}
	for _, t := range to {
		var matched *models.LoanFile
		for i, f := range fromByKey[e.key(t)] {
			if !f.CreatedAt.Before(t.CreatedAt) {
				continue
			}
			if matched == nil || f.CreatedAt.Before(matched.CreatedAt) {
				matched = &fromByKey[e.key(t)][i]
			}
		}
		if matched != nil {
			deltas = append(deltas, float64(t.CreatedAt.Sub(matched.CreatedAt).Milliseconds()))
		}
	}

	return safeMean(deltas)
}

// ComputePipelineFunnel 计算贷款管道漏斗报告。
// 转化率为快照比率：处于状态S的文件数 / 已离开草稿状态的文件数，
// 不是队列意义上的漏斗存活率，各状态转化率之和不要求等于100。
func ComputePipelineFunnel(snapshot *repository.WorkspaceSnapshot, now time.Time, estimator StageDurationEstimator) models.PipelineFunnelReport {
	if estimator == nil {
		estimator = NewClientCorrelationEstimator()
	}

	report := models.PipelineFunnelReport{
		WorkspaceID:     snapshot.WorkspaceID,
		TotalFiles:      len(snapshot.LoanFiles),
		ConversionRates: map[string]float64{},
		StageTimes:      map[string]float64{},
		GeneratedAt:     now,
	}

	byStatus := map[models.LoanFileStatus][]models.LoanFile{}
	for _, file := range snapshot.LoanFiles {
		byStatus[file.Status] = append(byStatus[file.Status], file)
	}

	report.DraftCount = len(byStatus[models.LoanFileStatusDRAFT])
	report.InProgress = len(byStatus[models.LoanFileStatusIN_PROGRESS])
	report.UnderReview = len(byStatus[models.LoanFileStatusUNDER_REVIEW])
	report.Approved = len(byStatus[models.LoanFileStatusAPPROVED])
	report.Funded = len(byStatus[models.LoanFileStatusFUNDED])
	report.Declined = len(byStatus[models.LoanFileStatusDECLINED])
	report.Cancelled = len(byStatus[models.LoanFileStatusCANCELLED])

	// 已离开草稿状态的文件数
	report.TotalProcessed = report.TotalFiles - report.DraftCount

	for _, status := range []models.LoanFileStatus{
		models.LoanFileStatusIN_PROGRESS,
		models.LoanFileStatusUNDER_REVIEW,
		models.LoanFileStatusAPPROVED,
		models.LoanFileStatusFUNDED,
		models.LoanFileStatusDECLINED,
		models.LoanFileStatusCANCELLED,
	} {
		report.ConversionRates[string(status)] = safeRate(len(byStatus[status]), report.TotalProcessed)
	}

	for _, pair := range stagePairs {
		report.StageTimes[pair.Key] = estimator.EstimateStageDuration(byStatus[pair.From], byStatus[pair.To])
	}

	return report
}
