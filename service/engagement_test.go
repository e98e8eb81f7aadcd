package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
)

func engagementClient(name string, status models.ClientStatus, updatedAt time.Time) models.Client {
	return models.Client{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Status:    status,
		UpdatedAt: updatedAt,
	}
}

func TestScoreClient_ActiveWithRecentActivity(t *testing.T) {
	client := engagementClient("客户A", models.ClientStatusACTIVE, testNow)

	item := scoreClient(client, nil, nil, testNow)

	// 活跃30 + 7天内活动15 = 45
	assert.InDelta(t, 45.0, item.EngagementScore, 0.001)
	assert.Zero(t, item.LoanFileCount)
	assert.Zero(t, item.TotalTasks)
}

func TestScoreClient_CompositeScore(t *testing.T) {
	day := 24 * time.Hour
	client := engagementClient("客户B", models.ClientStatusACTIVE, testNow.Add(-60*day))
	clientID := client.ID.Hex()

	files := []models.LoanFile{
		{ClientID: clientID, UpdatedAt: testNow.Add(-2 * day)},
		{ClientID: clientID, UpdatedAt: testNow.Add(-40 * day)},
		{ClientID: clientID, UpdatedAt: testNow.Add(-50 * day)},
		{ClientID: clientID, UpdatedAt: testNow.Add(-70 * day)},
	}
	tasks := []models.Task{
		{ClientID: clientID, Status: models.TaskStatusCOMPLETED, UpdatedAt: testNow.Add(-20 * day)},
		{ClientID: clientID, Status: models.TaskStatusPENDING, UpdatedAt: testNow.Add(-20 * day)},
	}

	item := scoreClient(client, files, tasks, testNow)

	// 活跃30 + 文件数量分封顶30 + 近期更新文件1个5 + 任务完成率25*0.5 + 最近活动(2天前)15 = 92.5
	assert.InDelta(t, 92.5, item.EngagementScore, 0.001)
	assert.Equal(t, 4, item.LoanFileCount)
	assert.Equal(t, 2, item.TotalTasks)
	assert.Equal(t, 1, item.CompletedTasks)
	// 最近活动取客户、文件、任务更新时间的最大值
	assert.Equal(t, testNow.Add(-2*day), item.LastActivity)
}

func TestScoreClient_ClampedToMax(t *testing.T) {
	day := 24 * time.Hour
	client := engagementClient("客户C", models.ClientStatusACTIVE, testNow)
	clientID := client.ID.Hex()

	// 大量近期更新的文件使近期更新分超过上限
	files := make([]models.LoanFile, 10)
	for i := range files {
		files[i] = models.LoanFile{ClientID: clientID, UpdatedAt: testNow.Add(-time.Duration(i) * day)}
	}
	tasks := []models.Task{
		{ClientID: clientID, Status: models.TaskStatusCOMPLETED, UpdatedAt: testNow},
	}

	item := scoreClient(client, files, tasks, testNow)

	assert.InDelta(t, 100.0, item.EngagementScore, 0.001)
}

func TestComputeClientEngagement_SortAndBuckets(t *testing.T) {
	day := 24 * time.Hour
	high := engagementClient("高参与", models.ClientStatusACTIVE, testNow)
	highID := high.ID.Hex()
	mid := engagementClient("中参与", models.ClientStatusPROSPECT, testNow.Add(-20*day))
	low := engagementClient("低参与", models.ClientStatusINACTIVE, testNow.Add(-200*day))

	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		Clients:     []models.Client{low, mid, high},
		LoanFiles: []models.LoanFile{
			{ClientID: highID, UpdatedAt: testNow.Add(-1 * day)},
			{ClientID: highID, UpdatedAt: testNow.Add(-2 * day)},
			{ClientID: highID, UpdatedAt: testNow.Add(-3 * day)},
		},
		Tasks: []models.Task{
			{ClientID: highID, Status: models.TaskStatusCOMPLETED, UpdatedAt: testNow},
		},
	}

	report := ComputeClientEngagement(snapshot, testNow)

	assert.Equal(t, 3, report.Total)
	assert.Len(t, report.Clients, 3)
	// 降序排列
	assert.Equal(t, "高参与", report.Clients[0].Name)
	assert.Equal(t, "低参与", report.Clients[2].Name)
	// 高30+文件30+近期15+任务25+活动15 截断到100；中15+10=25；低0
	assert.Equal(t, 1, report.HighEngagement)
	assert.Equal(t, 2, report.LowEngagement)
	assert.InDelta(t, (100.0+25.0+0.0)/3, report.AverageScore, 0.001)
}

func TestComputeClientEngagement_StableOrderOnTie(t *testing.T) {
	a := engagementClient("同分A", models.ClientStatusACTIVE, testNow)
	b := engagementClient("同分B", models.ClientStatusACTIVE, testNow)

	snapshot := &repository.WorkspaceSnapshot{
		WorkspaceID: "ws1",
		Clients:     []models.Client{a, b},
	}

	report := ComputeClientEngagement(snapshot, testNow)

	assert.Equal(t, "同分A", report.Clients[0].Name)
	assert.Equal(t, "同分B", report.Clients[1].Name)
}

func TestComputeClientEngagement_Empty(t *testing.T) {
	snapshot := &repository.WorkspaceSnapshot{WorkspaceID: "ws1"}

	report := ComputeClientEngagement(snapshot, testNow)

	assert.Zero(t, report.Total)
	assert.Zero(t, report.AverageScore)
	assert.NotNil(t, report.Clients)
	assert.Empty(t, report.Clients)
}

func TestScoreClient_ScoreAlwaysInRange(t *testing.T) {
	day := 24 * time.Hour
	statuses := []models.ClientStatus{
		models.ClientStatusACTIVE,
		models.ClientStatusPROSPECT,
		models.ClientStatusINACTIVE,
	}
	taskStatuses := []models.TaskStatus{
		models.TaskStatusPENDING,
		models.TaskStatusIN_PROGRESS,
		models.TaskStatusCOMPLETED,
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		client := engagementClient("随机客户", statuses[rng.Intn(len(statuses))], testNow.Add(-time.Duration(rng.Intn(365))*day))
		clientID := client.ID.Hex()

		files := make([]models.LoanFile, rng.Intn(8))
		for j := range files {
			files[j] = models.LoanFile{ClientID: clientID, UpdatedAt: testNow.Add(-time.Duration(rng.Intn(120)) * day)}
		}
		tasks := make([]models.Task, rng.Intn(6))
		for j := range tasks {
			tasks[j] = models.Task{ClientID: clientID, Status: taskStatuses[rng.Intn(len(taskStatuses))], UpdatedAt: testNow.Add(-time.Duration(rng.Intn(120)) * day)}
		}

		item := scoreClient(client, files, tasks, testNow)
		assert.GreaterOrEqual(t, item.EngagementScore, 0.0)
		assert.LessOrEqual(t, item.EngagementScore, 100.0)
	}
}
