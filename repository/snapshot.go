package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// WorkspaceSnapshot 单个工作区在某一时刻的完整记录集快照。
// 分析报表只读取快照，不回写数据库。
type WorkspaceSnapshot struct {
	WorkspaceID string
	Clients     []models.Client
	LoanFiles   []models.LoanFile
	Tasks       []models.Task
	Documents   []models.Document
	Users       []models.User
	Invitations []models.Invitation
	FetchedAt   time.Time
}

// FetchWorkspaceSnapshot 并行拉取工作区全部实体记录。
// 六类实体之间没有顺序依赖；任意一类拉取失败则整体失败，不返回部分快照。
// 未知的workspaceId会得到全空的快照而不是错误。
func FetchWorkspaceSnapshot(parent context.Context, workspaceID string) (*WorkspaceSnapshot, error) {
	fetchCtx, cancel := context.WithTimeout(parent, 15*time.Second)
	defer cancel()

	snapshot := &WorkspaceSnapshot{
		WorkspaceID: workspaceID,
		FetchedAt:   time.Now(),
	}
	filter := bson.M{"workspaceId": workspaceID}

	g, gCtx := errgroup.WithContext(fetchCtx)

	g.Go(func() error {
		return fetchAll(gCtx, ClientsCollection, filter, &snapshot.Clients)
	})
	g.Go(func() error {
		return fetchAll(gCtx, LoanFilesCollection, filter, &snapshot.LoanFiles)
	})
	g.Go(func() error {
		return fetchAll(gCtx, TasksCollection, filter, &snapshot.Tasks)
	})
	g.Go(func() error {
		return fetchAll(gCtx, DocumentsCollection, filter, &snapshot.Documents)
	})
	g.Go(func() error {
		return fetchAll(gCtx, UsersCollection, filter, &snapshot.Users)
	})
	g.Go(func() error {
		return fetchAll(gCtx, InvitationsCollection, filter, &snapshot.Invitations)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("拉取工作区快照失败: %w", err)
	}

	utils.Logger.Debug().
		Str("workspaceId", workspaceID).
		Int("clients", len(snapshot.Clients)).
		Int("loanFiles", len(snapshot.LoanFiles)).
		Int("tasks", len(snapshot.Tasks)).
		Int("documents", len(snapshot.Documents)).
		Int("users", len(snapshot.Users)).
		Int("invitations", len(snapshot.Invitations)).
		Msg("工作区快照拉取完成")

	return snapshot, nil
}

// fetchAll 拉取集合中符合过滤条件的全部记录，瞬时错误走统一重试
func fetchAll[T any](ctx context.Context, collName string, filter bson.M, out *[]T) error {
	result, err := ExecuteDbOperation(func() (interface{}, error) {
		cursor, err := Collection(collName).Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		records := []T{}
		if err := cursor.All(ctx, &records); err != nil {
			return nil, err
		}
		return records, nil
	}, 3)
	if err != nil {
		return fmt.Errorf("查询%s失败: %w", collName, err)
	}

	*out = result.([]T)
	utils.LogDbOperation("find", collName, filter, fmt.Sprintf("%d条记录", len(*out)))
	return nil
}
