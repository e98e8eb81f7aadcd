package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"
)

// GetTaskList 获取任务列表
func GetTaskList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	status := c.Query("status")
	assignedTo := c.Query("assignedTo")
	clientID := c.Query("clientId")
	page, limit := utils.ParsePagination(c)

	filter := bson.M{"workspaceId": user.WorkspaceID}
	if status != "" {
		filter["status"] = status
	}
	if assignedTo != "" {
		filter["assignedTo"] = assignedTo
	}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.TasksCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, tasks, total, page, limit)
}

// CreateTask 创建任务
func CreateTask(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Urgency == "" {
		req.Urgency = models.TaskUrgencyMEDIUM
	}

	now := time.Now()
	task := models.Task{
		WorkspaceID:  user.WorkspaceID,
		Title:        req.Title,
		ClientID:     req.ClientID,
		LoanFileID:   req.LoanFileID,
		Status:       models.TaskStatusPENDING,
		Urgency:      req.Urgency,
		DueDate:      req.DueDate,
		AssignedTo:   req.AssignedTo,
		IsClientTask: req.IsClientTask,
		IsStaffTask:  req.IsStaffTask,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := repository.Collection(repository.TasksCollection).InsertOne(repository.GetContext(), task)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, task, "创建任务成功", http.StatusCreated)
}

// CompleteTask 完成任务
func CompleteTask(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的任务ID", http.StatusBadRequest)
		return
	}

	now := time.Now()
	result, err := repository.Collection(repository.TasksCollection).UpdateOne(
		repository.GetContext(),
		bson.M{
			"_id":         objID,
			"workspaceId": user.WorkspaceID,
			"status":      bson.M{"$ne": models.TaskStatusCOMPLETED},
		},
		bson.M{"$set": bson.M{
			"status":      models.TaskStatusCOMPLETED,
			"completedAt": now,
			"updatedAt":   now,
		}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("待完成任务"))
		return
	}

	utils.SuccessResponse(c, nil, "任务已完成")
}

// UpdateTaskStatus 更新任务状态
func UpdateTaskStatus(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的任务ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status models.TaskStatus `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	update := bson.M{"status": req.Status, "updatedAt": now}
	if req.Status == models.TaskStatusCOMPLETED {
		update["completedAt"] = now
	}

	result, err := repository.Collection(repository.TasksCollection).UpdateOne(
		repository.GetContext(),
		bson.M{"_id": objID, "workspaceId": user.WorkspaceID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("任务"))
		return
	}

	utils.SuccessResponse(c, nil, "更新任务状态成功")
}

// DeleteTask 删除任务
func DeleteTask(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的任务ID", http.StatusBadRequest)
		return
	}

	result, err := repository.Collection(repository.TasksCollection).DeleteOne(
		repository.GetContext(),
		bson.M{"_id": objID, "workspaceId": user.WorkspaceID},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("任务"))
		return
	}

	utils.SuccessResponse(c, nil, "删除任务成功")
}
