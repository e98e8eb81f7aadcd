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

// 贷款管道允许的状态流转
var allowedStatusTransitions = map[models.LoanFileStatus][]models.LoanFileStatus{
	models.LoanFileStatusDRAFT:        {models.LoanFileStatusIN_PROGRESS, models.LoanFileStatusCANCELLED},
	models.LoanFileStatusIN_PROGRESS:  {models.LoanFileStatusUNDER_REVIEW, models.LoanFileStatusDECLINED, models.LoanFileStatusCANCELLED},
	models.LoanFileStatusUNDER_REVIEW: {models.LoanFileStatusAPPROVED, models.LoanFileStatusDECLINED, models.LoanFileStatusCANCELLED},
	models.LoanFileStatusAPPROVED:     {models.LoanFileStatusFUNDED, models.LoanFileStatusDECLINED, models.LoanFileStatusCANCELLED},
}

// isAllowedTransition 判断状态流转是否合法
func isAllowedTransition(from, to models.LoanFileStatus) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GetLoanFileList 获取贷款文件列表
func GetLoanFileList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	status := c.Query("status")
	priority := c.Query("priority")
	clientID := c.Query("clientId")
	page, limit := utils.ParsePagination(c)

	filter := bson.M{"workspaceId": user.WorkspaceID}
	if status != "" {
		filter["status"] = status
	}
	if priority != "" {
		filter["priority"] = priority
	}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.LoanFilesCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.M{"updatedAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	files := []models.LoanFile{}
	if err := cursor.All(ctx, &files); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, files, total, page, limit)
}

// CreateLoanFile 创建贷款文件，初始状态为草稿
func CreateLoanFile(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.LoanFileCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Priority == "" {
		req.Priority = models.LoanFilePriorityMEDIUM
	}

	now := time.Now()
	file := models.LoanFile{
		WorkspaceID: user.WorkspaceID,
		ClientID:    req.ClientID,
		LoanType:    req.LoanType,
		Status:      models.LoanFileStatusDRAFT,
		Priority:    req.Priority,
		Amount:      req.Amount,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := repository.Collection(repository.LoanFilesCollection).InsertOne(repository.GetContext(), file)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	file.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, file, "创建贷款文件成功", http.StatusCreated)
}

// UpdateLoanFileStatus 更新贷款文件状态（管道流转）
func UpdateLoanFileStatus(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的贷款文件ID", http.StatusBadRequest)
		return
	}

	var req models.LoanFileStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.LoanFilesCollection)

	var file models.LoanFile
	if err := collection.FindOne(ctx, bson.M{"_id": objID, "workspaceId": user.WorkspaceID}).Decode(&file); err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("贷款文件"))
		return
	}

	if !isAllowedTransition(file.Status, req.Status) {
		utils.ErrorResponse(c, "不允许的状态流转: "+string(file.Status)+" -> "+string(req.Status), http.StatusBadRequest)
		return
	}

	update := bson.M{"status": req.Status, "updatedAt": time.Now()}
	if req.Progress != nil {
		progress := *req.Progress
		if progress < 0 || progress > 100 {
			utils.ErrorResponse(c, "进度必须在0-100之间", http.StatusBadRequest)
			return
		}
		update["progress"] = progress
	}
	// 放款视为管道完成
	if req.Status == models.LoanFileStatusFUNDED {
		update["progress"] = 100
	}

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().
		Str("loanFileId", objID.Hex()).
		Str("from", string(file.Status)).
		Str("to", string(req.Status)).
		Msg("贷款文件状态流转")

	utils.SuccessResponse(c, nil, "更新状态成功")
}

// DeleteLoanFile 删除贷款文件
func DeleteLoanFile(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的贷款文件ID", http.StatusBadRequest)
		return
	}

	result, err := repository.Collection(repository.LoanFilesCollection).DeleteOne(
		repository.GetContext(),
		bson.M{"_id": objID, "workspaceId": user.WorkspaceID},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("贷款文件"))
		return
	}

	utils.SuccessResponse(c, nil, "删除贷款文件成功")
}
