package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"
)

// GetClientList 获取客户列表
func GetClientList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	keyword := c.Query("keyword")
	status := c.Query("status")
	source := c.Query("source")
	page, limit := utils.ParsePagination(c)

	utils.LogInfo(map[string]interface{}{
		"user":    user.Username,
		"keyword": keyword,
		"status":  status,
		"source":  source,
		"page":    page,
		"limit":   limit,
	}, "获取客户列表")

	filter := bson.M{"workspaceId": user.WorkspaceID}

	if keyword != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": keyword, "$options": "i"}},
			{"email": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}
	if status != "" {
		filter["status"] = status
	}
	if source != "" {
		filter["source"] = source
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.ClientsCollection)

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

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, clients, total, page, limit)
}

// CreateClient 创建客户
func CreateClient(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.ClientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 状态默认潜在客户
	if req.Status == "" {
		req.Status = models.ClientStatusPROSPECT
	}

	now := time.Now()
	client := models.Client{
		WorkspaceID:       user.WorkspaceID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Status:            req.Status,
		Source:            req.Source,
		AssignedAdvisorID: user.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	result, err := repository.Collection(repository.ClientsCollection).InsertOne(repository.GetContext(), client)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	client.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, client, "创建客户成功", http.StatusCreated)
}

// GetClientDetail 获取客户详情
func GetClientDetail(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的客户ID"))
		return
	}

	var client models.Client
	err = repository.Collection(repository.ClientsCollection).
		FindOne(repository.GetContext(), bson.M{"_id": objID, "workspaceId": user.WorkspaceID}).
		Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("客户"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, client, "成功")
}

// UpdateClient 更新客户
func UpdateClient(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的客户ID"))
		return
	}

	var req models.ClientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Status != "" {
		update["status"] = req.Status
	}
	if req.Source != "" {
		update["source"] = req.Source
	}

	result, err := repository.Collection(repository.ClientsCollection).UpdateOne(
		repository.GetContext(),
		bson.M{"_id": objID, "workspaceId": user.WorkspaceID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}

	utils.SuccessResponse(c, nil, "更新客户成功")
}

// DeleteClient 删除客户
func DeleteClient(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的客户ID"))
		return
	}

	result, err := repository.Collection(repository.ClientsCollection).DeleteOne(
		repository.GetContext(),
		bson.M{"_id": objID, "workspaceId": user.WorkspaceID},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}

	utils.SuccessResponse(c, nil, "删除客户成功")
}
