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

// GetDocumentList 获取文档列表
func GetDocumentList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	category := c.Query("category")
	clientID := c.Query("clientId")
	page, limit := utils.ParsePagination(c)

	filter := bson.M{"workspaceId": user.WorkspaceID}
	if category != "" {
		filter["category"] = category
	}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.DocumentsCollection)

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

	documents := []models.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, documents, total, page, limit)
}

// CreateDocument 登记文档元数据。
// 文件内容由外部存储服务管理，这里只维护元数据记录。
func CreateDocument(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.DocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	document := models.Document{
		WorkspaceID: user.WorkspaceID,
		Name:        req.Name,
		Category:    req.Category,
		FileType:    req.FileType,
		Size:        req.Size,
		ClientID:    req.ClientID,
		UploadedBy:  user.ID,
		CreatedAt:   time.Now(),
	}

	result, err := repository.Collection(repository.DocumentsCollection).InsertOne(repository.GetContext(), document)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	document.ID = result.InsertedID.(primitive.ObjectID)

	utils.SuccessResponse(c, document, "登记文档成功", http.StatusCreated)
}

// DeleteDocument 删除文档元数据
func DeleteDocument(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的文档ID", http.StatusBadRequest)
		return
	}

	result, err := repository.Collection(repository.DocumentsCollection).DeleteOne(
		repository.GetContext(),
		bson.M{"_id": objID, "workspaceId": user.WorkspaceID},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("文档"))
		return
	}

	utils.SuccessResponse(c, nil, "删除文档成功")
}
