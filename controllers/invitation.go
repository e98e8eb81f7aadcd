package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"
)

// GetInvitationList 获取邀请列表
func GetInvitationList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	status := c.Query("status")
	page, limit := utils.ParsePagination(c)

	filter := bson.M{"workspaceId": user.WorkspaceID}
	if status != "" {
		filter["status"] = status
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.InvitationsCollection)

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

	invitations := []models.Invitation{}
	if err := cursor.All(ctx, &invitations); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, invitations, total, page, limit)
}

// CreateInvitation 创建邀请
func CreateInvitation(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	// 只有员工角色可以发出邀请
	if !utils.IsStaffRole(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "无权发出邀请"})
		return
	}

	var req models.InvitationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	invitation := models.Invitation{
		WorkspaceID:    user.WorkspaceID,
		Email:          req.Email,
		InvitationType: req.InvitationType,
		Status:         models.InvitationStatusPENDING,
		Token:          uuid.New().String(),
		InvitedBy:      user.ID,
		CreatedAt:      time.Now(),
	}

	result, err := repository.Collection(repository.InvitationsCollection).InsertOne(repository.GetContext(), invitation)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	invitation.ID = result.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().
		Str("email", req.Email).
		Str("invitationType", req.InvitationType).
		Msg("创建邀请")

	utils.SuccessResponse(c, invitation, "创建邀请成功", http.StatusCreated)
}

// AcceptInvitation 接受邀请（通过token，不要求登录）
func AcceptInvitation(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.ErrorResponse(c, "缺少邀请token", http.StatusBadRequest)
		return
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.InvitationsCollection)

	var invitation models.Invitation
	err := collection.FindOne(ctx, bson.M{"token": token}).Decode(&invitation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("邀请"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if invitation.Status != models.InvitationStatusPENDING {
		utils.ErrorResponse(c, "邀请已被接受或已过期", http.StatusConflict)
		return
	}

	now := time.Now()
	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": invitation.ID, "status": models.InvitationStatusPENDING},
		bson.M{"$set": bson.M{"status": models.InvitationStatusACCEPTED, "acceptedAt": now}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"workspaceId": invitation.WorkspaceID}, "接受邀请成功")
}
