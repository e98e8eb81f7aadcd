package controllers

import (
	"net/http"
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Login 用户登录
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().
		Str("email", req.Email).
		Msg("登录尝试")

	usersCollection := repository.Collection(repository.UsersCollection)
	var user models.User
	err := usersCollection.FindOne(repository.GetContext(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 账号不存在")
			utils.ErrorResponse(c, "账号不存在，请检查邮箱或注册新账号", http.StatusUnauthorized)
			return
		}
		utils.Logger.Error().Err(err).Msg("查询用户出错")
		utils.ErrorResponse(c, "登录失败: 数据库错误", http.StatusInternalServerError)
		return
	}

	// 检查账户状态
	if user.Status == models.UserStatusPENDING {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 账户待审核")
		utils.ErrorResponse(c, "账户正在审核中，请等待审核通过", http.StatusForbidden)
		return
	}
	if user.Status == models.UserStatusREJECTED {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 账户已被拒绝")
		utils.ErrorResponse(c, "账户审核未通过", http.StatusForbidden)
		return
	}

	// 验证密码
	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 密码错误")
		utils.ErrorResponse(c, "密码错误", http.StatusUnauthorized)
		return
	}

	// 更新最近活跃时间
	now := time.Now()
	_, err = usersCollection.UpdateOne(repository.GetContext(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"lastActiveAt": now, "updatedAt": now}},
	)
	if err != nil {
		utils.Logger.Warn().Err(err).Msg("更新最近活跃时间失败")
	}

	// 生成token
	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: user}, "登录成功")
}

// Register 用户注册
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	ctx := repository.GetContext()

	// 检查邮箱是否已注册
	count, err := usersCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "该邮箱已注册", http.StatusConflict)
		return
	}

	now := time.Now()
	workspaceID := req.WorkspaceID

	// 未指定工作区时为注册者创建新工作区
	if workspaceID == "" {
		workspace := models.Workspace{
			Name:      req.Name + "'s Workspace",
			Plan:      "starter",
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		}
		result, err := repository.Collection(repository.WorkspacesCollection).InsertOne(ctx, workspace)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		workspaceID = result.InsertedID.(primitive.ObjectID).Hex()
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    utils.HashPassword(req.Password),
		Role:        req.Role,
		Status:      models.UserStatusAPPROVED,
		WorkspaceID: workspaceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	insertResult, err := usersCollection.InsertOne(ctx, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	user.ID = insertResult.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().
		Str("email", user.Email).
		Str("workspaceId", workspaceID).
		Msg("注册成功")

	utils.SuccessResponse(c, user, "注册成功", http.StatusCreated)
}

// GetCurrentUser 获取当前登录用户的最新资料。
// token负载可能落后于数据库（如角色或状态被调整），这里总是回读数据库。
func GetCurrentUser(c *gin.Context) {
	loginUser, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	user, err := repository.FindUserByID(loginUser.ID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	user.Password = ""
	utils.SuccessResponse(c, user, "成功")
}
