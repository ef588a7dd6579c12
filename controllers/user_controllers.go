package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/services"
	"github.com/cafesys/cafe-backend/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{users: services.NewUserService(db)}
}

// Register creates a new customer account.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.users.Register(req.Login, req.Password, req.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("new user registered: %s", user.Login)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"login": user.Login,
		"role":  user.Type,
	})
}

// Login authenticates and returns a session token.
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id, err := uc.users.Authenticate(req.Login, req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	token, err := utils.GenerateToken(id.Login, string(id.Role))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  string(id.Role),
	})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	user, err := uc.users.GetUser(id, id.Login)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", user)
}

// UpdateProfile edits password, phone, or favorite items. A manager may name
// another user with ?login=.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	login := c.Query("login")
	if login == "" {
		login = id.Login
	}

	var req struct {
		Password *string `json:"password"`
		Phone    *string `json:"phone"`
		FavItems *string `json:"fav_items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Password != nil {
		if err := uc.users.SetPassword(id, login, *req.Password); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Phone != nil {
		if err := uc.users.SetPhone(id, login, *req.Phone); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.FavItems != nil {
		if err := uc.users.SetFavItems(id, login, *req.FavItems); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{"login": login})
}

// SetRole changes a user's role. Manager only.
func (uc *UserController) SetRole(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown role %q", req.Role))
		return
	}

	login := c.Param("login")
	if err := uc.users.SetRole(id, login, role); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("role of %s set to %s by %s", login, role, id.Login)
	utils.RespondJSON(c, http.StatusOK, "Role updated", gin.H{
		"login": login,
		"role":  string(role),
	})
}

// ListUsers returns all users. Manager only.
func (uc *UserController) ListUsers(c *gin.Context) {
	id, ok := actingIdentity(c)
	if !ok {
		return
	}

	users, err := uc.users.ListUsers(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}
