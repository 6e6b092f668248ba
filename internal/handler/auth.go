package handler

import (
	"net/http"

	"flowermart-be/internal/user"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if input.Username == "" || input.Password == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, password and email are required"})
		return
	}

	if err := h.users.Register(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	token, u, profile, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"token": token,
		"user": gin.H{
			"user_id":  u.ID,
			"username": u.Username,
			"role":     u.Role,
		},
	}
	if profile != nil {
		resp["customer"] = profile
	}

	c.JSON(http.StatusOK, resp)
}
