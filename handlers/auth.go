package handlers

import (
	"log"
	"net/http"
	"strings"

	"yourbuyer-api/middleware"
	"yourbuyer-api/models"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func userPayload(user models.User) gin.H {
	return gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"surname": user.Surname,
		"email":   user.Email,
		"phone":   user.Phone,
		"sex":     user.Sex,
	}
}

// issueToken generates a JWT and records its hash so logout can revoke it.
func (h *AuthHandler) issueToken(user models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", err
	}
	record := models.AccessToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(token),
	}
	if err := h.DB.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name                 string `json:"name" binding:"required"`
		Surname              string `json:"surname" binding:"required"`
		Email                string `json:"email" binding:"required,email"`
		Phone                string `json:"phone" binding:"required"`
		Sex                  string `json:"sex" binding:"omitempty,oneof=male female other"`
		Password             string `json:"password" binding:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	errs := map[string][]string{}
	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		errs["email"] = []string{"The email has already been taken."}
	}
	if err := h.DB.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		errs["phone"] = []string{"The phone has already been taken."}
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  errs,
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register: bcrypt failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register user"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Phone:    req.Phone,
		Sex:      req.Sex,
		Password: string(hashedPassword),
	}

	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("register: create user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register user"})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		log.Printf("register: issue token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"data": gin.H{
			"user":  userPayload(user),
			"token": token,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "The given data was invalid.",
			"errors":  utils.ValidationErrorMap(err),
		})
		return
	}

	// A login containing "@" is treated as an email, anything else as a
	// phone number.
	field := "phone"
	if strings.Contains(req.Login, "@") {
		field = "email"
	}

	invalidCredentials := gin.H{
		"success": false,
		"message": "The given data was invalid.",
		"errors":  gin.H{"login": []string{"These credentials do not match our records."}},
	}

	var user models.User
	if err := h.DB.Where(field+" = ?", req.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, invalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		log.Printf("login: issue token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":  userPayload(user),
			"token": token,
		},
	})
}

// Logout deletes the presented token from the access-token store. Other
// sessions of the same user keep their tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated."})
		return
	}

	if err := h.DB.Where("token_hash = ?", utils.HashToken(token)).Delete(&models.AccessToken{}).Error; err != nil {
		log.Printf("logout: revoke token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

func (h *AuthHandler) User(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": userPayload(user)},
	})
}

// ListUsers backs the admin users screen.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("list users failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
		return
	}

	payload := make([]gin.H, 0, len(users))
	for _, u := range users {
		payload = append(payload, userPayload(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"users": payload},
	})
}
