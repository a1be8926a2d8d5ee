package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskit-backend/auth"
	"taskit-backend/models"
)

var (
	authSecret string
	tokenTTL   time.Duration
)

// InitAuth hands the controllers the token-signing parameters.
func InitAuth(secret string, ttl time.Duration) {
	authSecret = secret
	tokenTTL = ttl
}

func issueToken(user models.User) (string, error) {
	return auth.GenerateToken(user.ID.Hex(), user.Email, authSecret, tokenTTL)
}

// Signup registers a new account. A taken email is reported as a 200 with
// success=false, which is the storefront's cheap "already exists" path.
func Signup(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
		Mobile   string `json:"mobile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	existing, err := models.FindUserByEmail(input.Email)
	if err != nil {
		log.Println("signup lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while signing up"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "User already exists"})
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Println("hash password failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while signing up"})
		return
	}

	user, err := models.CreateUser(models.User{
		Email:    input.Email,
		Name:     input.Name,
		Mobile:   input.Mobile,
		Password: hashed,
	})
	if err != nil {
		log.Println("create user failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while signing up"})
		return
	}

	token, err := issueToken(user)
	if err != nil {
		log.Println("issue token failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while signing up"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signup successfull",
		"data":    gin.H{"user": user.Scrub(), "token": token},
	})
}

// Login checks the password and returns a fresh session token. Unknown email
// and wrong password share one answer so the two cases are indistinguishable.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	user, err := models.FindUserByEmail(input.Email)
	if err != nil {
		log.Println("login lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "User does not exist"})
		return
	}

	if !auth.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Incorrect username or password entered"})
		return
	}

	token, err := issueToken(*user)
	if err != nil {
		log.Println("issue token failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in succesfully",
		"data":    gin.H{"user": user.Scrub(), "token": token},
	})
}

// GoogleSignin logs a Google-linked account in, creating it on first contact.
// An email already registered through the password flow is a conflict.
func GoogleSignin(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	user, err := models.FindUserByEmail(input.Email)
	if err != nil {
		log.Println("google signin lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	if user != nil {
		if !user.IsGoogle {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "User already exists with this mail"})
			return
		}

		token, err := issueToken(*user)
		if err != nil {
			log.Println("issue token failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Logged in successfully",
			"data":    gin.H{"user": user.Scrub(), "token": token},
		})
		return
	}

	created, err := models.CreateUser(models.User{
		Email:    input.Email,
		Name:     input.Name,
		IsGoogle: true,
	})
	if err != nil {
		log.Println("create google user failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	token, err := issueToken(created)
	if err != nil {
		log.Println("issue token failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signup successfull",
		"data":    gin.H{"user": created.Scrub(), "token": token},
	})
}
