package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/middleware"
	"github.com/postline/api-go/models"
	"github.com/postline/api-go/repositories"
	"github.com/postline/api-go/types"
	"github.com/postline/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

type AuthController struct {
	Users repositories.UserRepository
}

func NewAuthController(users repositories.UserRepository) *AuthController {
	return &AuthController{Users: users}
}

type SignupForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// validateUsernamePattern validates username format and constraints
func validateUsernamePattern(username string) error {
	trimmed := strings.TrimSpace(username)

	if len(trimmed) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(trimmed) > 30 {
		return fmt.Errorf("username must be no more than 30 characters long")
	}

	validPattern, _ := regexp.MatchString(`^[a-zA-Z][a-zA-Z0-9_-]*$`, trimmed)
	if !validPattern {
		return fmt.Errorf("username must start with a letter and contain only letters, numbers, hyphens and underscores")
	}

	reserved := []string{"admin", "root", "api", "auth", "create", "follow", "group", "posts", "profile"}
	for _, word := range reserved {
		if strings.EqualFold(trimmed, word) {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}
	return nil
}

// SignUp registers a user and logs them in, landing on the home page.
func (ac *AuthController) SignUp(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		ac.renderAuthForm(c, map[string]string{
			"username": form.Username,
			"email":    form.Email,
		}, utils.FormErrors(err))
		return
	}

	if err := validateUsernamePattern(form.Username); err != nil {
		ac.renderAuthForm(c, map[string]string{
			"username": form.Username,
			"email":    form.Email,
		}, map[string]string{"username": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	user := models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashedPassword),
	}
	if err := ac.Users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ac.renderAuthForm(c, map[string]string{
				"username": form.Username,
				"email":    form.Email,
			}, map[string]string{"username": "username or email already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := ac.startSession(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// LoginPage renders the blank login form; it is the target of the
// login-required redirect, so the next parameter is echoed back.
func (ac *AuthController) LoginPage(c *gin.Context) {
	form := blankForm("username", "password")
	form.Values["next"] = c.Query("next")
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: form})
}

// Login checks the credentials and redirects to the page the user was
// originally after, or home.
func (ac *AuthController) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		ac.renderAuthForm(c, map[string]string{"username": form.Username}, utils.FormErrors(err))
		return
	}

	user, err := ac.Users.GetByUsername(form.Username)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password))
	}
	if err != nil {
		// Same answer for unknown user and bad password.
		ac.renderAuthForm(c, map[string]string{"username": form.Username},
			map[string]string{"form": "invalid username or password"})
		return
	}

	if err := ac.startSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}
	c.Redirect(http.StatusFound, safeNext(c.PostForm("next")))
}

// Logout clears the session cookie and lands on the home page.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) startSession(c *gin.Context, user *models.User) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return err
	}
	c.SetCookie(middleware.SessionCookie, signed, int(sessionTTL.Seconds()), "/", "", false, true)
	return nil
}

func (ac *AuthController) renderAuthForm(c *gin.Context, values, fieldErrs map[string]string) {
	c.JSON(http.StatusOK, StandardResponse{
		Success: false,
		Data:    types.FormView{Values: values, Errors: fieldErrs},
	})
}

// safeNext keeps the post-login redirect on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	if _, err := url.Parse(next); err != nil {
		return "/"
	}
	return next
}
