package server

import (
	"net/http"
	"regexp"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/server/middlewares"
	"github.com/featherdev/chirp/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type signupInput struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, utils.InvalidInput("Invalid request body"))
		return
	}

	if !emailRe.MatchString(input.Email) {
		renderError(c, utils.InvalidInput("Invalid email format"))
		return
	}
	if len(input.Password) < minPasswordLength {
		renderError(c, utils.InvalidInput("Password must be at least 6 characters long"))
		return
	}

	ctx := c.Request.Context()
	if existing, err := s.stores.Users.GetByUsername(ctx, input.Username); err != nil {
		renderError(c, err)
		return
	} else if existing != nil {
		renderError(c, utils.InvalidInput("Username is already taken"))
		return
	}
	if existing, err := s.stores.Users.GetByEmail(ctx, input.Email); err != nil {
		renderError(c, err)
		return
	} else if existing != nil {
		renderError(c, utils.InvalidInput("Email is already taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		renderError(c, err)
		return
	}

	user := &model.User{
		Id:         uuid.New().String(),
		Username:   input.Username,
		FullName:   input.FullName,
		Email:      input.Email,
		Password:   string(hashed),
		Followers:  []string{},
		Following:  []string{},
		LikedPosts: []string{},
		CreatedAt:  time.Now(),
	}
	if err := s.stores.Users.Create(ctx, user); err != nil {
		renderError(c, err)
		return
	}

	token, err := middlewares.GenerateToken(user.Id)
	if err != nil {
		renderError(c, err)
		return
	}
	middlewares.SetSessionCookie(c, token)
	c.JSON(http.StatusCreated, user.Scrubbed())
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, utils.InvalidInput("Invalid request body"))
		return
	}

	user, err := s.stores.Users.GetByUsername(c.Request.Context(), input.Username)
	if err != nil {
		renderError(c, err)
		return
	}
	// same message for unknown user and wrong password
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		renderError(c, utils.InvalidInput("Invalid username or password"))
		return
	}

	token, err := middlewares.GenerateToken(user.Id)
	if err != nil {
		renderError(c, err)
		return
	}
	middlewares.SetSessionCookie(c, token)
	c.JSON(http.StatusOK, user.Scrubbed())
}

func (s *Server) logout(c *gin.Context) {
	middlewares.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) me(c *gin.Context) {
	user, err := s.stores.Users.GetByID(c.Request.Context(), middlewares.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	if user == nil {
		renderError(c, utils.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, user.Scrubbed())
}
