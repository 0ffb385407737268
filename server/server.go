// Package server wires the HTTP JSON API: thin gin handlers over the
// engagement mutator, the feed assembler and the stores. Every error response
// is {"error": message}; unexpected failures render a generic 500 and log the
// underlying cause server-side.
package server

import (
	"net/http"

	"github.com/featherdev/chirp/engagement"
	"github.com/featherdev/chirp/feed"
	"github.com/featherdev/chirp/imagestore"
	"github.com/featherdev/chirp/store"
	"github.com/featherdev/chirp/utils"
	Logger "github.com/featherdev/chirp/utils/log"
	"github.com/gin-gonic/gin"
)

type Server struct {
	stores    store.Stores
	mutator   *engagement.Mutator
	assembler *feed.Assembler
	images    imagestore.ImageStore
}

func NewServer(s store.Stores, images imagestore.ImageStore) *Server {
	return &Server{
		stores:    s,
		mutator:   engagement.NewMutator(s),
		assembler: feed.NewAssembler(s),
		images:    images,
	}
}

// RegisterRoutes mounts the API under /api. session guards everything except
// signup/login/logout.
func (s *Server) RegisterRoutes(router gin.IRouter, session gin.HandlerFunc) {
	auth := router.Group("/api/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)
	auth.POST("/logout", s.logout)
	auth.GET("/me", session, s.me)

	posts := router.Group("/api/posts", session)
	posts.GET("", s.getAllPosts)
	posts.GET("/following", s.getFollowingPosts)
	posts.GET("/liked/:id", s.getLikedPosts)
	posts.GET("/user/:username", s.getUserPosts)
	posts.POST("", s.createPost)
	posts.DELETE("/:id", s.deletePost)
	posts.POST("/:id/comment", s.commentOnPost)
	posts.POST("/:id/like", s.likeUnlikePost)

	users := router.Group("/api/users", session)
	users.GET("/profile/:username", s.getUserProfile)
	users.GET("/followers/:id", s.getFollowers)
	users.GET("/following/:id", s.getFollowing)
	users.GET("/suggested", s.getSuggestedUsers)
	users.POST("/follow/:id", s.followUnfollowUser)
	users.POST("/update", s.updateUser)

	router.GET("/api/notifications", session, s.getNotifications)
}

// renderError maps the domain-error taxonomy to HTTP statuses. Anything that
// is not a domain error is a server fault: log it, hide it.
func renderError(c *gin.Context, err error) {
	switch utils.KindOf(err) {
	case utils.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case utils.KindInvalidInput, utils.KindInvalidOperation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case utils.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		Logger.Log.Error("unexpected error serving ", c.FullPath(), ": ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
