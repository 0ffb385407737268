package server

import (
	"net/http"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/server/middlewares"
	"github.com/featherdev/chirp/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createPostInput struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

func (s *Server) createPost(c *gin.Context) {
	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, utils.InvalidInput("Invalid request body"))
		return
	}

	actorID := middlewares.ActorID(c)
	actor, err := s.stores.Users.GetByID(c.Request.Context(), actorID)
	if err != nil {
		renderError(c, err)
		return
	}
	if actor == nil {
		renderError(c, utils.NotFound("User not found"))
		return
	}

	if input.Text == "" && input.Img == "" {
		renderError(c, utils.InvalidInput("Please provide either text or image"))
		return
	}

	img := ""
	if input.Img != "" {
		// the post is only persisted once the upload completed
		img, err = s.images.Upload(c.Request.Context(), input.Img)
		if err != nil {
			renderError(c, err)
			return
		}
	}

	post := &model.Post{
		Id:        uuid.New().String(),
		UserId:    actorID,
		Text:      input.Text,
		Img:       img,
		Likes:     []string{},
		Comments:  []model.Comment{},
		CreatedAt: time.Now(),
	}
	if err := s.stores.Posts.Create(c.Request.Context(), post); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (s *Server) deletePost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := s.stores.Posts.GetByID(ctx, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	if post == nil {
		renderError(c, utils.NotFound("Post not found"))
		return
	}
	if post.UserId != middlewares.ActorID(c) {
		renderError(c, utils.Unauthorized("You are not authorized to delete this post"))
		return
	}

	if post.Img != "" {
		if err := s.images.Delete(ctx, post.Img); err != nil {
			renderError(c, err)
			return
		}
	}
	if err := s.stores.Posts.Delete(ctx, post.Id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

type commentInput struct {
	Text string `json:"text"`
}

func (s *Server) commentOnPost(c *gin.Context) {
	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, utils.InvalidInput("Invalid request body"))
		return
	}

	post, err := s.mutator.CommentOnPost(c.Request.Context(), middlewares.ActorID(c), c.Param("id"), input.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) likeUnlikePost(c *gin.Context) {
	liked, _, err := s.mutator.LikeUnlike(c.Request.Context(), middlewares.ActorID(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	message := "Post unliked successfully"
	if liked {
		message = "Post liked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (s *Server) getAllPosts(c *gin.Context) {
	views, err := s.assembler.AllPosts(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getFollowingPosts(c *gin.Context) {
	views, err := s.assembler.FollowingFeed(c.Request.Context(), middlewares.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getLikedPosts(c *gin.Context) {
	views, err := s.assembler.LikedPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getUserPosts(c *gin.Context) {
	views, err := s.assembler.UserPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
