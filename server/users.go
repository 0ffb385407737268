package server

import (
	"net/http"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/server/middlewares"
	"github.com/featherdev/chirp/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) getUserProfile(c *gin.Context) {
	user, err := s.stores.Users.GetByUsername(c.Request.Context(), c.Param("username"))
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

func (s *Server) followUnfollowUser(c *gin.Context) {
	followed, err := s.mutator.FollowUnfollow(c.Request.Context(), middlewares.ActorID(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	message := "User unfollowed successfully"
	if followed {
		message = "User followed successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (s *Server) getFollowers(c *gin.Context) {
	s.listConnections(c, func(u *model.User) []string { return u.Followers })
}

func (s *Server) getFollowing(c *gin.Context) {
	s.listConnections(c, func(u *model.User) []string { return u.Following })
}

// listConnections expands one of the user's id sets into scrubbed profiles.
func (s *Server) listConnections(c *gin.Context, pick func(u *model.User) []string) {
	ctx := c.Request.Context()
	user, err := s.stores.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	if user == nil {
		renderError(c, utils.NotFound("User not found"))
		return
	}

	connections, err := s.stores.Users.GetMany(ctx, pick(user))
	if err != nil {
		renderError(c, err)
		return
	}
	out := []model.User{}
	for _, u := range connections {
		out = append(out, u.Scrubbed())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSuggestedUsers(c *gin.Context) {
	users, err := s.assembler.SuggestedUsers(c.Request.Context(), middlewares.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateUserInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

// updateUser edits profile fields in place. Password change requires both the
// current and the new password; image changes destroy the previously hosted
// image before uploading the replacement.
func (s *Server) updateUser(c *gin.Context) {
	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		renderError(c, utils.InvalidInput("Invalid request body"))
		return
	}

	ctx := c.Request.Context()
	user, err := s.stores.Users.GetByID(ctx, middlewares.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	if user == nil {
		renderError(c, utils.NotFound("User not found"))
		return
	}

	if (input.NewPassword == "") != (input.CurrentPassword == "") {
		renderError(c, utils.InvalidInput("Please provide both current and new password"))
		return
	}
	if input.CurrentPassword != "" && input.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
			renderError(c, utils.InvalidInput("Invalid current password"))
			return
		}
		if len(input.NewPassword) < minPasswordLength {
			renderError(c, utils.InvalidInput("Password must be at least 6 characters long"))
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			renderError(c, err)
			return
		}
		user.Password = string(hashed)
	}

	// destroying the old hosted image gates the swap; a failed delete aborts
	// the update
	if input.ProfileImg != "" {
		if user.ProfileImg != "" {
			if err := s.images.Delete(ctx, user.ProfileImg); err != nil {
				renderError(c, err)
				return
			}
		}
		url, err := s.images.Upload(ctx, input.ProfileImg)
		if err != nil {
			renderError(c, err)
			return
		}
		user.ProfileImg = url
	}
	if input.CoverImg != "" {
		if user.CoverImg != "" {
			if err := s.images.Delete(ctx, user.CoverImg); err != nil {
				renderError(c, err)
				return
			}
		}
		url, err := s.images.Upload(ctx, input.CoverImg)
		if err != nil {
			renderError(c, err)
			return
		}
		user.CoverImg = url
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Link != "" {
		user.Link = input.Link
	}

	if err := s.stores.Users.Update(ctx, user); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Scrubbed())
}
