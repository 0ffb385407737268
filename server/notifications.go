package server

import (
	"net/http"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/server/middlewares"
	"github.com/gin-gonic/gin"
)

// notificationView expands the sender reference into a scrubbed profile.
type notificationView struct {
	Id        string     `json:"_id"`
	From      model.User `json:"from"`
	Type      string     `json:"type"`
	CreatedAt string     `json:"createdAt"`
}

func (s *Server) getNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	notifications, err := s.stores.Notifications.ByRecipient(ctx, middlewares.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	senderIDs := []string{}
	seen := map[string]bool{}
	for _, n := range notifications {
		if !seen[n.From] {
			seen[n.From] = true
			senderIDs = append(senderIDs, n.From)
		}
	}
	senders, err := s.stores.Users.GetMany(ctx, senderIDs)
	if err != nil {
		renderError(c, err)
		return
	}
	byID := map[string]model.User{}
	for _, u := range senders {
		byID[u.Id] = u.Scrubbed()
	}

	views := []notificationView{}
	for _, n := range notifications {
		sender, ok := byID[n.From]
		if !ok {
			sender = model.User{Id: n.From}
		}
		views = append(views, notificationView{
			Id:        n.Id,
			From:      sender,
			Type:      n.Type,
			CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	c.JSON(http.StatusOK, views)
}
