package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campaign_go/internal/httputil"
	"campaign_go/pkg/logging"
	"campaign_go/pkg/storage"
)

type Handler struct {
	DB  *storage.DB
	log *logrus.Entry
}

func NewHandler(db *storage.DB, logger logging.Logger) *Handler {
	return &Handler{DB: db, log: logging.Component(logger, "handler")}
}

// GetPost возвращает пост вместе с сохранённым снимком
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id", "invalid post id")
	if !ok {
		return
	}
	p, err := h.DB.GetPostByID(c.Request.Context(), id)
	if errors.Is(err, storage.ErrPostNotFound) {
		httputil.RespondError(c, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("post_id", id).Error("не удалось получить пост")
		httputil.RespondError(c, http.StatusInternalServerError, "db error")
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePost удаляет пост из кампании
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := httputil.ParseID(c, "id", "invalid post id")
	if !ok {
		return
	}
	err := h.DB.DeletePost(c.Request.Context(), id)
	if errors.Is(err, storage.ErrPostNotFound) {
		httputil.RespondError(c, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("post_id", id).Error("не удалось удалить пост")
		httputil.RespondError(c, http.StatusInternalServerError, "db error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
