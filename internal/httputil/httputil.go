package httputil

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RespondError отправляет ошибку в формате {"error": msg} и прерывает цепочку обработчиков
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// ParseID читает положительный целочисленный параметр пути.
// При ошибке отвечает 400 с сообщением msg и возвращает false.
func ParseID(c *gin.Context, param, msg string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
