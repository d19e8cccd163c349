package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/item/:id", func(c *gin.Context) {
		id, ok := ParseID(c, "id", "invalid item id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/item/7", http.StatusOK, `{"id":7}`},
		{"/item/0", http.StatusBadRequest, `{"error":"invalid item id"}`},
		{"/item/-3", http.StatusBadRequest, `{"error":"invalid item id"}`},
		{"/item/abc", http.StatusBadRequest, `{"error":"invalid item id"}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.path)
		assert.JSONEq(t, tc.body, w.Body.String(), tc.path)
	}
}
