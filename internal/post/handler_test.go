package post

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign_go/pkg/storage"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	r := gin.New()
	SetupRoutes(r.Group("/post"), NewHandler(storage.NewDB(conn, nil), nil))
	return r, mock
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestDeletePost(t *testing.T) {
	r, mock := setupRouter(t)
	mock.ExpectExec(`DELETE FROM campaign_post`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM campaign_post`).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))

	w := serve(r, http.MethodDelete, "/post/3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, w.Body.String())

	w = serve(r, http.MethodDelete, "/post/4")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodDelete, "/post/x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPost(t *testing.T) {
	r, mock := setupRouter(t)
	cols := []string{
		"id", "campaign_id", "platform", "post_url", "influencer_username", "influencer_full_name",
		"avatar_url", "thumbnail_url", "media_type", "views_count", "plays_count", "likes_count", "comments_count",
		"shares_count", "followers_count", "collaboration_price", "post_created_at", "post_result_obj", "created_at",
	}
	mock.ExpectQuery(`FROM campaign_post WHERE id = \$1`).WithArgs(8).WillReturnRows(
		sqlmock.NewRows(cols).AddRow(8, 1, "telegram", "https://t.me/news/8", "news", "", "", "", "", int64(0), int64(0),
			int64(0), int64(0), int64(2), int64(0), 0.0, nil, []byte(`{"data":{"like_count":9}}`), time.Now()))
	mock.ExpectQuery(`FROM campaign_post WHERE id = \$1`).WithArgs(9).WillReturnRows(sqlmock.NewRows(cols))

	w := serve(r, http.MethodGet, "/post/8")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"post_result_obj":{"data":{"like_count":9}}`)

	w = serve(r, http.MethodGet, "/post/9")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
