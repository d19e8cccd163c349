package campaign

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign_go/pkg/snapshot"
	"campaign_go/pkg/storage"
)

var (
	campaignColumns = []string{"id", "name", "brand", "budget", "start_date", "end_date", "created_at"}
	postColumns     = []string{
		"id", "campaign_id", "platform", "post_url", "influencer_username", "influencer_full_name",
		"avatar_url", "thumbnail_url", "media_type", "views_count", "plays_count", "likes_count", "comments_count",
		"shares_count", "followers_count", "collaboration_price", "post_created_at", "post_result_obj", "created_at",
	}
)

type fakeRefresher struct {
	result snapshot.RefreshResult
	err    error
	called int
}

func (f *fakeRefresher) RefreshCampaign(context.Context, int) (snapshot.RefreshResult, error) {
	f.called++
	return f.result, f.err
}

func setupRouter(t *testing.T, refresher Refresher) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	r := gin.New()
	SetupRoutes(r.Group("/campaign"), NewHandler(storage.NewDB(conn, nil), refresher, nil, nil))
	return r, mock
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectCampaign(mock sqlmock.Sqlmock, id int) {
	mock.ExpectQuery(`FROM campaigns WHERE id = \$1`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(campaignColumns).AddRow(id, "Запуск", "Brand", 1000.0, nil, nil, time.Now()))
}

func expectPosts(mock sqlmock.Sqlmock, id int) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(postColumns).
		AddRow(1, id, "instagram", "", "a", "", "", "", "", int64(1000), int64(0), int64(40), int64(10), int64(0), int64(500), 100.0, nil, nil, created).
		AddRow(2, id, "instagram", "", "a", "", "", "", "", int64(400), int64(0), int64(0), int64(5), int64(0), int64(800), 50.0, nil, nil, created).
		AddRow(3, id, "tiktok", "", "b", "", "", "", "", int64(600), int64(0), int64(0), int64(0), int64(0), int64(1000), 0.0, nil, nil, created)
	mock.ExpectQuery(`FROM campaign_post WHERE campaign_id = \$1`).WithArgs(id).WillReturnRows(rows)
}

func TestGetAnalytics(t *testing.T) {
	r, mock := setupRouter(t, nil)
	expectCampaign(mock, 7)
	expectPosts(mock, 7)

	w := perform(r, http.MethodGet, "/campaign/7/analytics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["campaign_id"])
	assert.Equal(t, float64(3), body["total_posts"])
	assert.Equal(t, float64(2), body["total_influencers"])
	assert.Equal(t, float64(2000), body["total_views"])
	assert.Equal(t, float64(1800), body["total_followers"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPerformanceExcludeZero(t *testing.T) {
	r, mock := setupRouter(t, nil)
	expectCampaign(mock, 7)
	expectPosts(mock, 7)

	w := perform(r, http.MethodGet, "/campaign/7/performance?exclude_zero=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2000), body["total_views"])
	assert.Equal(t, float64(1000), body["adjusted_views"])
	assert.Equal(t, float64(500), body["adjusted_followers"])
	assert.Equal(t, float64(2), body["excluded_posts"])
	assert.Equal(t, true, body["exclude_zero_engagement"])
}

func TestGetPerformanceInvalidFlag(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := perform(r, http.MethodGet, "/campaign/7/performance?exclude_zero=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalyticsNotFound(t *testing.T) {
	r, mock := setupRouter(t, nil)
	mock.ExpectQuery(`FROM campaigns WHERE id = \$1`).WithArgs(404).WillReturnRows(sqlmock.NewRows(campaignColumns))

	w := perform(r, http.MethodGet, "/campaign/404/analytics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"campaign not found"}`, w.Body.String())
}

func TestGetAnalyticsInvalidID(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := perform(r, http.MethodGet, "/campaign/abc/analytics", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCampaign(t *testing.T) {
	r, mock := setupRouter(t, nil)
	mock.ExpectQuery(`INSERT INTO campaigns`).
		WithArgs("Осень", "", 300.0, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))

	w := perform(r, http.MethodPost, "/campaign/CreateCampaign", `{"name":"Осень","budget":300}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":5`)

	w = perform(r, http.MethodPost, "/campaign/CreateCampaign", `{"brand":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/campaign/CreateCampaign",
		`{"name":"x","start_date":"2024-05-10T00:00:00Z","end_date":"2024-05-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost(t *testing.T) {
	r, mock := setupRouter(t, nil)

	w := perform(r, http.MethodPost, "/campaign/1/posts", `{"platform":"myspace"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mock.ExpectQuery(`INSERT INTO campaign_post`).WillReturnError(&pq.Error{Code: "23503"})
	w = perform(r, http.MethodPost, "/campaign/99/posts", `{"platform":"telegram","post_url":"https://t.me/news/1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	mock.ExpectQuery(`INSERT INTO campaign_post`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, time.Now()))
	w = perform(r, http.MethodPost, "/campaign/1/posts", `{"id":500,"platform":"tiktok","influencer_username":"dave","likes_count":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(12), body["id"])
	assert.Equal(t, float64(1), body["campaign_id"])
	assert.Equal(t, float64(10), body["likes_count"])
}

func TestCreatePostRejectsNegativeCounts(t *testing.T) {
	r, mock := setupRouter(t, nil)

	for _, body := range []string{
		`{"platform":"instagram","influencer_username":"x","likes_count":-5}`,
		`{"platform":"instagram","influencer_username":"x","shares_count":-5}`,
		`{"platform":"tiktok","influencer_username":"x","views_count":-1}`,
		`{"platform":"youtube","influencer_username":"x","collaboration_price":-100}`,
	} {
		w := perform(r, http.MethodPost, "/campaign/1/posts", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "в базу ничего не пишется")
}

func TestRefreshSnapshots(t *testing.T) {
	refresher := &fakeRefresher{result: snapshot.RefreshResult{Total: 3, Refreshed: 2, Skipped: 1}}
	r, mock := setupRouter(t, refresher)
	expectCampaign(mock, 2)

	w := perform(r, http.MethodPost, "/campaign/2/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3,"refreshed":2,"skipped":1,"failed":0}`, w.Body.String())
	assert.Equal(t, 1, refresher.called)
}

func TestRefreshSnapshotsNoAccounts(t *testing.T) {
	r, mock := setupRouter(t, &fakeRefresher{err: storage.ErrNoAccount})
	expectCampaign(mock, 2)

	w := perform(r, http.MethodPost, "/campaign/2/refresh", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRefreshSnapshotsDisabled(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := perform(r, http.MethodPost, "/campaign/2/refresh", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
