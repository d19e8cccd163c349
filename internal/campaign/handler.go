package campaign

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campaign_go/internal/httputil"
	"campaign_go/models"
	"campaign_go/pkg/analytics"
	"campaign_go/pkg/logging"
	"campaign_go/pkg/monitoring"
	"campaign_go/pkg/snapshot"
	"campaign_go/pkg/storage"
)

// Refresher обновляет снимки Telegram-постов кампании
type Refresher interface {
	RefreshCampaign(ctx context.Context, campaignID int) (snapshot.RefreshResult, error)
}

// Handler обрабатывает HTTP-запросы кампаний, их постов и аналитики
type Handler struct {
	DB         *storage.DB
	Aggregator *analytics.Aggregator
	Refresher  Refresher
	Metrics    *monitoring.Metrics
	log        *logrus.Entry
}

func NewHandler(db *storage.DB, refresher Refresher, metrics *monitoring.Metrics, logger logging.Logger) *Handler {
	return &Handler{
		DB:         db,
		Aggregator: analytics.NewAggregator(logger),
		Refresher:  refresher,
		Metrics:    metrics,
		log:        logging.Component(logger, "handler"),
	}
}

// campaignID читает :id из пути; при ошибке ответ уже отправлен
func (h *Handler) campaignID(c *gin.Context) (int, bool) {
	return httputil.ParseID(c, "id", "invalid campaign id")
}

// respondStorageError переводит ошибки хранилища в HTTP-статусы
func (h *Handler) respondStorageError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, storage.ErrCampaignNotFound):
		httputil.RespondError(c, http.StatusNotFound, "campaign not found")
	case errors.Is(err, storage.ErrPostNotFound):
		httputil.RespondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, storage.ErrNoAccount):
		httputil.RespondError(c, http.StatusConflict, "no authorized accounts")
	default:
		h.log.WithError(err).Error(action)
		httputil.RespondError(c, http.StatusInternalServerError, "db error")
	}
}

// CreateCampaign создаёт новую кампанию
func (h *Handler) CreateCampaign(c *gin.Context) {
	var input struct {
		Name      string     `json:"name" binding:"required"`
		Brand     string     `json:"brand"`
		Budget    float64    `json:"budget" binding:"gte=0"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	campaign := models.Campaign{
		Name:      input.Name,
		Brand:     input.Brand,
		Budget:    input.Budget,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if campaign.StartDate != nil && campaign.EndDate != nil && campaign.EndDate.Before(*campaign.StartDate) {
		httputil.RespondError(c, http.StatusBadRequest, "end_date before start_date")
		return
	}

	created, err := h.DB.CreateCampaign(c.Request.Context(), campaign)
	if err != nil {
		h.respondStorageError(c, err, "не удалось создать кампанию")
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListCampaigns возвращает все кампании
func (h *Handler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.DB.ListCampaigns(c.Request.Context())
	if err != nil {
		h.respondStorageError(c, err, "не удалось получить кампании")
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}
	campaign, err := h.DB.GetCampaignByID(c.Request.Context(), id)
	if err != nil {
		h.respondStorageError(c, err, "не удалось получить кампанию")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// postInput: тело запроса на создание поста. Ручные счётчики и цена не могут быть отрицательными,
// иначе суммы кампании расходятся с суммами инфлюенсеров.
type postInput struct {
	Platform           string             `json:"platform"`
	PostURL            string             `json:"post_url"`
	InfluencerUsername string             `json:"influencer_username"`
	InfluencerFullName string             `json:"influencer_full_name"`
	AvatarURL          string             `json:"avatar_url"`
	ThumbnailURL       string             `json:"thumbnail_url"`
	MediaType          string             `json:"media_type"`
	ViewsCount         int64              `json:"views_count" binding:"gte=0"`
	PlaysCount         int64              `json:"plays_count" binding:"gte=0"`
	LikesCount         int64              `json:"likes_count" binding:"gte=0"`
	CommentsCount      int64              `json:"comments_count" binding:"gte=0"`
	SharesCount        int64              `json:"shares_count" binding:"gte=0"`
	FollowersCount     int64              `json:"followers_count" binding:"gte=0"`
	CollaborationPrice float64            `json:"collaboration_price" binding:"gte=0"`
	PostCreatedAt      *time.Time         `json:"post_created_at"`
	PostResult         *models.PostResult `json:"post_result_obj"`
}

func (in postInput) toRawPost(campaignID int) models.RawPost {
	return models.RawPost{
		CampaignID:         campaignID,
		Platform:           in.Platform,
		PostURL:            in.PostURL,
		InfluencerUsername: in.InfluencerUsername,
		InfluencerFullName: in.InfluencerFullName,
		AvatarURL:          in.AvatarURL,
		ThumbnailURL:       in.ThumbnailURL,
		MediaType:          in.MediaType,
		ViewsCount:         in.ViewsCount,
		PlaysCount:         in.PlaysCount,
		LikesCount:         in.LikesCount,
		CommentsCount:      in.CommentsCount,
		SharesCount:        in.SharesCount,
		FollowersCount:     in.FollowersCount,
		CollaborationPrice: in.CollaborationPrice,
		PostCreatedAt:      in.PostCreatedAt,
		PostResult:         in.PostResult,
	}
}

// CreatePost добавляет пост инфлюенсера в кампанию
func (h *Handler) CreatePost(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}
	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if !validPlatform(input.Platform) {
		httputil.RespondError(c, http.StatusBadRequest, "unknown platform")
		return
	}
	post := input.toRawPost(id)

	created, err := h.DB.CreatePost(c.Request.Context(), post)
	if err != nil {
		h.respondStorageError(c, err, "не удалось сохранить пост")
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListPosts возвращает посты кампании в сыром виде
func (h *Handler) ListPosts(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}
	posts, err := h.DB.GetPostsByCampaign(c.Request.Context(), id)
	if err != nil {
		h.respondStorageError(c, err, "не удалось получить посты")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// loadAnalytics строит аналитику кампании; для неизвестной кампании отвечает 404
func (h *Handler) loadAnalytics(c *gin.Context) (*models.AnalyticsData, bool) {
	id, ok := h.campaignID(c)
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()
	if _, err := h.DB.GetCampaignByID(ctx, id); err != nil {
		h.respondStorageError(c, err, "не удалось получить кампанию")
		return nil, false
	}
	posts, err := h.DB.GetPostsByCampaign(ctx, id)
	if err != nil {
		h.respondStorageError(c, err, "не удалось получить посты")
		return nil, false
	}
	data := h.Aggregator.Build(id, posts)
	h.Metrics.ObserveAggregation(len(posts))
	return data, true
}

// GetAnalytics возвращает сводную аналитику кампании
func (h *Handler) GetAnalytics(c *gin.Context) {
	data, ok := h.loadAnalytics(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetPerformance возвращает стоимостные метрики; exclude_zero=true убирает посты без вовлечённости
func (h *Handler) GetPerformance(c *gin.Context) {
	excludeZero, err := strconv.ParseBool(c.DefaultQuery("exclude_zero", "false"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid exclude_zero")
		return
	}
	data, ok := h.loadAnalytics(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Performance(data, analytics.PerformanceOptions{ExcludeZeroEngagement: excludeZero}))
}

// RefreshSnapshots обновляет снимки Telegram-постов кампании
func (h *Handler) RefreshSnapshots(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}
	if h.Refresher == nil {
		httputil.RespondError(c, http.StatusServiceUnavailable, "snapshot refresh disabled")
		return
	}
	ctx := c.Request.Context()
	if _, err := h.DB.GetCampaignByID(ctx, id); err != nil {
		h.respondStorageError(c, err, "не удалось получить кампанию")
		return
	}
	result, err := h.Refresher.RefreshCampaign(ctx, id)
	if err != nil {
		h.respondStorageError(c, err, "обновление снимков")
		return
	}
	c.JSON(http.StatusOK, result)
}

func validPlatform(p string) bool {
	switch p {
	case "instagram", "tiktok", "youtube", "telegram":
		return true
	}
	return false
}
