package models

import "time"

// NormalizedPost: метрики одного поста после нормализации обеих форм снимка и ручных полей.
// Строится заново при каждом расчёте аналитики и в БД не сохраняется.
type NormalizedPost struct {
	PostID             int        `json:"post_id"`
	Username           string     `json:"username"`
	FullName           string     `json:"full_name"`
	Platform           string     `json:"platform"`
	PostURL            string     `json:"post_url"`
	Likes              int64      `json:"likes"`
	Comments           int64      `json:"comments"`
	Views              int64      `json:"views"`            // Широкое значение просмотров для отображения
	Plays              int64      `json:"plays"`            // video_play_count снимка или ручное plays_count
	VideoPlayCount     int64      `json:"video_play_count"` // Строго из снимка, база для расчётов на просмотр
	Shares             int64      `json:"shares"`
	Followers          int64      `json:"followers"`
	Engagement         int64      `json:"engagement"`
	EngagementRate     float64    `json:"engagement_rate"`
	CollaborationPrice float64    `json:"collaboration_price"`
	AvatarURL          string     `json:"avatar_url"`
	ThumbnailURL       string     `json:"thumbnail_url"`
	IsVerified         bool       `json:"is_verified"`
	IsVideo            bool       `json:"is_video"`
	PostDate           *time.Time `json:"post_date"`
}

// InfluencerAggregate: сводка по одному инфлюенсеру кампании.
// Followers хранит максимум по постам, а не сумму: число подписчиков меняется между публикациями.
type InfluencerAggregate struct {
	Username            string  `json:"username"`
	FullName            string  `json:"full_name"`
	AvatarURL           string  `json:"avatar_url"`
	IsVerified          bool    `json:"is_verified"`
	Platform            string  `json:"platform"`
	Posts               int     `json:"posts"`
	TotalLikes          int64   `json:"total_likes"`
	TotalComments       int64   `json:"total_comments"`
	TotalShares         int64   `json:"total_shares"`
	TotalVideoPlayCount int64   `json:"total_video_play_count"`
	TotalViews          int64   `json:"total_views"`
	Followers           int64   `json:"followers"`
	TotalEngagement     int64   `json:"total_engagement"`
	EngagementRate      float64 `json:"engagement_rate"`
	Clicks              int64   `json:"clicks"` // Оценка, см. analytics.EstimateClicks
	CollaborationPrice  float64 `json:"collaboration_price"`
}

// DateBucket: просмотры за календарный день (UTC) с накопительным итогом.
type DateBucket struct {
	Date            string `json:"date"`
	Posts           int    `json:"posts"`
	Views           int64  `json:"views"`
	CumulativeViews int64  `json:"cumulative_views"`
}

// AnalyticsData: итоговая аналитика кампании, которую отдаёт API отчёта.
type AnalyticsData struct {
	CampaignID  int       `json:"campaign_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalClicks             int64   `json:"total_clicks"`
	TotalImpressions        int64   `json:"total_impressions"`
	TotalReach              int64   `json:"total_reach"`
	TotalLikes              int64   `json:"total_likes"`
	TotalComments           int64   `json:"total_comments"`
	TotalViews              int64   `json:"total_views"`
	TotalVideoPlayCount     int64   `json:"total_video_play_count"`
	TotalShares             int64   `json:"total_shares"`
	TotalFollowers          int64   `json:"total_followers"`
	TotalPosts              int     `json:"total_posts"`
	TotalInfluencers        int     `json:"total_influencers"`
	VideoPosts              int     `json:"video_posts"`
	PhotoPosts              int     `json:"photo_posts"`
	TotalEngagement         int64   `json:"total_engagement"`
	TotalCollaborationPrice float64 `json:"total_collaboration_price"`

	AverageEngagementRate float64 `json:"average_engagement_rate"`
	CPV                   float64 `json:"cpv"`
	CPE                   float64 `json:"cpe"`
	ViewsToFollowersRatio float64 `json:"views_to_followers_ratio"`
	CommentToViewsRatio   float64 `json:"comment_to_views_ratio"`

	ViewsByDate   []DateBucket          `json:"views_by_date"`
	TopPerformers []InfluencerAggregate `json:"top_performers"`
	TopPosts      []NormalizedPost      `json:"top_posts"`
	Posts         []NormalizedPost      `json:"posts"`
}

// PerformanceOverview: производные показатели кампании.
// TotalViews и TotalFollowers всегда включают все посты, скорректированные знаменатели
// используются только для коэффициентов вовлечённости.
type PerformanceOverview struct {
	TotalViews                int64   `json:"total_views"`
	TotalFollowers            int64   `json:"total_followers"`
	AdjustedViews             int64   `json:"adjusted_views"`
	AdjustedFollowers         int64   `json:"adjusted_followers"`
	ExcludedPosts             int     `json:"excluded_posts"`
	TotalEngagement           int64   `json:"total_engagement"`
	EngagementRateByFollowers float64 `json:"engagement_rate_by_followers"`
	EngagementRateByViews     float64 `json:"engagement_rate_by_views"`
	TotalCollaborationPrice   float64 `json:"total_collaboration_price"`
	CPV                       float64 `json:"cpv"`
	CPE                       float64 `json:"cpe"`
	Impressions               int64   `json:"impressions"`
	Reach                     int64   `json:"reach"`
	ExcludeZeroEngagement     bool    `json:"exclude_zero_engagement"`
}
