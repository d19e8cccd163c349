package models

import "time"

// RawPost описывает опубликованный пост кампании в том виде, в котором он хранится в таблице campaign_post.
// Поля *_count заполняются вручную менеджером, PostResult содержит снимок метрик из контент-API площадки
// и может отсутствовать целиком или частично.
type RawPost struct {
	ID                 int        `json:"id"`
	CampaignID         int        `json:"campaign_id"`
	Platform           string     `json:"platform"` // instagram, tiktok, youtube, telegram
	PostURL            string     `json:"post_url"`
	InfluencerUsername string     `json:"influencer_username"`
	InfluencerFullName string     `json:"influencer_full_name"`
	AvatarURL          string     `json:"avatar_url"`
	ThumbnailURL       string     `json:"thumbnail_url"`
	MediaType          string     `json:"media_type"` // video, photo или пусто
	ViewsCount         int64      `json:"views_count"`
	PlaysCount         int64      `json:"plays_count"`
	LikesCount         int64      `json:"likes_count"`
	CommentsCount      int64      `json:"comments_count"`
	SharesCount        int64      `json:"shares_count"`
	FollowersCount     int64      `json:"followers_count"`
	CollaborationPrice float64    `json:"collaboration_price"` // Бюджет размещения поста
	PostCreatedAt      *time.Time `json:"post_created_at"`
	CreatedAt          time.Time  `json:"created_at"`

	// Снимок метрик из контент-API (колонка post_result_obj)
	PostResult *PostResult `json:"post_result_obj,omitempty"`
}

// Snapshot возвращает снимок контент-API или nil, если его нет.
func (p RawPost) Snapshot() *PostSnapshot {
	if p.PostResult == nil {
		return nil
	}
	return p.PostResult.Data
}

// PostResult: обёртка ответа контент-API, хранится в колонке post_result_obj как есть.
type PostResult struct {
	Data *PostSnapshot `json:"data"`
}

// EdgeCount: счётчик в формате graph-ответа: {"count": N}.
type EdgeCount struct {
	Count *int64 `json:"count"`
}

// SnapshotOwner: автор поста в снимке.
type SnapshotOwner struct {
	Username        *string    `json:"username,omitempty"`
	FullName        *string    `json:"full_name,omitempty"`
	IsVerified      *bool      `json:"is_verified,omitempty"`
	ProfilePicURL   *string    `json:"profile_pic_url,omitempty"`
	ProfilePicURLHD *string    `json:"profile_pic_url_hd,omitempty"`
	EdgeFollowedBy  *EdgeCount `json:"edge_followed_by,omitempty"`
	FollowerCount   *int64     `json:"follower_count,omitempty"`
}

// PostSnapshot объединяет обе формы ответа контент-API: graph (edge_*) и плоскую (*_count).
// Все поля необязательные, nil означает, что площадка поле не вернула.
type PostSnapshot struct {
	// graph-форма
	EdgeMediaPreviewLike     *EdgeCount `json:"edge_media_preview_like,omitempty"`
	EdgeLikedBy              *EdgeCount `json:"edge_liked_by,omitempty"`
	EdgeMediaToComment       *EdgeCount `json:"edge_media_to_comment,omitempty"`
	EdgeMediaToParentComment *EdgeCount `json:"edge_media_to_parent_comment,omitempty"`

	// плоская форма
	LikeCount    *int64 `json:"like_count,omitempty"`
	CommentCount *int64 `json:"comment_count,omitempty"`

	VideoPlayCount   *int64         `json:"video_play_count,omitempty"`
	VideoViewCount   *int64         `json:"video_view_count,omitempty"`
	IsVideo          *bool          `json:"is_video,omitempty"`
	TakenAtTimestamp *int64         `json:"taken_at_timestamp,omitempty"`
	Owner            *SnapshotOwner `json:"owner,omitempty"`

	ThumbnailSrc *string `json:"thumbnail_src,omitempty"`
	DisplayURL   *string `json:"display_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	CoverURL     *string `json:"cover_url,omitempty"`
}
