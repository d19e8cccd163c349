package analytics

import (
	"strings"
	"time"

	"campaign_go/models"
)

// Заглушки, которые показываются, если ни одно поле с изображением не заполнено
const (
	PostPlaceholder   = "/images/post-placeholder.png"
	AvatarPlaceholder = "/images/avatar-placeholder.png"
)

// snapshotView читает метрики снимка контент-API независимо от его формы.
// Каждый метод проходит фиксированную цепочку полей и сообщает, нашлось ли значение.
type snapshotView struct {
	s *models.PostSnapshot
}

func edgeCount(e *models.EdgeCount) *int64 {
	if e == nil {
		return nil
	}
	return e.Count
}

// firstCount возвращает первое присутствующее значение цепочки
func firstCount(vals ...*int64) (int64, bool) {
	for _, v := range vals {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// firstString возвращает первую непустую строку цепочки
func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func (v snapshotView) owner() *models.SnapshotOwner {
	if v.s.Owner == nil {
		return &models.SnapshotOwner{}
	}
	return v.s.Owner
}

func (v snapshotView) likes() (int64, bool) {
	return firstCount(edgeCount(v.s.EdgeMediaPreviewLike), edgeCount(v.s.EdgeLikedBy), v.s.LikeCount)
}

func (v snapshotView) comments() (int64, bool) {
	return firstCount(edgeCount(v.s.EdgeMediaToComment), edgeCount(v.s.EdgeMediaToParentComment), v.s.CommentCount)
}

func (v snapshotView) followers() (int64, bool) {
	o := v.owner()
	return firstCount(edgeCount(o.EdgeFollowedBy), o.FollowerCount)
}

func (v snapshotView) videoPlayCount() (int64, bool) {
	return firstCount(v.s.VideoPlayCount)
}

func (v snapshotView) videoViewCount() int64 {
	n, _ := firstCount(v.s.VideoViewCount)
	return n
}

func (v snapshotView) thumbnail() string {
	return firstString(v.s.ThumbnailSrc, v.s.DisplayURL, v.s.ThumbnailURL, v.s.CoverURL)
}

func (v snapshotView) avatar() string {
	o := v.owner()
	return firstString(o.ProfilePicURLHD, o.ProfilePicURL)
}

func maxInt64(vals ...int64) int64 {
	var m int64
	for i, v := range vals {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// NormalizePost приводит пост к единому набору метрик.
// Функция не возвращает ошибок: отсутствующие данные превращаются в 0 или заглушки.
func NormalizePost(p models.RawPost) models.NormalizedPost {
	np := models.NormalizedPost{
		PostID:             p.ID,
		Username:           p.InfluencerUsername,
		FullName:           p.InfluencerFullName,
		Platform:           p.Platform,
		PostURL:            p.PostURL,
		Shares:             maxInt64(p.SharesCount, 0), // контент-API не отдаёт репосты, берём ручное поле
		CollaborationPrice: p.CollaborationPrice,
		PostDate:           postDate(p),
	}

	thumbnail := p.ThumbnailURL
	avatar := p.AvatarURL

	if snap := p.Snapshot(); snap == nil {
		// Снимка нет — работаем только с ручными полями
		np.Likes = p.LikesCount
		np.Comments = p.CommentsCount
		np.Views = maxInt64(p.ViewsCount, p.PlaysCount)
		np.Plays = p.PlaysCount
		np.VideoPlayCount = p.PlaysCount
		np.Followers = p.FollowersCount
		np.IsVideo = p.MediaType == "video" || p.PlaysCount > 0
	} else {
		v := snapshotView{s: snap}
		o := v.owner()

		if n, ok := v.likes(); ok {
			np.Likes = n
		} else {
			np.Likes = p.LikesCount
		}
		if n, ok := v.comments(); ok {
			np.Comments = n
		} else {
			np.Comments = p.CommentsCount
		}
		if n, ok := v.followers(); ok {
			np.Followers = n
		} else {
			np.Followers = p.FollowersCount
		}

		// video_play_count — единственный источник для расчётов на просмотр, без смешивания
		playCount, hasPlays := v.videoPlayCount()
		np.VideoPlayCount = playCount
		if hasPlays {
			np.Plays = playCount
		} else {
			np.Plays = p.PlaysCount
		}
		// Широкое значение просмотров оставлено для совместимости отображения
		np.Views = maxInt64(playCount, v.videoViewCount(), p.ViewsCount, p.PlaysCount)

		if name := firstString(o.FullName); name != "" {
			np.FullName = name
		}
		if np.Username == "" {
			np.Username = firstString(o.Username)
		}
		if o.IsVerified != nil {
			np.IsVerified = *o.IsVerified
		}
		if snap.IsVideo != nil {
			np.IsVideo = *snap.IsVideo
		} else {
			np.IsVideo = p.MediaType == "video" || np.VideoPlayCount > 0
		}

		if u := v.thumbnail(); u != "" {
			thumbnail = u
		}
		if u := v.avatar(); u != "" {
			avatar = u
		}
	}

	if thumbnail == "" {
		thumbnail = PostPlaceholder
	}
	if avatar == "" {
		avatar = AvatarPlaceholder
	}
	np.ThumbnailURL = ProxyImageURL(thumbnail)
	np.AvatarURL = ProxyImageURL(avatar)

	np.Engagement = engagementOf(np.Likes, np.Comments, np.Shares)
	np.EngagementRate = percent(float64(np.Engagement), float64(np.Followers))
	return np
}

// postDate выбирает дату публикации: post_created_at, затем created_at
func postDate(p models.RawPost) *time.Time {
	if p.PostCreatedAt != nil && !p.PostCreatedAt.IsZero() {
		t := *p.PostCreatedAt
		return &t
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		return &t
	}
	return nil
}

// effectiveViews — просмотры поста для итогов: play-семантика площадки в приоритете
func effectiveViews(p models.NormalizedPost) int64 {
	return maxInt64(p.VideoPlayCount, p.Views)
}

// influencerKey — ключ группировки постов по инфлюенсеру без учёта регистра
func influencerKey(p models.NormalizedPost) string {
	return strings.ToLower(p.Username)
}
