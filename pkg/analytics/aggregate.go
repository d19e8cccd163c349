package analytics

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"campaign_go/models"
	"campaign_go/pkg/logging"
)

// Aggregator собирает аналитику кампании из списка постов.
// Состояния между вызовами нет: каждый вызов Build пересчитывает всё с нуля.
type Aggregator struct {
	log *logrus.Entry
	now func() time.Time
}

// NewAggregator создаёт агрегатор с логгером для пропущенных в таймлайне постов
func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{
		log: logging.Component(logger, "analytics"),
		now: time.Now,
	}
}

// influencerAcc накапливает данные инфлюенсера; named фиксирует, что имя уже взято из поста с full name
type influencerAcc struct {
	agg   models.InfluencerAggregate
	named bool
}

// Build строит AnalyticsData по постам кампании за один проход.
// Итоги кампании считаются отдельными суммами по нормализованным постам,
// а не выводятся из сводок по инфлюенсерам. Подписчики — исключение:
// это сумма максимумов по каждому инфлюенсеру.
func (a *Aggregator) Build(campaignID int, posts []models.RawPost) *models.AnalyticsData {
	data := &models.AnalyticsData{
		CampaignID:    campaignID,
		GeneratedAt:   a.now().UTC(),
		ViewsByDate:   []models.DateBucket{},
		TopPerformers: []models.InfluencerAggregate{},
		TopPosts:      []models.NormalizedPost{},
		Posts:         make([]models.NormalizedPost, 0, len(posts)),
	}

	influencers := make(map[string]*influencerAcc)
	var order []string
	buckets := make(map[string]*models.DateBucket)

	for _, raw := range posts {
		np := NormalizePost(raw)
		data.Posts = append(data.Posts, np)
		views := effectiveViews(np)

		data.TotalPosts++
		data.TotalLikes += np.Likes
		data.TotalComments += np.Comments
		data.TotalShares += np.Shares
		data.TotalViews += views
		data.TotalVideoPlayCount += np.VideoPlayCount
		data.TotalEngagement += np.Engagement
		data.TotalCollaborationPrice += np.CollaborationPrice
		if np.IsVideo {
			data.VideoPosts++
		} else {
			data.PhotoPosts++
		}

		key := influencerKey(np)
		acc, ok := influencers[key]
		if !ok {
			acc = &influencerAcc{agg: models.InfluencerAggregate{Username: key, Platform: np.Platform}}
			acc.setIdentity(np)
			influencers[key] = acc
			order = append(order, key)
		} else if !acc.named && np.FullName != "" {
			acc.setIdentity(np)
		}
		acc.add(np, views)

		// Таймлайн: посты без даты или без просмотров пропускаются
		if np.PostDate == nil {
			a.log.WithField("post_id", np.PostID).Debug("пост без даты публикации пропущен в таймлайне")
			continue
		}
		if views == 0 {
			a.log.WithField("post_id", np.PostID).Debug("пост без просмотров пропущен в таймлайне")
			continue
		}
		day := np.PostDate.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &models.DateBucket{Date: day}
			buckets[day] = b
		}
		b.Posts++
		b.Views += views
	}

	for _, key := range order {
		acc := influencers[key]
		acc.finish()
		data.TotalFollowers += acc.agg.Followers
		data.TopPerformers = append(data.TopPerformers, acc.agg)
	}
	data.TotalInfluencers = len(order)

	data.ViewsByDate = buildTimeline(buckets)

	// Рейтинги по вовлечённости, при равенстве сохраняется порядок поступления
	sort.SliceStable(data.TopPerformers, func(i, j int) bool {
		return data.TopPerformers[i].TotalEngagement > data.TopPerformers[j].TotalEngagement
	})
	data.TopPosts = append(data.TopPosts, data.Posts...)
	sort.SliceStable(data.TopPosts, func(i, j int) bool {
		return data.TopPosts[i].Engagement > data.TopPosts[j].Engagement
	})
	if len(data.TopPosts) > TopPostsLimit {
		data.TopPosts = data.TopPosts[:TopPostsLimit]
	}

	// Оценочные показатели, см. heuristics.go
	data.TotalClicks = EstimateClicks(data.TotalEngagement)
	data.TotalImpressions = EstimateImpressions(data.TotalViews, data.TotalFollowers, data.PhotoPosts, data.TotalInfluencers)
	data.TotalReach = EstimateReach(data.TotalImpressions, data.TotalViews)

	data.AverageEngagementRate = percent(float64(data.TotalEngagement), float64(data.TotalFollowers))
	data.CPV = safeDiv(data.TotalCollaborationPrice, float64(data.TotalViews))
	data.CPE = safeDiv(data.TotalCollaborationPrice, float64(data.TotalEngagement))
	data.ViewsToFollowersRatio = safeDiv(float64(data.TotalViews), float64(data.TotalFollowers))
	data.CommentToViewsRatio = percent(float64(data.TotalComments), float64(data.TotalViews))

	a.log.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"posts":       data.TotalPosts,
		"influencers": data.TotalInfluencers,
		"days":        len(data.ViewsByDate),
	}).Debug("аналитика кампании собрана")

	return data
}

func (acc *influencerAcc) setIdentity(np models.NormalizedPost) {
	acc.agg.FullName = np.FullName
	acc.agg.AvatarURL = np.AvatarURL
	acc.agg.IsVerified = np.IsVerified
	acc.named = np.FullName != ""
}

func (acc *influencerAcc) add(np models.NormalizedPost, views int64) {
	acc.agg.Posts++
	acc.agg.TotalLikes += np.Likes
	acc.agg.TotalComments += np.Comments
	acc.agg.TotalShares += np.Shares
	acc.agg.TotalVideoPlayCount += np.VideoPlayCount
	acc.agg.TotalViews += views
	acc.agg.CollaborationPrice += np.CollaborationPrice
	if np.Followers > acc.agg.Followers {
		acc.agg.Followers = np.Followers
	}
}

// finish считает производные показатели по накопленным суммам, а не средним по постам
func (acc *influencerAcc) finish() {
	if acc.agg.FullName == "" {
		acc.agg.FullName = acc.agg.Username
	}
	acc.agg.TotalEngagement = engagementOf(acc.agg.TotalLikes, acc.agg.TotalComments, acc.agg.TotalShares)
	acc.agg.EngagementRate = percent(float64(acc.agg.TotalEngagement), float64(acc.agg.Followers))
	acc.agg.Clicks = EstimateClicks(acc.agg.TotalEngagement)
}

// buildTimeline сортирует дни по возрастанию и считает накопительные просмотры.
// Даты в формате YYYY-MM-DD сортируются лексикографически в хронологическом порядке.
func buildTimeline(buckets map[string]*models.DateBucket) []models.DateBucket {
	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	timeline := make([]models.DateBucket, 0, len(days))
	var cumulative int64
	for _, day := range days {
		b := *buckets[day]
		cumulative += b.Views
		b.CumulativeViews = cumulative
		timeline = append(timeline, b)
	}
	return timeline
}
