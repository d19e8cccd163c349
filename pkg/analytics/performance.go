package analytics

import "campaign_go/models"

// PerformanceOptions управляет расчётом производных показателей
type PerformanceOptions struct {
	// ExcludeZeroEngagement убирает посты без лайков из знаменателей коэффициентов вовлечённости
	ExcludeZeroEngagement bool
}

// Performance считает производные показатели кампании по готовой аналитике.
// Заголовочные TotalViews и TotalFollowers не корректируются, меняются только знаменатели
// EngagementRateBy*. CPV и CPE считаются от суммы бюджетов постов и полных итогов.
func Performance(data *models.AnalyticsData, opts PerformanceOptions) models.PerformanceOverview {
	var out models.PerformanceOverview
	out.ExcludeZeroEngagement = opts.ExcludeZeroEngagement
	if data == nil {
		return out
	}

	out.TotalViews = data.TotalViews
	out.TotalFollowers = data.TotalFollowers
	out.TotalEngagement = data.TotalEngagement
	out.TotalCollaborationPrice = data.TotalCollaborationPrice
	out.Impressions = data.TotalImpressions
	out.Reach = data.TotalReach

	if opts.ExcludeZeroEngagement {
		followers := make(map[string]int64)
		for _, p := range data.Posts {
			if p.Likes <= 0 {
				out.ExcludedPosts++
				continue
			}
			out.AdjustedViews += effectiveViews(p)
			key := influencerKey(p)
			if cur, ok := followers[key]; !ok || p.Followers > cur {
				followers[key] = p.Followers
			}
		}
		for _, f := range followers {
			out.AdjustedFollowers += f
		}
	} else {
		out.AdjustedViews = data.TotalViews
		out.AdjustedFollowers = data.TotalFollowers
	}

	out.EngagementRateByFollowers = percent(float64(out.TotalEngagement), float64(out.AdjustedFollowers))
	out.EngagementRateByViews = percent(float64(out.TotalEngagement), float64(out.AdjustedViews))

	// Без данных о бюджетах CPV и CPE остаются нулевыми
	if out.TotalCollaborationPrice > 0 {
		out.CPV = safeDiv(out.TotalCollaborationPrice, float64(out.TotalViews))
		out.CPE = safeDiv(out.TotalCollaborationPrice, float64(out.TotalEngagement))
	}
	return out
}
