package analytics

import "math"

// Коэффициенты оценок показов, охвата и кликов. Это не измеренные величины, а
// бизнес-эвристики отчёта: значения сохраняются ради совпадения цифр с прежним дашбордом.
const (
	VideoImpressionMultiplier    = 1.3
	PhotoImpressionFollowerShare = 0.4
	ReachImpressionRatio         = 0.65
	ReachFloorImpressionRatio    = 0.5
	ClickRate                    = 0.03
)

// TopPostsLimit: сколько постов попадает в рейтинг лучших
const TopPostsLimit = 20

// safeDiv делит с защитой от нулевого знаменателя: вместо NaN и Inf возвращается 0
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	res := num / den
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0
	}
	return res
}

// percent возвращает num/den*100 с защитой от нуля
func percent(num, den float64) float64 {
	return safeDiv(num, den) * 100
}

// engagementOf суммирует лайки, комментарии и положительные репосты
func engagementOf(likes, comments, shares int64) int64 {
	total := likes + comments
	if shares > 0 {
		total += shares
	}
	return total
}

// EstimateClicks оценивает клики как 3% от вовлечённости
func EstimateClicks(engagement int64) int64 {
	return int64(math.Round(float64(engagement) * ClickRate))
}

// EstimateImpressions оценивает показы: видео — просмотры с множителем,
// фото — доля подписчиков на фото-пост в среднем на инфлюенсера.
func EstimateImpressions(totalViews, totalFollowers int64, photoPosts, influencers int) int64 {
	video := float64(totalViews) * VideoImpressionMultiplier
	photo := safeDiv(float64(photoPosts)*float64(totalFollowers)*PhotoImpressionFollowerShare, float64(influencers))
	return int64(math.Round(video + photo))
}

// EstimateReach оценивает охват по показам, но не ниже просмотров и половины показов
func EstimateReach(impressions, totalViews int64) int64 {
	imp := float64(impressions)
	floor := math.Max(float64(totalViews), imp*ReachFloorImpressionRatio)
	return int64(math.Round(math.Min(imp*ReachImpressionRatio, floor)))
}
