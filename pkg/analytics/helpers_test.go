package analytics

import (
	"time"

	"campaign_go/models"
)

func i64(v int64) *int64   { return &v }
func str(v string) *string { return &v }
func boolean(v bool) *bool { return &v }

func edge(v int64) *models.EdgeCount {
	return &models.EdgeCount{Count: i64(v)}
}

func day(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// graphPost собирает пост со снимком в graph-форме
func graphPost(id int, username string, likes, followers, plays int64) models.RawPost {
	return models.RawPost{
		ID:                 id,
		InfluencerUsername: username,
		PostResult: &models.PostResult{Data: &models.PostSnapshot{
			EdgeMediaPreviewLike: edge(likes),
			VideoPlayCount:       i64(plays),
			Owner:                &models.SnapshotOwner{EdgeFollowedBy: edge(followers)},
		}},
	}
}
