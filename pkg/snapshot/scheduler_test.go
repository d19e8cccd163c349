package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign_go/models"
)

type fakeLister struct {
	campaigns []models.Campaign
	err       error
}

func (f fakeLister) ListCampaigns(context.Context) ([]models.Campaign, error) {
	return f.campaigns, f.err
}

type recordingRefresher struct {
	ids  []int
	fail map[int]bool
}

func (r *recordingRefresher) RefreshCampaign(_ context.Context, id int) (RefreshResult, error) {
	r.ids = append(r.ids, id)
	if r.fail[id] {
		return RefreshResult{}, errors.New("no accounts")
	}
	return RefreshResult{Refreshed: 1}, nil
}

func TestSchedulerRunOnce(t *testing.T) {
	refresher := &recordingRefresher{fail: map[int]bool{2: true}}
	s := NewScheduler(fakeLister{campaigns: []models.Campaign{{ID: 1}, {ID: 2}, {ID: 3}}}, refresher, 0, nil)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, refresher.ids, "ошибка кампании не прерывает обход")
}

func TestSchedulerRunOnceListError(t *testing.T) {
	s := NewScheduler(fakeLister{err: errors.New("db down")}, &recordingRefresher{}, 0, nil)
	assert.EqualError(t, s.RunOnce(context.Background()), "db down")
}

func TestSchedulerRunOnceCancelled(t *testing.T) {
	refresher := &recordingRefresher{}
	s := NewScheduler(fakeLister{campaigns: []models.Campaign{{ID: 1}}}, refresher, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.RunOnce(ctx), context.Canceled)
	assert.Empty(t, refresher.ids)
}
