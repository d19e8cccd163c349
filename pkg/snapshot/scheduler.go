package snapshot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"campaign_go/models"
	"campaign_go/pkg/logging"
)

type CampaignLister interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
}

type CampaignRefresher interface {
	RefreshCampaign(ctx context.Context, campaignID int) (RefreshResult, error)
}

// Scheduler периодически обновляет снимки всех кампаний
type Scheduler struct {
	campaigns CampaignLister
	refresher CampaignRefresher
	interval  time.Duration
	log       *logrus.Entry
}

func NewScheduler(campaigns CampaignLister, refresher CampaignRefresher, interval time.Duration, logger logging.Logger) *Scheduler {
	return &Scheduler{
		campaigns: campaigns,
		refresher: refresher,
		interval:  interval,
		log:       logging.Component(logger, "scheduler"),
	}
}

// Start запускает фоновый цикл до отмены ctx. Нулевой интервал отключает планировщик.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("фоновое обновление снимков отключено")
		return
	}
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
					s.log.WithError(err).Error("ошибка фонового обновления снимков")
				}
			}
		}
	}()
}

// RunOnce обходит все кампании. Ошибка одной кампании не останавливает обход.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return err
	}
	for _, c := range campaigns {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.refresher.RefreshCampaign(ctx, c.ID)
		if err != nil {
			s.log.WithError(err).WithField("campaign_id", c.ID).Warn("кампания не обновлена")
			continue
		}
		s.log.WithFields(logrus.Fields{"campaign_id": c.ID, "refreshed": res.Refreshed}).Debug("кампания обновлена")
	}
	return nil
}
