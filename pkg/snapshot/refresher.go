package snapshot

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"campaign_go/internal/common"
	"campaign_go/models"
	"campaign_go/pkg/logging"
	"campaign_go/pkg/monitoring"
	"campaign_go/pkg/redis"
	"campaign_go/pkg/storage"
	"campaign_go/pkg/telegram"
)

// Store: операции хранилища, нужные для обновления снимков
type Store interface {
	GetTelegramPosts(ctx context.Context, campaignID int) ([]models.RawPost, error)
	GetAuthorizedAccounts(ctx context.Context) ([]models.Account, error)
	UpdatePostSnapshot(ctx context.Context, postID int, pr models.PostResult, shares int64, postedAt *time.Time) error
}

// Fetcher читает свежие метрики поста через аккаунт
type Fetcher interface {
	FetchSnapshot(ctx context.Context, acc models.Account, postURL string) (*telegram.PostStats, error)
}

// RefreshResult: итог обновления снимков одной кампании
type RefreshResult struct {
	Total     int `json:"total"`
	Refreshed int `json:"refreshed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type Options struct {
	TTL   time.Duration // Минимальный интервал между обновлениями одного поста
	Delay [2]int        // Пауза между постами в секундах
}

type Refresher struct {
	store    Store
	fetcher  Fetcher
	throttle redis.Throttle
	metrics  *monitoring.Metrics
	opts     Options
	wait     func(ctx context.Context, delayRange [2]int) error
	log      *logrus.Entry
}

func NewRefresher(store Store, fetcher Fetcher, throttle redis.Throttle, metrics *monitoring.Metrics, opts Options, logger logging.Logger) *Refresher {
	if throttle == nil {
		throttle = redis.NewMemoryThrottle()
	}
	return &Refresher{
		store:    store,
		fetcher:  fetcher,
		throttle: throttle,
		metrics:  metrics,
		opts:     opts,
		wait:     common.WaitWithCancellation,
		log:      logging.Component(logger, "snapshot"),
	}
}

// RefreshCampaign обновляет снимки Telegram-постов кампании по одному, с паузой между постами.
// Посты, обновлённые позже чем TTL назад, пропускаются. Ошибка одного поста не прерывает обход.
func (r *Refresher) RefreshCampaign(ctx context.Context, campaignID int) (RefreshResult, error) {
	var result RefreshResult
	log := r.log.WithField("campaign_id", campaignID)

	posts, err := r.store.GetTelegramPosts(ctx, campaignID)
	if err != nil {
		return result, err
	}
	result.Total = len(posts)

	var accounts []models.Account
	fetched := 0
	for _, post := range posts {
		key := strconv.Itoa(post.ID)
		acquired, err := r.throttle.Acquire(ctx, key, r.opts.TTL)
		if err != nil {
			// Без троттлинга пост всё равно обновляем
			log.WithError(err).WithField("post_id", post.ID).Warn("троттлинг недоступен")
			acquired = true
		}
		if !acquired {
			result.Skipped++
			r.metrics.ObserveSnapshotRefresh(monitoring.RefreshSkipped)
			continue
		}

		if accounts == nil {
			accounts, err = r.store.GetAuthorizedAccounts(ctx)
			if err == nil && len(accounts) == 0 {
				err = storage.ErrNoAccount
			}
			if err != nil {
				r.release(key)
				return result, err
			}
		}

		if fetched > 0 {
			if err := r.wait(ctx, r.opts.Delay); err != nil {
				r.release(key)
				return result, err
			}
		}
		acc := accounts[fetched%len(accounts)]
		fetched++

		if err := r.refreshPost(ctx, acc, post); err != nil {
			if ctx.Err() != nil {
				r.release(key)
				return result, ctx.Err()
			}
			log.WithError(err).WithFields(logrus.Fields{"post_id": post.ID, "account_id": acc.ID}).Warn("снимок поста не обновлён")
			result.Failed++
			r.metrics.ObserveSnapshotRefresh(monitoring.RefreshFailed)
			r.release(key)
			continue
		}
		result.Refreshed++
		r.metrics.ObserveSnapshotRefresh(monitoring.RefreshOK)
	}

	log.WithFields(logrus.Fields{
		"total":     result.Total,
		"refreshed": result.Refreshed,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("обновление снимков завершено")
	return result, nil
}

func (r *Refresher) refreshPost(ctx context.Context, acc models.Account, post models.RawPost) error {
	stats, err := r.fetcher.FetchSnapshot(ctx, acc, post.PostURL)
	if err != nil {
		return err
	}
	if stats == nil {
		return errors.New("пустой ответ")
	}
	return r.store.UpdatePostSnapshot(ctx, post.ID, stats.Result, stats.Forwards, stats.PostedAt)
}

// release снимает троттлинг, чтобы неудачный пост можно было повторить сразу
func (r *Refresher) release(key string) {
	if err := r.throttle.Release(context.Background(), key); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("не удалось снять троттлинг")
	}
}
