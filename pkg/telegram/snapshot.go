package telegram

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gotd/td/tg"
	"github.com/sirupsen/logrus"

	"campaign_go/models"
	"campaign_go/pkg/logging"
	"campaign_go/pkg/telegram/accountmutex"
	module "campaign_go/pkg/telegram/module"
)

var ErrMessageNotFound = errors.New("сообщение не найдено")

// fetchTimeout ограничивает одну Telegram-сессию
const fetchTimeout = 60 * time.Second

// PostStats: свежие метрики поста канала, прочитанные через аккаунт
type PostStats struct {
	Result   models.PostResult
	Forwards int64
	PostedAt *time.Time
}

// Fetcher читает метрики постов Telegram-каналов через авторизованные аккаунты
type Fetcher struct {
	db  *sql.DB
	log *logrus.Entry
}

func NewFetcher(db *sql.DB, logger logging.Logger) *Fetcher {
	return &Fetcher{db: db, log: logging.Component(logger, "telegram")}
}

// FetchSnapshot открывает сессию аккаунта, находит пост по ссылке и собирает снимок
// в плоском формате контент-API. Аккаунт на время сессии блокируется.
func (f *Fetcher) FetchSnapshot(ctx context.Context, acc models.Account, postURL string) (*PostStats, error) {
	username, msgID, err := module.ParsePostURL(postURL)
	if err != nil {
		return nil, err
	}

	if err := accountmutex.LockAccount(acc.ID); err != nil {
		return nil, err
	}
	defer accountmutex.UnlockAccount(acc.ID)

	client, err := module.AccountInitialization(acc, f.db, f.log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	log := f.log.WithFields(logrus.Fields{"account_id": acc.ID, "post_url": postURL})
	var stats PostStats
	err = client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(client)

		resolved, err := api.ContactsResolveUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("не удалось распознать канал: %w", err)
		}
		ch, err := module.FindChannel(resolved.GetChats())
		if err != nil {
			return err
		}
		input := &tg.InputChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}

		res, err := api.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{
			Channel: input,
			ID:      []tg.InputMessageClass{&tg.InputMessageID{ID: msgID}},
		})
		if err != nil {
			return fmt.Errorf("не удалось получить сообщение: %w", err)
		}
		msg, err := findMessage(messagesOf(res), msgID)
		if err != nil {
			return err
		}

		full, err := api.ChannelsGetFullChannel(ctx, input)
		if err != nil {
			return fmt.Errorf("не удалось получить полную информацию о канале: %w", err)
		}

		stats = BuildStats(ch, msg, participantsCount(ch, full))
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("снимок поста не получен")
		return nil, err
	}
	log.Debug("снимок поста получен")
	return &stats, nil
}

func messagesOf(res tg.MessagesMessagesClass) []tg.MessageClass {
	switch m := res.(type) {
	case *tg.MessagesChannelMessages:
		return m.Messages
	case *tg.MessagesMessages:
		return m.Messages
	case *tg.MessagesMessagesSlice:
		return m.Messages
	default:
		return nil
	}
}

// findMessage возвращает сообщение с указанным ID; удалённые сообщения приходят как MessageEmpty
func findMessage(msgs []tg.MessageClass, msgID int) (*tg.Message, error) {
	for _, m := range msgs {
		if msg, ok := m.(*tg.Message); ok && msg.ID == msgID {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrMessageNotFound, msgID)
}

// participantsCount берёт число подписчиков из полной информации о канале,
// при её отсутствии из самого канала
func participantsCount(ch *tg.Channel, full *tg.MessagesChatFull) int64 {
	if full != nil {
		if fc, ok := full.GetFullChat().(*tg.ChannelFull); ok {
			if n, ok := fc.GetParticipantsCount(); ok {
				return int64(n)
			}
		}
	}
	if n, ok := ch.GetParticipantsCount(); ok {
		return int64(n)
	}
	return 0
}

// BuildStats переводит сообщение канала в снимок плоского формата:
// просмотры, сумма реакций, ответы и подписчики канала
func BuildStats(ch *tg.Channel, msg *tg.Message, followers int64) PostStats {
	snap := &models.PostSnapshot{}

	if views, ok := msg.GetViews(); ok {
		v := int64(views)
		snap.VideoViewCount = &v
	}

	var likes int64
	for _, r := range msg.Reactions.Results {
		likes += int64(r.Count)
	}
	snap.LikeCount = &likes

	var comments int64
	if replies, ok := msg.GetReplies(); ok {
		comments = int64(replies.Replies)
	}
	snap.CommentCount = &comments

	video := isVideo(msg)
	snap.IsVideo = &video

	owner := &models.SnapshotOwner{}
	if ch != nil {
		username := ch.Username
		title := ch.Title
		verified := ch.Verified
		owner.Username = &username
		owner.FullName = &title
		owner.IsVerified = &verified
	}
	if followers > 0 {
		owner.FollowerCount = &followers
	}
	snap.Owner = owner

	stats := PostStats{Result: models.PostResult{Data: snap}}
	if forwards, ok := msg.GetForwards(); ok {
		stats.Forwards = int64(forwards)
	}
	if msg.Date > 0 {
		taken := int64(msg.Date)
		snap.TakenAtTimestamp = &taken
		posted := time.Unix(taken, 0).UTC()
		stats.PostedAt = &posted
	}
	return stats
}

// isVideo сообщает, что вложение сообщения — видео или кружок
func isVideo(msg *tg.Message) bool {
	media, ok := msg.Media.(*tg.MessageMediaDocument)
	if !ok {
		return false
	}
	doc, ok := media.Document.(*tg.Document)
	if !ok {
		return false
	}
	for _, attr := range doc.Attributes {
		if _, ok := attr.(*tg.DocumentAttributeVideo); ok {
			return true
		}
	}
	return false
}
