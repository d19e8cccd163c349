package telegram

import (
	"errors"
	"testing"

	"github.com/gotd/td/tg"
)

func testMessage() *tg.Message {
	msg := &tg.Message{ID: 42, Date: 1714500000}
	msg.SetViews(1500)
	msg.SetForwards(12)
	msg.SetReplies(tg.MessageReplies{Replies: 7})
	msg.Reactions = tg.MessageReactions{Results: []tg.ReactionCount{
		{Reaction: &tg.ReactionEmoji{Emoticon: "❤️"}, Count: 30},
		{Reaction: &tg.ReactionEmoji{Emoticon: "🔥"}, Count: 5},
	}}
	return msg
}

// TestBuildStats проверяет перевод сообщения канала в плоский снимок.
func TestBuildStats(t *testing.T) {
	ch := &tg.Channel{ID: 1, Title: "Новости", Username: "news", Broadcast: true}
	stats := BuildStats(ch, testMessage(), 2000)

	snap := stats.Result.Data
	if snap == nil {
		t.Fatalf("снимок не заполнен")
	}
	if *snap.VideoViewCount != 1500 {
		t.Fatalf("ожидалось 1500 просмотров, получено %d", *snap.VideoViewCount)
	}
	if *snap.LikeCount != 35 {
		t.Fatalf("ожидалось 35 реакций, получено %d", *snap.LikeCount)
	}
	if *snap.CommentCount != 7 {
		t.Fatalf("ожидалось 7 комментариев, получено %d", *snap.CommentCount)
	}
	if *snap.IsVideo {
		t.Fatalf("пост без вложения не может быть видео")
	}
	if *snap.Owner.FollowerCount != 2000 || *snap.Owner.Username != "news" || *snap.Owner.FullName != "Новости" {
		t.Fatalf("неверный владелец: %+v", snap.Owner)
	}
	if stats.Forwards != 12 {
		t.Fatalf("ожидалось 12 репостов, получено %d", stats.Forwards)
	}
	if stats.PostedAt == nil || stats.PostedAt.Unix() != 1714500000 {
		t.Fatalf("неверная дата публикации: %v", stats.PostedAt)
	}
	if *snap.TakenAtTimestamp != 1714500000 {
		t.Fatalf("неверный taken_at_timestamp: %d", *snap.TakenAtTimestamp)
	}
}

func TestBuildStats_Video(t *testing.T) {
	msg := testMessage()
	msg.Media = &tg.MessageMediaDocument{Document: &tg.Document{
		Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeVideo{W: 720, H: 1280}},
	}}
	stats := BuildStats(&tg.Channel{}, msg, 0)
	if !*stats.Result.Data.IsVideo {
		t.Fatalf("ожидалось видео")
	}
	if stats.Result.Data.Owner.FollowerCount != nil {
		t.Fatalf("без данных о подписчиках follower_count не заполняется")
	}
}

// TestBuildStats_NoCounters проверяет сообщение без просмотров, ответов и даты.
func TestBuildStats_NoCounters(t *testing.T) {
	stats := BuildStats(nil, &tg.Message{ID: 1}, 0)
	snap := stats.Result.Data
	if snap.VideoViewCount != nil {
		t.Fatalf("просмотры не должны заполняться")
	}
	if *snap.LikeCount != 0 || *snap.CommentCount != 0 {
		t.Fatalf("ожидались нулевые реакции и комментарии")
	}
	if stats.PostedAt != nil || snap.TakenAtTimestamp != nil {
		t.Fatalf("дата публикации не должна заполняться")
	}
}

func TestFindMessage(t *testing.T) {
	msgs := []tg.MessageClass{&tg.MessageEmpty{ID: 5}, &tg.Message{ID: 6}}
	msg, err := findMessage(msgs, 6)
	if err != nil || msg.ID != 6 {
		t.Fatalf("ожидалось сообщение 6, получено %v, %v", msg, err)
	}
	if _, err := findMessage(msgs, 5); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("удалённое сообщение должно давать ErrMessageNotFound, получено %v", err)
	}
}

func TestParticipantsCount(t *testing.T) {
	fc := &tg.ChannelFull{}
	fc.SetParticipantsCount(900)
	if n := participantsCount(&tg.Channel{}, &tg.MessagesChatFull{FullChat: fc}); n != 900 {
		t.Fatalf("ожидалось 900, получено %d", n)
	}
	ch := &tg.Channel{}
	ch.SetParticipantsCount(300)
	if n := participantsCount(ch, nil); n != 300 {
		t.Fatalf("ожидалось 300, получено %d", n)
	}
}
