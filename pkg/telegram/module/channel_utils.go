package module

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gotd/td/tg"
)

var (
	ErrInvalidPostURL  = errors.New("некорректная ссылка на пост")
	ErrChannelNotFound = errors.New("вещательный канал не найден")
)

var postURLPrefixes = []string{"https://t.me/", "http://t.me/", "t.me/"}

// ParsePostURL разбирает ссылку вида https://t.me/<channel>/<id>
func ParsePostURL(postURL string) (string, int, error) {
	trimmed := strings.TrimSpace(postURL)
	found := false
	for _, prefix := range postURLPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			trimmed = strings.TrimPrefix(trimmed, prefix)
			found = true
			break
		}
	}
	if !found {
		return "", 0, ErrInvalidPostURL
	}
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	parts := strings.Split(strings.TrimSuffix(trimmed, "/"), "/")
	// Ссылки на приватные каналы t.me/c/<id>/<msg> прочитать по username нельзя
	if len(parts) != 2 || parts[0] == "" || parts[0] == "c" {
		return "", 0, ErrInvalidPostURL
	}
	msgID, err := strconv.Atoi(parts[1])
	if err != nil || msgID <= 0 {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidPostURL, postURL)
	}
	return parts[0], msgID, nil
}

// FindChannel находит вещательный канал в списке чатов
func FindChannel(chats []tg.ChatClass) (*tg.Channel, error) {
	for _, peer := range chats {
		if ch, ok := peer.(*tg.Channel); ok {
			// Мегагруппы (обсуждения) пропускаем
			if ch.Megagroup {
				continue
			}
			if ch.Broadcast {
				return ch, nil
			}
		}
	}
	return nil, ErrChannelNotFound
}
