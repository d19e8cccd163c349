package module

import (
	"database/sql"
	"fmt"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"

	"campaign_go/models"
)

// AccountInitialization создаёт клиент Telegram для аккаунта с сессией в БД.
// Если у аккаунта есть активный прокси, соединение идёт через SOCKS5.
func AccountInitialization(acc models.Account, db *sql.DB, log *logrus.Entry) (*telegram.Client, error) {
	if log == nil {
		log = logrus.WithField("component", "telegram")
	}
	var storage session.Storage = &session.StorageMemory{}
	if db != nil && acc.ID > 0 {
		storage = &DBSessionStorage{DB: db, AccountID: acc.ID, Log: log}
	}

	opts := telegram.Options{SessionStorage: storage}
	if p := acc.Proxy; p != nil {
		addr := fmt.Sprintf("%s:%d", p.IP, p.Port)
		var auth *proxy.Auth
		if p.Login != "" || p.Password != "" {
			auth = &proxy.Auth{User: p.Login, Password: p.Password}
		}
		d, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("не удалось создать прокси-дайлер: %w", err)
		}
		dc, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("прокси-дайлер не поддерживает контекст")
		}
		opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
		log.WithFields(logrus.Fields{"phone": acc.Phone, "proxy": addr}).Debug("подключение через прокси")
	}
	return telegram.NewClient(acc.ApiID, acc.ApiHash, opts), nil
}
