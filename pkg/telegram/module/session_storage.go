package module

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gotd/td/session"
	"github.com/sirupsen/logrus"
)

// DBSessionStorage хранит и загружает сессии Telegram из таблицы account_session.
type DBSessionStorage struct {
	DB        *sql.DB
	AccountID int
	Log       *logrus.Entry
}

func (s *DBSessionStorage) logger() *logrus.Entry {
	if s.Log == nil {
		return logrus.WithField("component", "session")
	}
	return s.Log
}

// LoadSession загружает текст сессии из БД.
func (s *DBSessionStorage) LoadSession(ctx context.Context) ([]byte, error) {
	if s == nil || s.DB == nil {
		return nil, session.ErrNotFound
	}

	var data string
	// На аккаунт хранится не более одной записи
	err := s.DB.QueryRowContext(ctx, "SELECT data_json FROM account_session WHERE account = $1", s.AccountID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		s.logger().WithError(err).WithField("account_id", s.AccountID).Error("ошибка чтения сессии")
		return nil, err
	}
	return []byte(data), nil
}

// StoreSession сохраняет текст сессии в БД.
func (s *DBSessionStorage) StoreSession(ctx context.Context, data []byte) error {
	if s == nil || s.DB == nil {
		return session.ErrNotFound
	}
	_, err := s.DB.ExecContext(
		ctx,
		"INSERT INTO account_session (account, data_json) VALUES ($1, $2) "+
			"ON CONFLICT (account) DO UPDATE SET data_json = EXCLUDED.data_json, date_time = NOW()",
		s.AccountID,
		string(data),
	)
	if err != nil {
		s.logger().WithError(err).WithField("account_id", s.AccountID).Error("ошибка сохранения сессии")
		return err
	}
	return nil
}
