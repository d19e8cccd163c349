package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"campaign_go/pkg/logging"
)

//go:embed schema.sql
var schemaSQL string

// Ошибки хранилища, которые обработчики переводят в HTTP-статусы
var (
	ErrCampaignNotFound = errors.New("кампания не найдена")
	ErrPostNotFound     = errors.New("пост не найден")
	ErrNoAccount        = errors.New("нет авторизованных аккаунтов")
)

// foreignKeyViolation: код ошибки Postgres при нарушении внешнего ключа
const foreignKeyViolation = "23503"

type DB struct {
	Conn *sql.DB
	log  *logrus.Entry
}

func NewDB(conn *sql.DB, logger logging.Logger) *DB {
	return &DB{Conn: conn, log: logging.Component(logger, "db")}
}

// logger возвращает логгер хранилища; DB, собранный литералом в тестах, пишет в стандартный логгер
func (db *DB) logger() *logrus.Entry {
	if db.log == nil {
		db.log = logging.Component(nil, "db")
	}
	return db.log
}

// EnsureSchema создаёт недостающие таблицы и индексы
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("применение схемы: %w", err)
	}
	return nil
}

// isForeignKeyViolation сообщает, что запись ссылается на несуществующую строку
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
