package storage

import (
	"context"
	"database/sql"

	"campaign_go/models"
)

// GetAuthorizedAccounts возвращает авторизованные Telegram-аккаунты вместе с прокси.
// Через них сервис читает метрики постов Telegram-каналов.
func (db *DB) GetAuthorizedAccounts(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT a.id, a.phone, a.api_id, a.api_hash, a.is_authorized, a.proxy_id,
		       p.id, p.ip, p.port, p.login, p.password, p.is_active
		FROM accounts a
		LEFT JOIN proxy p ON a.proxy_id = p.id
		WHERE a.is_authorized = true
		ORDER BY a.id
	`
	rows, err := db.Conn.QueryContext(ctx, query)
	if err != nil {
		db.logger().WithError(err).Error("получение авторизованных аккаунтов")
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		var (
			accountProxyID sql.NullInt64
			proxyID        sql.NullInt64
			proxyIP        sql.NullString
			proxyPort      sql.NullInt64
			proxyLogin     sql.NullString
			proxyPassword  sql.NullString
			proxyIsActive  sql.NullBool
		)
		if err := rows.Scan(
			&account.ID,
			&account.Phone,
			&account.ApiID,
			&account.ApiHash,
			&account.IsAuthorized,
			&accountProxyID,
			&proxyID,
			&proxyIP,
			&proxyPort,
			&proxyLogin,
			&proxyPassword,
			&proxyIsActive,
		); err != nil {
			// Пропускаем проблемные записи, остальные аккаунты остаются рабочими
			db.logger().WithError(err).Warn("не удалось прочитать аккаунт")
			continue
		}

		if accountProxyID.Valid {
			id := int(accountProxyID.Int64)
			account.ProxyID = &id
		}
		// Неактивный прокси не используем, аккаунт подключится напрямую
		if proxyID.Valid && proxyIsActive.Bool {
			account.Proxy = &models.Proxy{
				ID:       int(proxyID.Int64),
				IP:       proxyIP.String,
				Port:     int(proxyPort.Int64),
				Login:    proxyLogin.String,
				Password: proxyPassword.String,
				IsActive: true,
			}
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	db.logger().WithField("count", len(accounts)).Debug("найдены авторизованные аккаунты")
	return accounts, nil
}
