package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campaign_go/models"
)

// CreateCampaign сохраняет новую кампанию и возвращает её с ID и датой создания
func (db *DB) CreateCampaign(ctx context.Context, c models.Campaign) (*models.Campaign, error) {
	query := `
		INSERT INTO campaigns (name, brand, budget, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := db.Conn.QueryRowContext(ctx, query, c.Name, c.Brand, c.Budget, c.StartDate, c.EndDate).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		db.logger().WithError(err).Error("создание кампании")
		return nil, err
	}
	db.logger().WithField("campaign_id", c.ID).Info("кампания создана")
	return &c, nil
}

// GetCampaignByID загружает кампанию; для неизвестного ID возвращает ErrCampaignNotFound
func (db *DB) GetCampaignByID(ctx context.Context, id int) (*models.Campaign, error) {
	var c models.Campaign
	var start, end sql.NullTime
	query := `
		SELECT id, name, brand, budget, start_date, end_date, created_at
		FROM campaigns
		WHERE id = $1
	`
	err := db.Conn.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Brand, &c.Budget, &start, &end, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	c.StartDate = nullTimePtr(start)
	c.EndDate = nullTimePtr(end)
	return &c, nil
}

// ListCampaigns возвращает кампании, новые первыми
func (db *DB) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	rows, err := db.Conn.QueryContext(ctx, `
		SELECT id, name, brand, budget, start_date, end_date, created_at
		FROM campaigns
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		var start, end sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Brand, &c.Budget, &start, &end, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.StartDate = nullTimePtr(start)
		c.EndDate = nullTimePtr(end)
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
