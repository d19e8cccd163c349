package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campaign_go/models"
)

// postColumns задаёт порядок колонок, который ожидает scanPost
const postColumns = `id, campaign_id, platform, post_url, influencer_username, influencer_full_name,
	avatar_url, thumbnail_url, media_type, views_count, plays_count, likes_count, comments_count,
	shares_count, followers_count, collaboration_price, post_created_at, post_result_obj, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPost читает строку campaign_post. Испорченный post_result_obj не ломает выборку:
// пост остаётся без снимка, а проблема пишется в лог.
func (db *DB) scanPost(row rowScanner) (models.RawPost, error) {
	var p models.RawPost
	var postCreatedAt sql.NullTime
	var result []byte
	err := row.Scan(
		&p.ID,
		&p.CampaignID,
		&p.Platform,
		&p.PostURL,
		&p.InfluencerUsername,
		&p.InfluencerFullName,
		&p.AvatarURL,
		&p.ThumbnailURL,
		&p.MediaType,
		&p.ViewsCount,
		&p.PlaysCount,
		&p.LikesCount,
		&p.CommentsCount,
		&p.SharesCount,
		&p.FollowersCount,
		&p.CollaborationPrice,
		&postCreatedAt,
		&result,
		&p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	p.PostCreatedAt = nullTimePtr(postCreatedAt)
	if len(result) > 0 {
		var pr models.PostResult
		if err := json.Unmarshal(result, &pr); err != nil {
			db.logger().WithError(err).WithField("post_id", p.ID).Warn("некорректный post_result_obj, снимок пропущен")
		} else {
			p.PostResult = &pr
		}
	}
	return p, nil
}

func (db *DB) queryPosts(ctx context.Context, query string, args ...any) ([]models.RawPost, error) {
	rows, err := db.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.RawPost{}
	for rows.Next() {
		p, err := db.scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// encodePostResult сериализует снимок для колонки JSONB; отсутствующий снимок пишется как NULL.
// Строка вместо []byte: lib/pq отправляет []byte как bytea.
func encodePostResult(pr *models.PostResult) (sql.NullString, error) {
	if pr == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(pr)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// CreatePost сохраняет пост кампании. Для несуществующей кампании возвращает ErrCampaignNotFound.
func (db *DB) CreatePost(ctx context.Context, p models.RawPost) (*models.RawPost, error) {
	result, err := encodePostResult(p.PostResult)
	if err != nil {
		return nil, fmt.Errorf("сериализация снимка: %w", err)
	}
	query := `
		INSERT INTO campaign_post (
			campaign_id, platform, post_url, influencer_username, influencer_full_name,
			avatar_url, thumbnail_url, media_type, views_count, plays_count, likes_count,
			comments_count, shares_count, followers_count, collaboration_price, post_created_at, post_result_obj
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`
	err = db.Conn.QueryRowContext(ctx, query,
		p.CampaignID,
		p.Platform,
		p.PostURL,
		p.InfluencerUsername,
		p.InfluencerFullName,
		p.AvatarURL,
		p.ThumbnailURL,
		p.MediaType,
		p.ViewsCount,
		p.PlaysCount,
		p.LikesCount,
		p.CommentsCount,
		p.SharesCount,
		p.FollowersCount,
		p.CollaborationPrice,
		p.PostCreatedAt,
		result,
	).Scan(&p.ID, &p.CreatedAt)
	if isForeignKeyViolation(err) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		db.logger().WithError(err).Error("сохранение поста")
		return nil, err
	}
	return &p, nil
}

// GetPostsByCampaign возвращает посты кампании в порядке добавления
func (db *DB) GetPostsByCampaign(ctx context.Context, campaignID int) ([]models.RawPost, error) {
	query := `SELECT ` + postColumns + ` FROM campaign_post WHERE campaign_id = $1 ORDER BY created_at, id`
	return db.queryPosts(ctx, query, campaignID)
}

// GetTelegramPosts возвращает посты кампании из Telegram-каналов, снимки которых можно обновить
func (db *DB) GetTelegramPosts(ctx context.Context, campaignID int) ([]models.RawPost, error) {
	query := `SELECT ` + postColumns + ` FROM campaign_post WHERE campaign_id = $1 AND platform = 'telegram' AND post_url <> '' ORDER BY id`
	return db.queryPosts(ctx, query, campaignID)
}

// GetPostByID загружает пост; для неизвестного ID возвращает ErrPostNotFound
func (db *DB) GetPostByID(ctx context.Context, id int) (*models.RawPost, error) {
	row := db.Conn.QueryRowContext(ctx, `SELECT `+postColumns+` FROM campaign_post WHERE id = $1`, id)
	p, err := db.scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePostSnapshot записывает свежий снимок поста и репосты площадки.
// Пустая дата публикации заполняется временем из снимка, ручная дата не перезаписывается.
func (db *DB) UpdatePostSnapshot(ctx context.Context, postID int, pr models.PostResult, shares int64, postedAt *time.Time) error {
	result, err := encodePostResult(&pr)
	if err != nil {
		return fmt.Errorf("сериализация снимка: %w", err)
	}
	res, err := db.Conn.ExecContext(ctx, `
		UPDATE campaign_post
		SET post_result_obj = $1,
		    shares_count = $2,
		    post_created_at = COALESCE(post_created_at, $3),
		    snapshot_updated_at = NOW()
		WHERE id = $4
	`, result, shares, postedAt, postID)
	if err != nil {
		db.logger().WithError(err).WithField("post_id", postID).Error("обновление снимка поста")
		return err
	}
	return requireAffected(res, ErrPostNotFound)
}

// DeletePost удаляет пост кампании
func (db *DB) DeletePost(ctx context.Context, id int) error {
	res, err := db.Conn.ExecContext(ctx, `DELETE FROM campaign_post WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrPostNotFound)
}

// requireAffected возвращает notFound, если запрос не затронул ни одной строки
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
