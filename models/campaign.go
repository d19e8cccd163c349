package models

import "time"

// Campaign описывает рекламную кампанию, к которой привязываются посты инфлюенсеров.
type Campaign struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Brand     string     `json:"brand"`
	Budget    float64    `json:"budget"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}
