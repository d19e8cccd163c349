package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"campaign_go/models"
)

// SaveToFile сохраняет аналитику кампании в JSON-файл для выгрузки отчёта
func SaveToFile(data *models.AnalyticsData, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("не удалось создать каталог отчёта: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать отчёт: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("не удалось записать отчёт: %w", err)
	}
	return nil
}
