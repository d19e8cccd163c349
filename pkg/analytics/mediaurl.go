package analytics

import (
	"net/url"
	"strings"
)

// cdnProviders сопоставляет домены CDN площадок с провайдером прокси изображений.
// Картинки с этих доменов нельзя грузить напрямую из браузера.
var cdnProviders = []struct {
	domain   string
	provider string
}{
	{"cdninstagram.com", "instagram"},
	{"fbcdn.net", "instagram"},
	{"tiktokcdn.com", "tiktok"},
	{"tiktokcdn-us.com", "tiktok"},
	{"muscdn.com", "tiktok"},
	{"ytimg.com", "youtube"},
	{"ggpht.com", "youtube"},
}

// ProxyImageURL переписывает ссылку на изображение CDN в путь локального image-proxy.
// Локальные пути и ссылки на прочие домены возвращаются без изменений.
func ProxyImageURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Hostname())
	for _, c := range cdnProviders {
		if strings.Contains(host, c.domain) {
			return "/api/v0/" + c.provider + "/image-proxy?url=" + url.QueryEscape(raw)
		}
	}
	return raw
}
