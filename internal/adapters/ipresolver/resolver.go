package ipresolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ports"
)

// Проверка реализации интерфейса IPResolver на этапе компиляции.
var _ ports.IPResolver = (*HTTPResolver)(nil)

// Ответ сервиса — это один IP-адрес; читаем с запасом, но ограниченно,
// чтобы сломанный сервис не заставил нас вычитывать гигабайты.
const maxResponseBytes = 1024

// HTTPResolver получает внешний IP хоста у HTTP-сервиса типа api.ipify.org.
type HTTPResolver struct {
	url    string
	client *http.Client
}

// New создаёт резолвер для указанного URL.
// timeout ограничивает один запрос целиком (connect + чтение ответа).
func New(url string, timeout time.Duration) *HTTPResolver {
	return &HTTPResolver{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve возвращает сырой текст ответа сервиса (без разбора).
func (r *HTTPResolver) Resolve(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", domain.ErrFetchFailed, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %s from %s", domain.ErrFetchFailed, resp.Status, r.url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", domain.ErrFetchFailed, err)
	}

	return string(body), nil
}
