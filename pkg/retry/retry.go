package retry

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	maxRetries        = 6
	retryInitialDelay = time.Millisecond * 100
	// Задержки перед повторами: 100ms, 200ms, 400ms, 800ms, 1.6s, 3.2s, потом последняя ошибка
)

// Retry выполняет операцию с экспоненциальной задержкой между попытками.
// Возвращает nil при успехе, последнюю ошибку после исчерпания попыток или ошибку ctx при отмене
func Retry(ctx context.Context, operation func() error) error {
	return retry(ctx, maxRetries, retryInitialDelay, operation)
}

func retry(ctx context.Context, attempts int, delay time.Duration, operation func() error) error {
	for retryCounter := 0; ; retryCounter++ {
		err := operation()
		if err == nil {
			return nil
		}
		if retryCounter >= attempts {
			return err
		}
		log.Errorf("error during retry %d: %v", retryCounter, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay << retryCounter):
		}
	}
}
