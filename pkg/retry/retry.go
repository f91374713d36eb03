package retry

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	maxRetries        = 6
	retryMultiplier   = 2
	retryInitialDelay = time.Millisecond * 100
	// При maxRetries = 6, retryMultiplier = 2, retryInitialDelay = 100ms:
	// 0-ая попытка: сразу
	// 1-ая попытка: через 100ms
	// 2-ая попытка: через 200ms
	// 3-я попытка: через 400ms
	// 4-ая попытка: через 800ms
	// 5-ая попытка: через 1600ms
	// 6-ая попытка: через 3200ms, потом завершение
)

// Retry выполняет операцию с экспоненциальной задержкой между попытками.
// Возвращает nil, если операция успешна, или последнюю ошибку, если все попытки завершились неудачей.
// Ожидание прерывается отменой контекста.
func Retry(ctx context.Context, operation func() error) error {
	return retry(ctx, maxRetries, retryInitialDelay, operation)
}

func retry(ctx context.Context, attempts int, initialDelay time.Duration, operation func() error) error {
	delay := initialDelay
	for retryCounter := 0; ; retryCounter++ {
		err := operation()
		if err == nil {
			return nil
		}
		if retryCounter >= attempts {
			return err
		}
		log.Errorf("error during retry %d: %v", retryCounter, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		delay *= retryMultiplier
	}
}
