package common

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay выбирает паузу в секундах из диапазона [min, max]
func RandomDelay(delayRange [2]int) time.Duration {
	lo, hi := delayRange[0], delayRange[1]
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	return time.Duration(lo+rand.Intn(hi-lo+1)) * time.Second
}

// WaitWithCancellation ждёт случайную паузу из диапазона и прерывается при отмене контекста.
// Возвращает ошибку контекста, если ожидание не завершилось.
func WaitWithCancellation(ctx context.Context, delayRange [2]int) error {
	delay := RandomDelay(delayRange)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
