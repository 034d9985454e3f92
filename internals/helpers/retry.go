// file: internals/helpers/retry.go
package helper

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WithReadRetry menjalankan operasi BACA yang idempoten dengan retry terbatas.
// Operasi tulis tidak boleh lewat sini — retry buta pada batch non-idempoten
// bisa bikin double-assign; keputusan retry untuk mutasi ada di caller.
func WithReadRetry(ctx context.Context, fn func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(&backoff.ExponentialBackOff{
		InitialInterval:     50 * time.Millisecond,
		RandomizationFactor: 0.3,
		Multiplier:          2,
		MaxInterval:         500 * time.Millisecond,
		MaxElapsedTime:      2 * time.Second,
		Clock:               backoff.SystemClock,
		Stop:                backoff.Stop,
	}, 3), ctx)

	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if isTransientStoreErr(err) {
			return err // retryable
		}
		return backoff.Permanent(err)
	}, bo)
}

func isTransientStoreErr(err error) bool {
	if err == nil {
		return false
	}
	// error fungsional bukan transient
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection refused", "connection reset", "timeout", "too many clients", "broken pipe"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
