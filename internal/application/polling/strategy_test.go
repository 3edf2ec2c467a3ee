package polling

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func TestFixedIntervalStrategy(t *testing.T) {
	strategy := NewFixedIntervalStrategy(30 * time.Second)

	// 성공/실패와 무관하게 항상 같은 간격
	assert.Equal(t, 30*time.Second, strategy.NextInterval(true))
	assert.Equal(t, 30*time.Second, strategy.NextInterval(false))
	strategy.Reset()
	assert.Equal(t, 30*time.Second, strategy.NextInterval(false))
}

func TestExponentialBackoffStrategy(t *testing.T) {
	t.Run("실패가 반복되면 간격이 지수적으로 증가", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 2.0, newTestLogger())

		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 20*time.Second, strategy.NextInterval(false))
		assert.Equal(t, 40*time.Second, strategy.NextInterval(false))
	})

	t.Run("최대 간격을 넘지 않음", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(1*time.Minute, 5*time.Minute, 2.0, newTestLogger())

		var last time.Duration
		for i := 0; i < 10; i++ {
			last = strategy.NextInterval(false)
		}
		assert.Equal(t, 5*time.Minute, last)
	})

	t.Run("성공하면 기본 간격으로 복귀", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 2.0, newTestLogger())

		strategy.NextInterval(false)
		strategy.NextInterval(false)

		assert.Equal(t, 10*time.Second, strategy.NextInterval(true))
		// 복귀 후 첫 실패는 다시 1단계 백오프부터
		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
	})

	t.Run("배수가 1 이하이면 기본값 2.0 사용", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 5*time.Minute, 0.5, newTestLogger())

		strategy.NextInterval(false)
		assert.Equal(t, 20*time.Second, strategy.NextInterval(false))
	})
}

func TestPollingController_Start(t *testing.T) {
	t.Run("컨텍스트 취소 시 종료", func(t *testing.T) {
		controller := NewPollingController(NewFixedIntervalStrategy(10*time.Millisecond), newTestLogger())

		ctx, cancel := context.WithCancel(context.Background())

		executions := 0
		done := make(chan error, 1)
		go func() {
			done <- controller.Start(ctx, func(ctx context.Context) error {
				executions++
				if executions >= 3 {
					cancel()
				}
				return nil
			})
		}()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
			assert.GreaterOrEqual(t, executions, 3)
		case <-time.After(5 * time.Second):
			t.Fatal("polling did not stop after context cancellation")
		}
	})

	t.Run("작업 실패해도 폴링은 계속", func(t *testing.T) {
		controller := NewPollingController(NewFixedIntervalStrategy(10*time.Millisecond), newTestLogger())

		ctx, cancel := context.WithCancel(context.Background())

		executions := 0
		done := make(chan error, 1)
		go func() {
			done <- controller.Start(ctx, func(ctx context.Context) error {
				executions++
				if executions >= 2 {
					cancel()
				}
				return assert.AnError
			})
		}()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
			assert.GreaterOrEqual(t, executions, 2)
		case <-time.After(5 * time.Second):
			t.Fatal("polling did not continue after task failure")
		}
	})
}
