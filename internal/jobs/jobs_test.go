package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

type reloaderFunc func(ctx context.Context) error

func (f reloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

func TestCatalogRefresh(t *testing.T) {
	calls := 0
	job := CatalogRefresh(reloaderFunc(func(ctx context.Context) error {
		calls++
		return nil
	}), 5*time.Minute)

	assert.Equal(t, JobTypeCatalogRefresh, job.Type)
	assert.Equal(t, 5*time.Minute, job.Interval)
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestPurgeState(t *testing.T) {
	prev := telemetry.Business
	telemetry.Business = telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())
	t.Cleanup(func() { telemetry.Business = prev })

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	purger := state.NewMockPurger(ctrl)

	gomock.InOrder(
		purger.EXPECT().Purge(gomock.Any(), now).Return(int64(3), nil),
		purger.EXPECT().Purge(gomock.Any(), now).Return(int64(0), errors.New("database is locked")),
	)

	job := PurgeState(purger, time.Hour, func() time.Time { return now })
	assert.Equal(t, JobTypePurgeState, job.Type)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, float64(3), testutil.ToFloat64(telemetry.Business.StatePurged))

	err := job.Run(context.Background())
	assert.ErrorContains(t, err, "database is locked")
	assert.Equal(t, float64(3), testutil.ToFloat64(telemetry.Business.StatePurged))
}
