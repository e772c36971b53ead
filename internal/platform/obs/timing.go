package obs

import (
	"context"
	"time"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/metrics"
)

// Time measures an outbound call. Use as:
//
//	defer obs.Time(ctx, "otm.FetchCandidates")(&err)
//
// The duration is logged at debug level (warn on error) with the request id
// from ctx and observed in the external call histogram.
func Time(ctx context.Context, name string) func(errp *error) {
	return timer(ctx, name, metrics.RecordExternalCall)
}

// TimeStore is Time for local storage (SQL, Badger); it observes the store
// operation histogram instead.
func TimeStore(ctx context.Context, name string) func(errp *error) {
	return timer(ctx, name, metrics.RecordStoreOp)
}

func timer(ctx context.Context, name string, record func(string, error, time.Duration)) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		var err error
		if errp != nil {
			err = *errp
		}
		record(name, err, dur)

		if err != nil {
			logging.Ctx(ctx).Warn().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Err(err).Msg("operation failed")
			return
		}
		logging.Ctx(ctx).Debug().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("operation done")
	}
}
