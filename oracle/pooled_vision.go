package oracle

import (
	"context"
	"time"

	"ga4oracle/oracle/pool"
	"ga4oracle/vision"
)

// pooledVisionService bounds concurrent vision calls through the
// vision-batch pool and records call latency, without the gating
// engine needing to know either concern exists.
type pooledVisionService struct {
	inner   vision.Service
	pool    *pool.Pool
	metrics *Metrics
}

func newPooledVisionService(inner vision.Service, p *pool.Pool, metrics *Metrics) vision.Service {
	if inner == nil {
		return nil
	}
	return &pooledVisionService{inner: inner, pool: p, metrics: metrics}
}

func (v *pooledVisionService) Analyze(ctx context.Context, image []byte, prompt string) (string, error) {
	var result string
	err := v.pool.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		r, err := v.inner.Analyze(ctx, image, prompt)
		if v.metrics != nil {
			v.metrics.VisionLatency.Observe(time.Since(start).Seconds())
		}
		result = r
		return err
	})
	return result, err
}
