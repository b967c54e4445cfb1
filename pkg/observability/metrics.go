package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics emits operational metrics to CloudWatch. A nil client turns
// every method into a no-op so local runs need no AWS credentials.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a new Metrics emitter
func NewMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordFeedGenerated records the latency and shape of one feed build
func (m *Metrics) RecordFeedGenerated(ctx context.Context, elapsed time.Duration, candidates int, degraded bool) {
	degradedVal := 0.0
	if degraded {
		degradedVal = 1.0
	}
	m.put(ctx,
		datum("FeedLatency", float64(elapsed.Milliseconds()), types.StandardUnitMilliseconds),
		datum("FeedCandidates", float64(candidates), types.StandardUnitCount),
		datum("FeedDegraded", degradedVal, types.StandardUnitCount),
	)
}

// RecordEdgeChange counts one edge state transition
func (m *Metrics) RecordEdgeChange(ctx context.Context, status string) {
	d := datum("EdgeChanges", 1, types.StandardUnitCount)
	d.Dimensions = []types.Dimension{
		{Name: aws.String("Status"), Value: aws.String(status)},
	}
	m.put(ctx, d)
}

// RecordGraphSize reports the number of edges held in memory
func (m *Metrics) RecordGraphSize(ctx context.Context, edges int) {
	m.put(ctx, datum("GraphEdges", float64(edges), types.StandardUnitCount))
}

func datum(name string, value float64, unit types.StandardUnit) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
}

// put delivers the data points, logging rather than failing the caller
func (m *Metrics) put(ctx context.Context, data ...types.MetricDatum) {
	if m.client == nil {
		return
	}
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("Failed to emit metrics", zap.Error(err))
	}
}
