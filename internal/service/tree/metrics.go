package tree

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "wikitree/tree"

var (
	// treeQueryDuration tracks tree query latency
	treeQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wikitree_tree_query_duration_seconds",
		Help:    "Tree query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"result"})

	// folderMutations counts folder mutations by operation and outcome
	folderMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikitree_folder_mutations_total",
		Help: "Total folder mutations by operation and result",
	}, []string{"operation", "result"})

	// nodesRemoved counts rows removed by folder deletes
	nodesRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikitree_nodes_removed_total",
		Help: "Total nodes removed by folder deletes, by type",
	}, []string{"type"})
)

func startSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

// endSpan records err on the span (if any) and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func observeQuery(start time.Time, err error) {
	treeQueryDuration.WithLabelValues(resultLabel(err)).Observe(time.Since(start).Seconds())
}

func countMutation(operation string, err error) {
	folderMutations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
