package workflows

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/apexforge/apexforge/internal/workflows"

// Metrics for the APEX pipeline
var (
	pipelineCounter   metric.Int64Counter
	phaseDuration     metric.Float64Histogram
	phaseErrorCounter metric.Int64Counter
)

// initMetrics initializes OpenTelemetry metrics for the pipeline.
// This is called once during package initialization.
func initMetrics() {
	meter := otel.Meter(instrumentationName)

	var err error

	pipelineCounter, err = meter.Int64Counter(
		"apexforge.pipeline.executions",
		metric.WithDescription("Total number of finished pipeline executions by status"),
		metric.WithUnit("{execution}"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create pipeline counter: %v", err))
	}

	phaseDuration, err = meter.Float64Histogram(
		"apexforge.pipeline.phase.duration",
		metric.WithDescription("Duration of pipeline phase activity executions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create phase duration: %v", err))
	}

	phaseErrorCounter, err = meter.Int64Counter(
		"apexforge.pipeline.phase.errors",
		metric.WithDescription("Number of phase activity errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create phase error counter: %v", err))
	}
}

func init() {
	initMetrics()
}
