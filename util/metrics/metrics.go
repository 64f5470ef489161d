package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command outcome labels
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusNotFound = "not_found"
)

// Emergency shutdown trigger labels
const (
	TriggerAuto   = "auto"
	TriggerManual = "manual"
)

var (
	// Plants tracks the number of tenant plants currently registered
	Plants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "plantsim_plants",
			Help: "Number of tenant plants currently registered",
		},
	)

	// PlantResetsTotal counts plant resets to factory defaults
	PlantResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plantsim_plant_resets_total",
			Help: "Total number of plant resets",
		},
	)

	// TicksTotal counts completed scheduler cycles
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plantsim_ticks_total",
			Help: "Total number of scheduler tick cycles",
		},
	)

	// TickDuration tracks how long one walk over the whole registry takes
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plantsim_tick_duration_seconds",
			Help:    "Duration of one scheduler tick cycle across all plants in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	// ReactorTicksTotal counts individual reactor ticks
	ReactorTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plantsim_reactor_ticks_total",
			Help: "Total number of individual reactor ticks",
		},
	)

	// CommandsTotal counts core commands by name and outcome
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantsim_commands_total",
			Help: "Total number of reactor and plant commands by outcome",
		},
		[]string{"command", "status"},
	)

	// EmergencyShutdownsTotal counts emergency shutdowns by trigger
	EmergencyShutdownsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantsim_emergency_shutdowns_total",
			Help: "Total number of emergency shutdowns by trigger",
		},
		[]string{"trigger"},
	)
)

// SetPlantCount sets the registered plant gauge
func SetPlantCount(count int) {
	Plants.Set(float64(count))
}

// RecordPlantReset increments the plant reset counter
func RecordPlantReset() {
	PlantResetsTotal.Inc()
}

// RecordTick records one scheduler cycle and the number of reactors it advanced
func RecordTick(reactors int, durationSeconds float64) {
	TicksTotal.Inc()
	TickDuration.Observe(durationSeconds)
	if reactors > 0 {
		ReactorTicksTotal.Add(float64(reactors))
	}
}

// RecordCommand increments the command counter for a given command and status
func RecordCommand(command, status string) {
	CommandsTotal.WithLabelValues(command, status).Inc()
}

// RecordEmergencyShutdown increments the emergency shutdown counter by count
func RecordEmergencyShutdown(trigger string, count int) {
	if count > 0 {
		EmergencyShutdownsTotal.WithLabelValues(trigger).Add(float64(count))
	}
}
