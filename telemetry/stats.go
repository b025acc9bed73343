package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Activity during window
	Ticks         int `csv:"ticks"`
	IdleTicks     int `csv:"idle_ticks"`
	WorkClicks    int `csv:"work_clicks"`
	Hires         int `csv:"hires"`
	DeclinedHires int `csv:"declined_hires"`

	// Production during window
	TotalWork   float64 `csv:"total_work"`
	Materials   float64 `csv:"materials"`
	Overhead    float64 `csv:"overhead"`
	MoneyGained float64 `csv:"money_gained"`
	WagesPaid   float64 `csv:"wages_paid"`
	NetIncome   float64 `csv:"net_income"` // MoneyGained - WagesPaid

	// Balances at window end
	Money      float64 `csv:"money"`
	AdminFees  float64 `csv:"admin_fees"`
	WorkBuffer float64 `csv:"work_buffer"`
	Workers    int     `csv:"workers"`

	// Per-worker contribution distribution at window end
	ContribMean float64 `csv:"contrib_mean"`
	ContribStd  float64 `csv:"contrib_std"`
	ContribP10  float64 `csv:"contrib_p10"`
	ContribP50  float64 `csv:"contrib_p50"`
	ContribP90  float64 `csv:"contrib_p90"`
}

// ComputeStats returns the population mean and standard deviation of
// values together with their 10th, 50th and 90th percentiles.
func ComputeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("ticks", s.Ticks),
		slog.Int("idle_ticks", s.IdleTicks),
		slog.Int("work_clicks", s.WorkClicks),
		slog.Int("hires", s.Hires),
		slog.Int("declined_hires", s.DeclinedHires),
		slog.Float64("total_work", s.TotalWork),
		slog.Float64("materials", s.Materials),
		slog.Float64("overhead", s.Overhead),
		slog.Float64("money_gained", s.MoneyGained),
		slog.Float64("wages_paid", s.WagesPaid),
		slog.Float64("net_income", s.NetIncome),
		slog.Float64("money", s.Money),
		slog.Float64("admin_fees", s.AdminFees),
		slog.Float64("work_buffer", s.WorkBuffer),
		slog.Int("workers", s.Workers),
		slog.Float64("contrib_mean", s.ContribMean),
		slog.Float64("contrib_std", s.ContribStd),
		slog.Float64("contrib_p50", s.ContribP50),
	)
}

// LogStats logs the window stats.
func (s WindowStats) LogStats(log *slog.Logger) {
	log.Info("stats", "window", s)
}
