package telemetry

import "github.com/pthm-cable/corpo/economy"

// TickRecord is one ledger row: what a single tick did to the books.
type TickRecord struct {
	Tick          int64   `csv:"tick"`
	Idle          bool    `csv:"idle"`
	TotalWork     float64 `csv:"total_work"`
	AvgEfficiency float64 `csv:"avg_efficiency"`
	Materials     float64 `csv:"materials"`
	Overhead      float64 `csv:"overhead"`
	MoneyGain     float64 `csv:"money_gain"`
	WageBill      float64 `csv:"wage_bill"`
	Money         float64 `csv:"money"`
	AdminFees     float64 `csv:"admin_fees"`
	WorkBuffer    float64 `csv:"work_buffer"`
	Workers       int     `csv:"workers"`
}

// NewTickRecord builds a ledger row from a tick's report and the state it
// published.
func NewTickRecord(tick int64, rep economy.Report, after economy.State) TickRecord {
	return TickRecord{
		Tick:          tick,
		Idle:          rep.Idle,
		TotalWork:     rep.TotalWork,
		AvgEfficiency: rep.AvgEfficiency,
		Materials:     rep.Materials,
		Overhead:      rep.Overhead,
		MoneyGain:     rep.MoneyGain,
		WageBill:      rep.WageBill,
		Money:         after.Money,
		AdminFees:     after.AdminFees,
		WorkBuffer:    after.WorkBuffer,
		Workers:       len(after.Workers),
	}
}
