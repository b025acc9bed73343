// Package components defines ECS components for the workforce.
package components

// Badge identifies a worker. IDs are handed out in hire order.
type Badge struct {
	ID int64
}

// Staff holds a worker's productive attributes.
type Staff struct {
	WorkPower  float64
	Efficiency float64 // 0-1, fraction of output sold as material
	Support    float64 // Synergy granted to colleagues
}

// Payroll holds what a worker costs per tick.
type Payroll struct {
	Wage float64
}
