package ui

import (
	"fmt"

	"github.com/pthm-cable/corpo/economy"
	"github.com/pthm-cable/corpo/game"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int64
	State    economy.State
	Params   economy.Params
	Report   economy.Report
	Finished bool
}

// HUDDataFrom gathers HUD data from a session.
func HUDDataFrom(title string, g *game.Session) HUDData {
	return HUDData{
		Title:    title,
		Tick:     g.Tick(),
		State:    g.State(),
		Params:   g.Params(),
		Report:   g.LastReport(),
		Finished: g.Finished(),
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Render returns the HUD as a string.
func (h *HUD) Render(data HUDData) string {
	r := h.renderer
	s := data.State

	lines := []string{
		r.Theme.Title.Render(data.Title),
		"",
		r.SectionHeader("Company"),
		r.LabelValue("Tick", fmt.Sprintf("%d", data.Tick)),
		r.SignedValue("Money", s.Money, "$%.2f"),
		r.LabelValue("Admin fees", fmt.Sprintf("%.2f", s.AdminFees)),
		r.LabelValue("Work buffer", fmt.Sprintf("%.0f", s.WorkBuffer)),
		r.LabelValue("Workers", fmt.Sprintf("%d", len(s.Workers))),
		r.LabelValue("Payroll", fmt.Sprintf("$%.2f/tick", economy.WageBill(s.Workers))),
		r.Bar("Next hire", hireProgress(s.Money, data.Params.HireCost)),
		"",
		r.SectionHeader("Last tick"),
	}

	rep := data.Report
	if rep.Idle || data.Tick == 0 {
		lines = append(lines, r.Theme.Muted.Render("idle"))
	} else {
		lines = append(lines,
			r.LabelValue("Total work", fmt.Sprintf("%.2f", rep.TotalWork)),
			r.Bar("Efficiency", rep.AvgEfficiency),
			r.LabelValue("Materials", fmt.Sprintf("%.2f", rep.Materials)),
			r.SignedValue("Net", rep.MoneyGain-rep.WageBill, "$%+.2f"),
		)
	}

	if data.Finished {
		lines = append(lines, "", r.Theme.Status.Render("Tick limit reached"))
	}

	return r.Panel(lines...)
}

func hireProgress(money, cost float64) float64 {
	if cost <= 0 {
		return 1
	}
	return money / cost
}
