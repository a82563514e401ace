package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"pangolin-monitor/internal/domain/model"
)

// checkBandwidth sums the organization's transfer counters and alerts when a
// total crosses a threshold. Unlike the offline-site handling this is
// level-triggered: a total that stays over the limit re-alerts every cycle.
func (m *Monitor) checkBandwidth(ctx context.Context, l *slog.Logger) error {
	report, err := m.api.ListSites(ctx, m.cfg.OrgID)
	if err != nil {
		m.alert(ctx, fmt.Sprintf("Failed to fetch bandwidth metrics: %v", err), model.PriorityHigh)
		return err
	}

	var totalIn, totalOut float64
	for _, s := range report.Sites {
		// Unparseable counters are skipped, never failed on.
		if s.MegabytesIn.Valid {
			totalIn += s.MegabytesIn.Value
		}
		if s.MegabytesOut.Valid {
			totalOut += s.MegabytesOut.Value
		}
	}
	totalIn = round2(totalIn)
	totalOut = round2(totalOut)
	l.Info("bandwidth totals", "megabytes_in", totalIn, "megabytes_out", totalOut, "sites", len(report.Sites))

	// Critical before warning, each direction evaluated independently.
	switch {
	case totalIn > m.cfg.CriticalMB || totalOut > m.cfg.CriticalMB:
		m.alert(ctx, fmt.Sprintf("Bandwidth critical: %.2f MB in / %.2f MB out (limit %.0f MB)",
			totalIn, totalOut, m.cfg.CriticalMB), model.PriorityHigh)
	case totalIn > m.cfg.WarningMB || totalOut > m.cfg.WarningMB:
		m.alert(ctx, fmt.Sprintf("Bandwidth warning: %.2f MB in / %.2f MB out (limit %.0f MB)",
			totalIn, totalOut, m.cfg.WarningMB), model.PriorityNormal)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
