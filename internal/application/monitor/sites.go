package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"pangolin-monitor/internal/domain/model"
)

// checkSites scans the organization's sites and maintains the edge-triggered
// offline alert. The outstanding flag is shared by the per-site and the
// aggregate alert, so only the first offline site observed in a scan produces
// a per-site notification; subsequent ones are logged until the episode ends.
// The flag resets only when a scan observes every site online.
func (m *Monitor) checkSites(ctx context.Context, l *slog.Logger) error {
	report, err := m.api.ListSites(ctx, m.cfg.OrgID)
	if err != nil {
		// The alert flag is left untouched: a failed fetch says nothing
		// about whether the sites recovered.
		m.alert(ctx, fmt.Sprintf("Failed to fetch site status: %v", err), model.PriorityHigh)
		return err
	}

	onlineCount := 0
	allObservedOnline := true
	for _, s := range report.Sites {
		l.Info("site status",
			"site", s.Name,
			"id", s.NiceID,
			"online", s.Online,
			"megabytes_in", s.MegabytesIn.Value,
			"megabytes_out", s.MegabytesOut.Value,
		)
		if s.Online {
			onlineCount++
			continue
		}
		allObservedOnline = false
		if m.alertOutstanding {
			l.Warn("site offline, alert already outstanding", "site", s.Name, "id", s.NiceID)
			continue
		}
		m.alert(ctx, fmt.Sprintf("Site %s (%s) is offline", s.Name, s.NiceID), model.PriorityNormal)
		m.alertOutstanding = true
	}

	// The pagination total can exceed the number of returned records; a
	// shortfall there is alerted in aggregate if nothing has alerted yet.
	if onlineCount < report.TotalSites && !m.alertOutstanding {
		m.alert(ctx, fmt.Sprintf("Only %d of %d sites are online", onlineCount, report.TotalSites), model.PriorityNormal)
		m.alertOutstanding = true
	}

	if allObservedOnline {
		if m.alertOutstanding {
			l.Info("all sites back online, clearing outstanding alert")
		}
		m.alertOutstanding = false
	}

	l.Info("site summary", "online", onlineCount, "total", report.TotalSites)
	return nil
}
