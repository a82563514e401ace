package model

// Decimal is a megabyte counter that may be absent or malformed in API
// responses. Invalid values contribute nothing to aggregation instead of
// failing the whole report.
type Decimal struct {
	Value float64
	Valid bool
}

// Site represents one remote endpoint managed by the target platform.
// Sites are re-fetched in full every cycle; nothing here is persisted.
type Site struct {
	// Name is the display name.
	Name string
	// NiceID is the stable short identifier.
	NiceID string
	// Online reports whether the tunnel to the site is up.
	Online bool
	// MegabytesIn and MegabytesOut are the transfer counters reported by
	// the platform for this site.
	MegabytesIn  Decimal
	MegabytesOut Decimal
}

// SiteReport is one cycle's view of an organization's sites.
type SiteReport struct {
	Sites []Site
	// TotalSites comes from the response pagination counter and is not
	// necessarily equal to len(Sites).
	TotalSites int
}
