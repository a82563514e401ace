package pangolin

import (
	"encoding/json"
	"strconv"
	"strings"

	"pangolin-monitor/internal/domain/model"
)

// Envelope is the target API's top-level response wrapper. Data is kept raw
// so each call site can decode its own payload shape.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unauthorizedMessage is the body-level marker for an expired or invalid
// session. The server may still answer 200 at the transport level.
const unauthorizedMessage = "Unauthorized"

// flexDecimal decodes a decimal that may arrive as a JSON number, a numeric
// string, null, the literal string "null", or be absent entirely. Anything
// unparseable decodes as invalid rather than failing the surrounding
// document.
type flexDecimal model.Decimal

func (d *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*d = flexDecimal{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*d = flexDecimal{}
		return nil
	}
	*d = flexDecimal{Value: v, Valid: true}
	return nil
}

// Wire shapes for GET /org/{orgId}/sites.
type siteRecord struct {
	Name         string      `json:"name"`
	NiceID       string      `json:"niceId"`
	MegabytesIn  flexDecimal `json:"megabytesIn"`
	MegabytesOut flexDecimal `json:"megabytesOut"`
	Online       bool        `json:"online"`
}

type siteListPayload struct {
	Sites      []siteRecord `json:"sites"`
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

func (p siteListPayload) toReport() *model.SiteReport {
	report := &model.SiteReport{
		Sites:      make([]model.Site, 0, len(p.Sites)),
		TotalSites: p.Pagination.Total,
	}
	for _, s := range p.Sites {
		report.Sites = append(report.Sites, model.Site{
			Name:         s.Name,
			NiceID:       s.NiceID,
			Online:       s.Online,
			MegabytesIn:  model.Decimal(s.MegabytesIn),
			MegabytesOut: model.Decimal(s.MegabytesOut),
		})
	}
	return report
}
