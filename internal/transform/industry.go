package transform

import (
	"strings"

	"github.com/rotisserie/eris"
)

// IndustryGrouper maps a raw survey industry code to the industry group used
// by the job-loss table. ok is false when the code has no group.
type IndustryGrouper interface {
	Group(code string) (group string, ok bool)
}

// GrouperFunc adapts a plain function to IndustryGrouper.
type GrouperFunc func(code string) (string, bool)

// Group calls f.
func (f GrouperFunc) Group(code string) (string, bool) { return f(code) }

// SectorGrouper groups NAICS-coded industries (IPUMS INDNAICS) by sector.
var SectorGrouper IndustryGrouper = GrouperFunc(SectorGroup)

// TableGrouper is an explicit code → group table, typically loaded from the
// industry map file.
type TableGrouper struct {
	groups map[string]string
}

// NewTableGrouper builds a grouper from (code, group) pairs. A code mapped to
// two different groups is rejected.
func NewTableGrouper(pairs [][2]string) (*TableGrouper, error) {
	groups := make(map[string]string, len(pairs))
	for _, p := range pairs {
		code := normalizeIndustryCode(p[0])
		group := strings.TrimSpace(p[1])
		if code == "" || group == "" {
			continue
		}
		if prev, ok := groups[code]; ok && prev != group {
			return nil, eris.Errorf("transform: industry code %q mapped to both %q and %q", code, prev, group)
		}
		groups[code] = group
	}
	return &TableGrouper{groups: groups}, nil
}

// Group looks the code up in the table.
func (g *TableGrouper) Group(code string) (string, bool) {
	group, ok := g.groups[normalizeIndustryCode(code)]
	return group, ok
}

// Len returns the number of mapped codes.
func (g *TableGrouper) Len() int { return len(g.groups) }

// normalizeIndustryCode drops leading zeros so "0770" and "770" match.
func normalizeIndustryCode(code string) string {
	code = strings.TrimSpace(code)
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" && code != "" {
		return "0"
	}
	return trimmed
}
