// Package vertical maps free-text training-site names and raw feed codes to
// the fixed industry-vertical classification. Membership lives in an ordered
// keyword table so resolution order and keyword sets can be tested and
// extended without touching control flow.
package vertical

import (
	"strings"

	"github.com/abelgeorge323/MIT-Candidates/internal/normalize"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
)

// Table is an ordered keyword-membership table. Lists are checked in Order;
// the first vertical whose keyword list matches wins, so a site mentioning
// keywords from two lists resolves to the earlier one.
type Table struct {
	Order    []roster.Vertical
	Keywords map[roster.Vertical][]string
}

// Default returns the curated built-in table in the canonical resolution
// order.
func Default() *Table {
	return &Table{
		Order: roster.ResolutionOrder,
		Keywords: map[roster.Vertical][]string{
			roster.Aviation: {
				"delta", "united airlines", "american airlines", "southwest",
				"atl", "dtw", "lga", "msp", "jfk", "ord",
				"boston logan airport", "airport", "airlines",
			},
			roster.Automotive: {
				"ford", "general motors", "gm plant", "stellantis", "toyota",
				"honda", "dealership", "automotive",
			},
			roster.Distribution: {
				"distribution center", "warehouse", "fulfillment", "fedex",
				"ups", "logistics", "supply chain",
			},
			roster.Finance: {
				"bank", "chase", "wells fargo", "fidelity", "capital one",
				"financial", "credit union",
			},
			roster.Manufacturing: {
				"boeing", "caterpillar", "3m", "ge appliances", "plant",
				"assembly", "manufacturing", "mill",
			},
			roster.Technology: {
				"microsoft", "google", "amazon web services", "data center",
				"software", "tech campus", "ibm",
			},
			roster.LifeScience: {
				"pfizer", "medtronic", "mayo", "biotech", "pharma",
				"laboratory", "hospital", "health",
			},
			roster.RDEducationOther: {
				"university", "college", "campus", "research", "r&d",
				"education", "institute",
			},
		},
	}
}

// Resolve maps a training-site name to a vertical by case-insensitive
// substring membership. Empty, absent or "none" sites resolve to Unknown
// without attempting matching.
func (t *Table) Resolve(site string) roster.Vertical {
	site = strings.ToLower(normalize.CleanText(site))
	if site == "" || site == "none" || site == "n/a" {
		return roster.UnknownVertical
	}

	for _, v := range t.Order {
		for _, kw := range t.Keywords[v] {
			if strings.Contains(site, kw) {
				return v
			}
		}
	}
	return roster.UnknownVertical
}

// codeMap translates the raw vertical codes carried by the tracking feed.
var codeMap = map[string]roster.Vertical{
	"manu":      roster.Manufacturing,
	"auto":      roster.Automotive,
	"fin":       roster.Finance,
	"tech":      roster.Technology,
	"avi":       roster.Aviation,
	"dist":      roster.Distribution,
	"ls":        roster.LifeScience,
	"rd":        roster.RDEducationOther,
	"reg & div": roster.RDEducationOther,
}

// FromCode maps a raw feed code or label to a vertical. Unrecognized codes
// resolve to Unknown so the site-based resolver can take over.
func FromCode(code string) roster.Vertical {
	code = strings.ToLower(normalize.CleanText(code))
	if code == "" || code == "n/a" || code == "none" {
		return roster.UnknownVertical
	}

	if v, ok := codeMap[code]; ok {
		return v
	}

	// Full names pass through when they already match a known vertical.
	for _, v := range roster.ResolutionOrder {
		if strings.EqualFold(string(v), code) {
			return v
		}
	}
	return roster.UnknownVertical
}
