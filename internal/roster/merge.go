package roster

// fieldDefault fills the documented placeholder for fields a source feed
// does not carry.
const fieldDefault = "N/A"

// Merge combines record sets from multiple feeds into one canonical ordered
// sequence. Rows are concatenated, never deduplicated (reconciliation is a
// separate, optional pass); string fields absent in a given source are
// filled with "N/A" and every record keeps its single provenance tag.
func Merge(sets ...*Candidates) *Candidates {
	merged := &Candidates{}
	for _, set := range sets {
		if set == nil {
			continue
		}
		for _, c := range set.Items {
			cp := *c
			fillDefaults(&cp)
			merged.Items = append(merged.Items, &cp)
		}
	}
	return merged
}

func fillDefaults(c *Candidate) {
	if c.TrainingSite == "" {
		c.TrainingSite = fieldDefault
	}
	if c.Location == "" {
		c.Location = fieldDefault
	}
	if c.Status == "" {
		c.Status = fieldDefault
	}
	if c.Level == "" {
		c.Level = fieldDefault
	}
	if c.Vertical == "" {
		c.Vertical = fieldDefault
	}
	if c.Source == "" {
		c.Source = fieldDefault
	}
}
