package perks

import (
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Catalog is the immutable perk population. Accessors hand out copies so
// callers can never mutate a generated perk.
type Catalog struct {
	seed   int64
	perks  []Perk
	byName map[string]int
}

// NewCatalog rebuilds a catalog from stored perks, ordered by Ordinal.
func NewCatalog(seed int64, perks []Perk) *Catalog {
	sorted := slices.Clone(perks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordinal < sorted[j].Ordinal
	})
	return newCatalog(seed, sorted)
}

func newCatalog(seed int64, perks []Perk) *Catalog {
	byName := make(map[string]int, len(perks))
	for i, p := range perks {
		byName[strings.ToLower(p.Name)] = i
	}
	return &Catalog{seed: seed, perks: perks, byName: byName}
}

// Seed returns the seed the catalog was generated from.
func (c *Catalog) Seed() int64 {
	return c.seed
}

// Len returns the number of perks.
func (c *Catalog) Len() int {
	return len(c.perks)
}

// At returns the i-th perk.
func (c *Catalog) At(i int) Perk {
	return c.perks[i]
}

// All returns a copy of every perk in catalog order.
func (c *Catalog) All() []Perk {
	return slices.Clone(c.perks)
}

// ByTier returns the perks of one tier in catalog order.
func (c *Catalog) ByTier(t Tier) []Perk {
	var out []Perk
	for _, p := range c.perks {
		if p.Tier == t {
			out = append(out, p)
		}
	}
	return out
}

// CountByTier tallies perks per tier.
func (c *Catalog) CountByTier() map[Tier]int {
	counts := make(map[Tier]int)
	for _, p := range c.perks {
		counts[p.Tier]++
	}
	return counts
}

// Lookup finds a perk by exact name, ignoring case.
func (c *Catalog) Lookup(name string) (Perk, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Perk{}, false
	}
	return c.perks[i], true
}

// Match is one Search result. Distance 0 means exact, prefix or substring.
type Match struct {
	Perk     Perk
	Distance int
}

// Search finds perks whose names are close to query. Exact, prefix and
// substring hits rank first; the rest are kept only within a typo budget
// that grows with name length. At most limit matches are returned.
func (c *Catalog) Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	var matches []Match
	for _, p := range c.perks {
		name := strings.ToLower(p.Name)
		switch {
		case name == q, strings.HasPrefix(name, q) && len(q) >= 2, strings.Contains(name, q) && len(q) >= 3:
			matches = append(matches, Match{Perk: p, Distance: 0})
		default:
			dist := levenshtein.ComputeDistance(q, name)
			if dist > levenshteinLimit(len(name)) {
				continue
			}
			matches = append(matches, Match{Perk: p, Distance: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		// Exact name beats a prefix hit at the same distance.
		ei := strings.EqualFold(matches[i].Perk.Name, q)
		ej := strings.EqualFold(matches[j].Perk.Name, q)
		if ei != ej {
			return ei
		}
		return matches[i].Perk.Ordinal < matches[j].Perk.Ordinal
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
