package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/talgya/statblob/internal/engine"
	"github.com/talgya/statblob/internal/geometry"
	"github.com/talgya/statblob/internal/perks"
)

const findLimit = 10

// printFind lists the perks whose names best match query.
func printFind(w io.Writer, s *engine.Session, query string) error {
	matches := s.Catalog().Search(query, findLimit)
	if len(matches) == 0 {
		_, err := fmt.Fprintf(w, "no perk matches %q\n", query)
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-18s %-10s %7s %7s  %-16s %s\n", "NAME", "TIER", "ANGLE", "RADIUS", "NEEDS", "STATUS")
	for _, m := range matches {
		p := m.Perk
		status := "locked"
		if s.IsUnlocked(p) {
			status = "unlocked"
		}
		fmt.Fprintf(bw, "%-18s %-10s %6.1f° %7.1f  %-16s %s\n",
			p.Name, p.Tier.Label(), geometry.Degrees(p.Angle), p.Radius, perks.Requirement(p), status)
	}
	return bw.Flush()
}

// printReport summarizes the catalog and the current blob. previousSeed is
// the seed of the prior run, if one was recorded.
func printReport(w io.Writer, s *engine.Session, previousSeed string) error {
	c := s.Catalog()
	counts := c.CountByTier()
	unlocked, total := s.UnlockedCount()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "seed       %d\n", c.Seed())
	if previousSeed != "" {
		fmt.Fprintf(bw, "last run   %s\n", previousSeed)
	}
	fmt.Fprintf(bw, "perks      %s\n", humanize.Comma(int64(total)))
	for _, t := range []perks.Tier{perks.TierMajor, perks.TierGiant, perks.TierStar} {
		fmt.Fprintf(bw, "  %-9s %s\n", t.Label(), humanize.Comma(int64(counts[t])))
	}
	fmt.Fprintf(bw, "unlocked   %s of %s\n", humanize.Comma(int64(unlocked)), humanize.Comma(int64(total)))
	fmt.Fprintf(bw, "build      STR %.0f  DEX %.0f  INT %.0f  (%.0f of %.0f)\n\n",
		s.Value(geometry.Strength), s.Value(geometry.Dexterity), s.Value(geometry.Intelligence),
		s.Total(), s.Limits().MaxTotal)

	fmt.Fprintf(bw, "%7s  %-22s %s\n", "ANGLE", "WHERE", "RADIUS")
	for _, ax := range geometry.Axes {
		fmt.Fprintf(bw, "%6.1f°  %-22s %s\n",
			geometry.Degrees(ax.Landmark()), ax.Name(), humanize.FtoaWithDigits(s.CurrentRadius(ax.Landmark()), 2))
	}
	for _, sec := range geometry.Sectors {
		mid := sec.Midpoint()
		fmt.Fprintf(bw, "%6.1f°  %-22s %s\n",
			geometry.Degrees(mid), sec.From.String()+"-"+sec.To.String()+" midpoint",
			humanize.FtoaWithDigits(s.CurrentRadius(mid), 2))
	}
	return bw.Flush()
}
