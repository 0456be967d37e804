package detection

import "github.com/willclo1/SpyPointAnalysis/internal/conf"

// MatchTier tags how a species selection was reached, keeping the selection
// policy auditable separately from label normalization.
type MatchTier int

const (
	// TierNone means no usable candidate cleared either threshold.
	TierNone MatchTier = iota
	// TierStrong means a candidate met the strong threshold.
	TierStrong
	// TierFallback means a candidate met only the fallback threshold.
	TierFallback
)

// Selection is the outcome of species candidate selection for one photo.
// On TierNone the label is empty and the caller maps it to the Unknown pair.
type Selection struct {
	Label string
	Score float64
	Tier  MatchTier
}

// ChooseSpecies picks the best species label from the primary candidate plus
// the ranked secondary candidates.
//
// Selection is tiered: candidates failing the usable predicate are dropped
// first, so a high-confidence junk label can never beat a lower-confidence
// real one. Among usable candidates the highest score meeting the strong
// threshold wins; failing that, the highest score meeting the fallback
// threshold. Unscored candidates never clear a threshold.
func ChooseSpecies(primary Candidate, secondary []Candidate, cfg *conf.SpeciesSettings, usable func(string) bool) Selection {
	pool := make([]Candidate, 0, 1+len(secondary))
	if primary.Label != "" {
		pool = append(pool, primary)
	}
	for _, c := range secondary {
		if c.Label != "" {
			pool = append(pool, c)
		}
	}

	if usable != nil {
		kept := pool[:0]
		for _, c := range pool {
			if usable(c.Label) {
				kept = append(kept, c)
			}
		}
		pool = kept
	}

	if best, ok := bestAtOrAbove(pool, cfg.StrongThreshold); ok {
		return Selection{Label: best.Label, Score: best.Score, Tier: TierStrong}
	}
	if best, ok := bestAtOrAbove(pool, cfg.FallbackThreshold); ok {
		return Selection{Label: best.Label, Score: best.Score, Tier: TierFallback}
	}
	return Selection{Tier: TierNone}
}

func bestAtOrAbove(pool []Candidate, threshold float64) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range pool {
		if !c.Scored || c.Score < threshold {
			continue
		}
		if !found || c.Score > best.Score {
			best = c
			found = true
		}
	}
	return best, found
}
