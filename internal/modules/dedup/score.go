package dedup

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

const (
	// NameSimilarityThreshold is the minimum trigram similarity for a name to
	// count as a signal at all.
	NameSimilarityThreshold = 0.6
	// HighNameSimilarity earns the bonus and makes the candidate strong.
	HighNameSimilarity = 0.95
	// RadiusMeters is the great-circle distance treated as "same spot".
	RadiusMeters = 50.0
	// MinScore keeps candidates without a strong signal.
	MinScore = 0.7

	nameWeight     = 0.3
	highNameBonus  = 0.4
	phoneWeight    = 0.4
	proximityBonus = 0.3
)

const (
	ReasonHighNameSimilarity = "high_name_similarity_bonus"
	ReasonPhoneMatch         = "phone_match"
	ReasonWithinRadius       = "within_50m"
)

// Signals are the raw match facts for one stored place.
type Signals struct {
	PlaceID        uuid.UUID
	CanonicalName  string
	NameSimilarity float64
	PhoneMatch     bool
	WithinRadius   bool
}

// Candidate is a place that may duplicate the queried place. Score can exceed 1.0.
type Candidate struct {
	PlaceID       uuid.UUID `json:"place_id"`
	CanonicalName string    `json:"canonical_name"`
	Score         float64   `json:"score"`
	Reasons       []string  `json:"reasons"`
}

// Score rates a single match. ok is false when the match is neither strong
// (near-identical name or same phone) nor scored at least MinScore.
func Score(s Signals) (Candidate, bool) {
	score := 0.0
	reasons := make([]string, 0, 4)
	strong := false

	if s.NameSimilarity >= NameSimilarityThreshold {
		score += math.Min(s.NameSimilarity, 1.0) * nameWeight
		reasons = append(reasons, fmt.Sprintf("name_similarity=%.2f", s.NameSimilarity))
		if s.NameSimilarity >= HighNameSimilarity {
			score += highNameBonus
			reasons = append(reasons, ReasonHighNameSimilarity)
			strong = true
		}
	}
	if s.PhoneMatch {
		score += phoneWeight
		reasons = append(reasons, ReasonPhoneMatch)
		strong = true
	}
	if s.WithinRadius {
		score += proximityBonus
		reasons = append(reasons, ReasonWithinRadius)
	}

	if score < MinScore && !strong {
		return Candidate{}, false
	}
	return Candidate{
		PlaceID:       s.PlaceID,
		CanonicalName: s.CanonicalName,
		Score:         round3(score),
		Reasons:       reasons,
	}, true
}

// Rank scores every match, drops the weak ones and orders the rest by score,
// highest first. Ties keep input order.
func Rank(matches []Signals) []Candidate {
	out := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		if c, ok := Score(m); ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
