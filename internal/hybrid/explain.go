package hybrid

import (
	"strings"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/inodbandara-official/recommendation/internal/tags"
)

const (
	ReasonInterestMatch   = "Matches your interests"
	ReasonSocialProof     = "Popular among similar users"
	ReasonTrendingNearYou = "Trending this week near you"
	ReasonTrending        = "Trending this week"
	ReasonFallback        = "Recommended based on combined scores"
)

// AttachExplanations derives justification tags for every ranked row from its
// score composition and metadata overlap. Rules are independent and evaluated
// in fixed order; all that fire are appended. The list is never empty: rows
// matching nothing get the combined-scores fallback.
func AttachExplanations(recs []domain.ScoredEvent, events map[string]domain.Event, userInterests map[string]struct{}, userRegion string) []domain.ScoredEvent {
	region := strings.ToLower(strings.TrimSpace(userRegion))

	for i := range recs {
		var reasons []string
		meta, hasMeta := events[recs[i].EventID]

		if hasMeta && len(userInterests) > 0 &&
			tags.Intersects(userInterests, tags.Set(meta.ArtForms, meta.Genres)) {
			reasons = append(reasons, ReasonInterestMatch)
		}

		if recs[i].GraphScore > 0 {
			reasons = append(reasons, ReasonSocialProof)
		}

		if recs[i].TrendScore > 0 {
			eventRegion := ""
			if hasMeta {
				eventRegion = strings.ToLower(strings.TrimSpace(meta.Region))
			}
			if region != "" && eventRegion != "" && region == eventRegion {
				reasons = append(reasons, ReasonTrendingNearYou)
			} else {
				reasons = append(reasons, ReasonTrending)
			}
		}

		if len(reasons) == 0 {
			reasons = append(reasons, ReasonFallback)
		}
		recs[i].Explanations = reasons
	}
	return recs
}
