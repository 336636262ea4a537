package pricing

import (
	"sort"
	"time"

	"github.com/mrwaste/wastecrm/internal/model"
)

// MatchScore counts how many of bin size, service type and material type of
// rate equal the request.
func MatchScore(rate model.Rate, requested model.ServiceProfile) int {
	score := 0
	if rate.BinSize == requested.BinSize {
		score++
	}
	if rate.ServiceType == requested.ServiceType {
		score++
	}
	if rate.MaterialType == requested.MaterialType {
		score++
	}
	return score
}

// RankRates drops rates expired at asOf and orders the rest by match score,
// then by most recent effective date. Non-matching rates stay in the result.
// The sort is stable, so equal rates keep their input order. candidates is not modified.
func RankRates(candidates []model.Rate, requested model.ServiceProfile, asOf time.Time) []model.RankedRate {
	ranked := make([]model.RankedRate, 0, len(candidates))
	for _, rate := range candidates {
		if rate.ExpiredAt(asOf) {
			continue
		}
		ranked = append(ranked, model.RankedRate{Rate: rate, Score: MatchScore(rate, requested)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Rate.EffectiveDate.After(ranked[j].Rate.EffectiveDate)
	})
	return ranked
}

// FindBestRates is RankRates without the scores.
func FindBestRates(candidates []model.Rate, requested model.ServiceProfile, asOf time.Time) []model.Rate {
	ranked := RankRates(candidates, requested, asOf)
	rates := make([]model.Rate, len(ranked))
	for i, r := range ranked {
		rates[i] = r.Rate
	}
	return rates
}
