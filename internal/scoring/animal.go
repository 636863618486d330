package scoring

import (
	"math"
	"sort"
)

type Trait string

const (
	TraitDynamic    Trait = "dynamic"
	TraitExpressive Trait = "expressive"
	TraitAnalytical Trait = "analytical"
	TraitPrecise    Trait = "precise"
	TraitFriendly   Trait = "friendly"
	TraitStable     Trait = "stable"
	TraitCautious   Trait = "cautious"
)

var traitOrder = []Trait{
	TraitDynamic, TraitExpressive, TraitAnalytical, TraitPrecise,
	TraitFriendly, TraitStable, TraitCautious,
}

type Profile string

const (
	ProfileEagle   Profile = "águia"
	ProfileWolf    Profile = "lobo"
	ProfileDolphin Profile = "golfinho"
	ProfileOwl     Profile = "coruja"
)

// animalProfiles is both the trait-pair table and the tie-break priority:
// on equal scores the earlier profile wins.
var animalProfiles = []struct {
	Profile Profile
	Traits  [2]Trait
}{
	{ProfileEagle, [2]Trait{TraitDynamic, TraitExpressive}},
	{ProfileWolf, [2]Trait{TraitAnalytical, TraitPrecise}},
	{ProfileDolphin, [2]Trait{TraitExpressive, TraitFriendly}},
	{ProfileOwl, [2]Trait{TraitStable, TraitCautious}},
}

// animalMaxPoints is the assumed maximum of a full questionnaire. It is not
// derived from the number of answers, so partial runs report a lower
// percentage.
const animalMaxPoints = 30.0

type ProfileScore struct {
	Profile    Profile `json:"profile"`
	Score      float64 `json:"score"`
	Percentage float64 `json:"percentage"`
}

type AnimalResult struct {
	DominantProfile Profile           `json:"dominant_profile"`
	PercentageScore float64           `json:"percentage_score"`
	TotalPoints     float64           `json:"total_points"`
	ProfileScores   []ProfileScore    `json:"profile_scores"`
	Traits          map[Trait]float64 `json:"traits"`
}

// CalculateAnimalProfile accumulates trait weights of the chosen options and
// derives the four archetype scores. Unknown questions or options are
// skipped.
func CalculateAnimalProfile(answers Answers, questions []Question) AnimalResult {
	traits := make(map[Trait]float64, len(traitOrder))
	for _, t := range traitOrder {
		traits[t] = 0
	}

	var totalPoints float64
	for questionID, optionID := range answers {
		q, ok := findQuestion(questions, questionID)
		if !ok {
			continue
		}
		opt, ok := q.option(optionID)
		if !ok {
			continue
		}
		for trait, weight := range opt.Traits {
			traits[trait] += weight
			totalPoints += weight
		}
	}

	scores := make([]ProfileScore, len(animalProfiles))
	var sum float64
	for i, p := range animalProfiles {
		score := (traits[p.Traits[0]] + traits[p.Traits[1]]) / 2
		scores[i] = ProfileScore{Profile: p.Profile, Score: score}
		sum += score
	}

	dominant := scores[0]
	for _, s := range scores[1:] {
		if s.Score > dominant.Score {
			dominant = s
		}
	}

	for i := range scores {
		// 0/0 yields NaN when nothing was answered.
		scores[i].Percentage = math.Round(scores[i].Score / sum * 100)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return AnimalResult{
		DominantProfile: dominant.Profile,
		PercentageScore: math.Min(math.Round(totalPoints/animalMaxPoints*100), 100),
		TotalPoints:     totalPoints,
		ProfileScores:   scores,
		Traits:          traits,
	}
}

func (r AnimalResult) degenerate() bool {
	if math.IsNaN(r.PercentageScore) {
		return true
	}
	for _, s := range r.ProfileScores {
		if math.IsNaN(s.Percentage) {
			return true
		}
	}
	return false
}
