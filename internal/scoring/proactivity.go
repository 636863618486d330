package scoring

import "math"

// proactivityOptionMax is the value of the most proactive option.
const proactivityOptionMax = 3.0

type ProactivityLevel struct {
	Min         float64
	Label       string
	Description string
}

// proactivityLevels must stay ordered from the highest band down.
var proactivityLevels = []ProactivityLevel{
	{85, "Altamente Proativo", "Você antecipa problemas e age antes que eles aconteçam. Assume a responsabilidade pelos resultados e mobiliza as pessoas ao redor."},
	{70, "Proativo", "Você costuma tomar a iniciativa e buscar soluções. Em situações novas ainda pode esperar orientação antes de agir."},
	{50, "Moderadamente Proativo", "Você age quando o problema fica evidente. Há espaço para antecipar situações e assumir mais iniciativa."},
	{30, "Reativo", "Você tende a responder aos acontecimentos em vez de antecipá-los. Pequenas iniciativas diárias ajudam a mudar esse padrão."},
	{0, "Altamente Reativo", "Você costuma esperar que outros resolvam ou que as circunstâncias mudem. Desenvolver o foco no que está sob seu controle é o primeiro passo."},
}

type ProactivityResult struct {
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Percentage  float64 `json:"percentage"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
}

// ProactivityLevels returns the threshold table, highest band first.
func ProactivityLevels() []ProactivityLevel {
	out := make([]ProactivityLevel, len(proactivityLevels))
	copy(out, proactivityLevels)
	return out
}

// LevelFor picks the first band whose minimum does not exceed percentage.
// NaN matches nothing.
func LevelFor(percentage float64) (ProactivityLevel, bool) {
	for _, l := range proactivityLevels {
		if l.Min <= percentage {
			return l, true
		}
	}
	return ProactivityLevel{}, false
}

// CalculateProactivity sums the option values against 3 points per
// processed answer. An option without a value poisons the total with NaN.
func CalculateProactivity(answers Answers, questions []Question) ProactivityResult {
	var total, maxScore float64
	for questionID, optionID := range answers {
		q, ok := findQuestion(questions, questionID)
		if !ok {
			continue
		}
		opt, ok := q.option(optionID)
		if !ok {
			continue
		}
		if opt.Value == nil {
			total += math.NaN()
		} else {
			total += *opt.Value
		}
		maxScore += proactivityOptionMax
	}

	percentage := math.Round(total / maxScore * 100)
	res := ProactivityResult{Score: total, MaxScore: maxScore, Percentage: percentage}
	if level, ok := LevelFor(percentage); ok {
		res.Level = level.Label
		res.Description = level.Description
	}
	return res
}

func (r ProactivityResult) degenerate() bool {
	return math.IsNaN(r.Score) || math.IsNaN(r.Percentage)
}
