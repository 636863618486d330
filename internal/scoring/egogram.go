package scoring

import "math"

type EgoState string

const (
	EgoCriticalParent  EgoState = "pc"
	EgoNurturingParent EgoState = "pn"
	EgoAdult           EgoState = "a"
	EgoFreeChild       EgoState = "cl"
	EgoAdaptedChild    EgoState = "ca"
)

const egoStateMaxNormalized = 10.0

// egoStates lists each state with its questions and the multiplier that
// brings its maximum close to 10. The order is the tie-break priority.
var egoStates = []struct {
	State      EgoState
	Label      string
	Questions  []string
	Multiplier float64
}{
	{EgoCriticalParent, "Pai Crítico", []string{"q2", "q9"}, 1.25},
	{EgoNurturingParent, "Pai Nutritivo", []string{"q3", "q6"}, 2},
	{EgoAdult, "Adulto", []string{"q1", "q7", "q8"}, 1.67},
	{EgoFreeChild, "Criança Livre", []string{"q5", "q10"}, 2},
	{EgoAdaptedChild, "Criança Adaptada", []string{"q4"}, 5},
}

var egogramLetterValues = map[string]float64{
	"a": 4,
	"b": 3,
	"c": 2,
	"d": 1,
	"e": 0,
}

type EgogramResult struct {
	Scores   map[EgoState]float64 `json:"scores"`
	Dominant EgoState             `json:"dominant"`
}

// Label returns the display name of an ego state.
func (s EgoState) Label() string {
	for _, e := range egoStates {
		if e.State == s {
			return e.Label
		}
	}
	return string(s)
}

func egoStateFor(questionID string) (EgoState, bool) {
	for _, e := range egoStates {
		for _, q := range e.Questions {
			if q == questionID {
				return e.State, true
			}
		}
	}
	return "", false
}

// CalculateEgogram turns option letters into ordinal values, sums them per
// ego state, normalizes each state and caps it at 10. The dominant state
// starts as Adult with score 0 and is replaced only by a strictly greater
// score, visiting states in priority order.
func CalculateEgogram(answers Answers) EgogramResult {
	raw := make(map[EgoState]float64, len(egoStates))
	for questionID, letter := range answers {
		state, ok := egoStateFor(questionID)
		if !ok {
			continue
		}
		raw[state] += egogramLetterValues[letter]
	}

	scores := make(map[EgoState]float64, len(egoStates))
	dominant, best := EgoAdult, 0.0
	for _, e := range egoStates {
		score := math.Min(math.Round(raw[e.State]*e.Multiplier), egoStateMaxNormalized)
		scores[e.State] = score
		if score > best {
			dominant, best = e.State, score
		}
	}

	return EgogramResult{Scores: scores, Dominant: dominant}
}
