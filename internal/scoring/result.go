package scoring

// Result is the outcome of one completed assessment. Exactly one of the
// per-kind fields is set.
type Result struct {
	Kind        Kind               `json:"kind"`
	Animal      *AnimalResult      `json:"animal,omitempty"`
	Egogram     *EgogramResult     `json:"egogram,omitempty"`
	Proactivity *ProactivityResult `json:"proactivity,omitempty"`
}

func bank(kind Kind) ([]Question, bool) {
	switch kind {
	case KindAnimalProfile:
		return animalBank, true
	case KindEgogram:
		return egogramBank, true
	case KindProactivity:
		return proactivityBank, true
	}
	return nil, false
}

// Score runs the scorer of kind against its built-in question bank.
func Score(kind Kind, answers Answers) (*Result, error) {
	questions, ok := bank(kind)
	if !ok {
		return nil, ErrUnknownKind
	}
	return ScoreWith(kind, answers, questions)
}

// ScoreWith runs the scorer of kind against an explicit bank. The egogram
// ignores the bank since its assignment table is fixed.
func ScoreWith(kind Kind, answers Answers, questions []Question) (*Result, error) {
	res := &Result{Kind: kind}
	switch kind {
	case KindAnimalProfile:
		r := CalculateAnimalProfile(answers, questions)
		res.Animal = &r
	case KindEgogram:
		r := CalculateEgogram(answers)
		res.Egogram = &r
	case KindProactivity:
		r := CalculateProactivity(answers, questions)
		res.Proactivity = &r
	default:
		return nil, ErrUnknownKind
	}
	return res, nil
}

// Dominant is the headline label: archetype, ego state or proactivity level.
func (r *Result) Dominant() string {
	switch {
	case r.Animal != nil:
		return string(r.Animal.DominantProfile)
	case r.Egogram != nil:
		return string(r.Egogram.Dominant)
	case r.Proactivity != nil:
		return r.Proactivity.Level
	}
	return ""
}

// Percentage is the headline 0-100 figure. For the egogram it is the
// dominant state's score scaled from 0-10.
func (r *Result) Percentage() float64 {
	switch {
	case r.Animal != nil:
		return r.Animal.PercentageScore
	case r.Egogram != nil:
		return r.Egogram.Scores[r.Egogram.Dominant] * 10
	case r.Proactivity != nil:
		return r.Proactivity.Percentage
	}
	return 0
}

// Degenerate reports NaN fields produced by empty or legacy inputs.
func (r *Result) Degenerate() bool {
	switch {
	case r.Animal != nil:
		return r.Animal.degenerate()
	case r.Proactivity != nil:
		return r.Proactivity.degenerate()
	}
	return false
}
