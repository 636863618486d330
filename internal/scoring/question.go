package scoring

// Question is a fixed prompt with its options. Banks are static and
// handed out as deep copies so callers cannot mutate them.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Option carries the per-assessment payload: trait weights for the animal
// profile, a point value for proactivity, nothing for the egogram (its
// value comes from the option letter).
type Option struct {
	ID     string            `json:"id"`
	Text   string            `json:"text"`
	Traits map[Trait]float64 `json:"traits,omitempty"`
	Value  *float64          `json:"value,omitempty"`
}

func (q Question) option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

func findQuestion(questions []Question, id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func copyQuestions(src []Question) []Question {
	out := make([]Question, len(src))
	for i, q := range src {
		opts := make([]Option, len(q.Options))
		for j, o := range q.Options {
			cp := o
			if o.Traits != nil {
				cp.Traits = make(map[Trait]float64, len(o.Traits))
				for t, w := range o.Traits {
					cp.Traits[t] = w
				}
			}
			if o.Value != nil {
				v := *o.Value
				cp.Value = &v
			}
			opts[j] = cp
		}
		out[i] = Question{ID: q.ID, Prompt: q.Prompt, Options: opts}
	}
	return out
}

// Questions returns a copy of the bank for the given kind.
func Questions(kind Kind) ([]Question, error) {
	switch kind {
	case KindAnimalProfile:
		return AnimalQuestions(), nil
	case KindEgogram:
		return EgogramQuestions(), nil
	case KindProactivity:
		return ProactivityQuestions(), nil
	}
	return nil, ErrUnknownKind
}

func points(v float64) *float64 {
	return &v
}
