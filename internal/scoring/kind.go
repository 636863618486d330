package scoring

import "errors"

// Kind identifies one of the fixed assessments.
type Kind string

const (
	KindAnimalProfile Kind = "animal_profile"
	KindEgogram       Kind = "egogram"
	KindProactivity   Kind = "proactivity"
)

var (
	ErrUnknownKind        = errors.New("unknown assessment kind")
	ErrNoAnswer           = errors.New("current question has no answer")
	ErrInvalidTransition  = errors.New("invalid session transition")
	ErrQuestionMismatch   = errors.New("answer does not belong to the current question")
	ErrUnknownOption      = errors.New("unknown option for question")
	ErrSessionNotComplete = errors.New("session has unanswered questions")
)

// Kinds returns every supported assessment kind in display order.
func Kinds() []Kind {
	return []Kind{KindAnimalProfile, KindEgogram, KindProactivity}
}

func (k Kind) Valid() bool {
	switch k {
	case KindAnimalProfile, KindEgogram, KindProactivity:
		return true
	}
	return false
}

// Title is the human readable assessment name.
func (k Kind) Title() string {
	switch k {
	case KindAnimalProfile:
		return "Perfil Comportamental (Animais)"
	case KindEgogram:
		return "Egograma"
	case KindProactivity:
		return "Proatividade"
	}
	return string(k)
}

// Answers maps a question id to the chosen option id.
type Answers map[string]string
