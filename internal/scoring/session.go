package scoring

import "time"

type SessionState string

const (
	SessionUnanswered SessionState = "unanswered"
	SessionAnswering  SessionState = "answering"
	SessionCompleted  SessionState = "completed"
	SessionScored     SessionState = "scored"
)

// Session walks one person through one assessment, one question at a time.
// It is a plain value: callers load it, apply a transition and store it back.
type Session struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Kind        Kind         `json:"kind"`
	Index       int          `json:"index"`
	Answers     Answers      `json:"answers"`
	State       SessionState `json:"state"`
	Result      *Result      `json:"result,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

func NewSession(id, userID string, kind Kind, now time.Time) (*Session, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return &Session{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Answers:   Answers{},
		State:     SessionUnanswered,
		StartedAt: now,
	}, nil
}

func (s *Session) questions() []Question {
	q, _ := bank(s.Kind)
	return q
}

// Total is the number of questions in the session's bank.
func (s *Session) Total() int {
	return len(s.questions())
}

// Current returns a copy of the question at the cursor.
func (s *Session) Current() Question {
	qs := s.questions()
	return copyQuestions(qs[s.Index : s.Index+1])[0]
}

func (s *Session) open() bool {
	return s.State == SessionUnanswered || s.State == SessionAnswering
}

// Answer records the choice for the current question, replacing any
// earlier choice.
func (s *Session) Answer(questionID, optionID string) error {
	if !s.open() {
		return ErrInvalidTransition
	}
	current := s.questions()[s.Index]
	if current.ID != questionID {
		return ErrQuestionMismatch
	}
	if _, ok := current.option(optionID); !ok {
		return ErrUnknownOption
	}
	if s.Answers == nil {
		s.Answers = Answers{}
	}
	s.Answers[questionID] = optionID
	s.State = SessionAnswering
	return nil
}

// Next advances the cursor. On the last question it completes the session
// instead of moving further.
func (s *Session) Next() error {
	if !s.open() {
		return ErrInvalidTransition
	}
	current := s.questions()[s.Index]
	if s.Answers[current.ID] == "" {
		return ErrNoAnswer
	}
	if s.Index == s.Total()-1 {
		s.State = SessionCompleted
		return nil
	}
	s.Index++
	return nil
}

func (s *Session) Previous() error {
	if !s.open() || s.Index == 0 {
		return ErrInvalidTransition
	}
	s.Index--
	return nil
}

// Score computes and stores the result of a completed session.
func (s *Session) Score(now time.Time) (*Result, error) {
	switch s.State {
	case SessionScored:
		return s.Result, nil
	case SessionCompleted:
	default:
		return nil, ErrSessionNotComplete
	}
	res, err := ScoreWith(s.Kind, s.Answers, s.questions())
	if err != nil {
		return nil, err
	}
	s.Result = res
	s.State = SessionScored
	s.CompletedAt = &now
	return res, nil
}

// Progress is the share of questions answered, 0-100.
func (s *Session) Progress() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(len(s.Answers)) / float64(total) * 100
}

// Retake discards everything and starts over with a fresh answer map.
func (s *Session) Retake(id string, now time.Time) *Session {
	fresh, _ := NewSession(id, s.UserID, s.Kind, now)
	return fresh
}
