package session

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/questionbank"
	"github.com/abhisek/toeicz/internal/router"
	"github.com/abhisek/toeicz/internal/screen"
	"github.com/abhisek/toeicz/internal/screens/notice"
	"github.com/abhisek/toeicz/internal/screens/summary"
	sess "github.com/abhisek/toeicz/internal/session"
	"github.com/abhisek/toeicz/internal/ui/components"
	"github.com/abhisek/toeicz/internal/ui/layout"
)

// reviewTarget locates a recorded session to replay.
type reviewTarget struct {
	date  string
	index int
}

// SessionScreen runs one practice or review run.
type SessionScreen struct {
	deps   screen.Deps
	part   questionbank.Part
	review *reviewTarget

	state       *sess.State
	choice      components.MultiChoice
	last        sess.Answer
	feedback    bool
	quitConfirm bool
	saving      bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackInterceptor = (*SessionScreen)(nil)

// New creates a practice screen for part.
func New(deps screen.Deps, part questionbank.Part) *SessionScreen {
	return &SessionScreen{deps: deps, part: part}
}

// NewReview creates a screen replaying the index-th session of date.
func NewReview(deps screen.Deps, date string, index int) *SessionScreen {
	return &SessionScreen{deps: deps, review: &reviewTarget{date: date, index: index}}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *SessionScreen) Title() string {
	if s.state != nil {
		if s.state.Mode == sess.ModeReview {
			return s.state.Part.DisplayName() + " · Review"
		}
		return s.state.Part.DisplayName()
	}
	if s.review != nil {
		return "Review"
	}
	return s.part.DisplayName()
}

func (s *SessionScreen) InterceptsBack() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.state == nil || s.saving:
		return nil
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit practice"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback:
		label := "Next question"
		if sess.IsComplete(s.state) {
			label = "See results"
		}
		return []layout.KeyHint{{Key: "any key", Description: label}}
	}

	hints := []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
	}
	if s.state.Part.IsAudio() {
		hints = append(hints,
			layout.KeyHint{Key: "P", Description: "Play/Stop"},
			layout.KeyHint{Key: "R", Description: "Speed"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width, height, "Picking questions...")
	}
	if s.saving {
		return renderLoading(width, height, "Saving your results...")
	}
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.feedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case sessionSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// startSession selects questions off the event loop.
func (s *SessionScreen) startSession() tea.Cmd {
	engine := s.deps.Engine
	part, review := s.part, s.review
	return func() tea.Msg {
		ctx := context.Background()
		var (
			state *sess.State
			err   error
		)
		if review != nil {
			state, err = engine.Review(ctx, review.date, review.index)
		} else {
			state, err = engine.Start(ctx, part)
		}
		return sessionInitMsg{State: state, Err: err}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, sess.ErrEmptyBank):
		n := notice.New(s.Title(), fmt.Sprintf(
			"You have practiced every %s question today.\nCome back tomorrow for a fresh set!", s.part.DisplayName()))
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: n} }
	case errors.Is(msg.Err, sess.ErrNoReviewData), errors.Is(msg.Err, sess.ErrSessionNotFound):
		n := notice.New("Review", "No question data found for this session.")
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: n} }
	case msg.Err != nil:
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.state = msg.State
	s.part = msg.State.Part
	s.loadQuestion()
	return s, nil
}

func (s *SessionScreen) loadQuestion() {
	q, _, ok := s.state.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Options, q.Answer)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil || s.saving {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.stopSpeech()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.feedback {
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		return s.advance()
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "p", "P", "space":
		return s, s.toggleSpeech()
	case "r", "R":
		s.cycleRate()
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submitAnswer()
	}
	return s, cmd
}

// submitAnswer records the chosen option and shows feedback.
func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	_, idx, ok := s.state.Current()
	if !ok {
		return s, nil
	}

	s.stopSpeech()
	a, err := sess.RecordAnswer(s.state, idx, s.choice.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.last = a
	s.feedback = true
	return s, nil
}

// advance leaves feedback for the next question or saves the run.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	s.feedback = false
	if !sess.IsComplete(s.state) {
		s.loadQuestion()
		return s, nil
	}
	s.saving = true
	return s, s.finishSession()
}

func (s *SessionScreen) finishSession() tea.Cmd {
	engine, state := s.deps.Engine, s.state
	return func() tea.Msg {
		if _, err := engine.Finish(context.Background(), state); err != nil {
			return sessionSavedMsg{Err: err}
		}
		return sessionSavedMsg{Summary: sess.BuildSummary(state)}
	}
}

func (s *SessionScreen) handleSaved(msg sessionSavedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.errMsg = fmt.Sprintf("Could not save this session: %v", msg.Err)
		return s, nil
	}

	deps, part := s.deps, s.state.Part
	retry := func() screen.Screen { return New(deps, part) }
	results := summary.New(msg.Summary, retry)
	return s, tea.Batch(
		func() tea.Msg { return screen.HistoryChangedMsg{} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} },
	)
}

// toggleSpeech plays the current question's script, or stops playback.
func (s *SessionScreen) toggleSpeech() tea.Cmd {
	n := s.deps.Narrator
	if n == nil || !s.state.Part.IsAudio() {
		return nil
	}
	if n.State() == narration.Speaking {
		n.Stop()
		return nil
	}

	q, _, ok := s.state.Current()
	if !ok {
		return nil
	}
	wait, err := n.Start(narration.Text(s.state.Part, q))
	if err != nil {
		return nil
	}
	return func() tea.Msg { return screen.SpeechDoneMsg{Event: wait()} }
}

func (s *SessionScreen) stopSpeech() {
	if s.deps.Narrator != nil {
		s.deps.Narrator.Stop()
	}
}

func (s *SessionScreen) cycleRate() {
	if n := s.deps.Narrator; n != nil && s.state.Part.IsAudio() {
		n.SetRate(n.Rate().Next())
	}
}
