package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cornish/textivus-reader/textview"
)

// TimerTickMsg fires a scheduled task. Gen invalidates ticks that were in
// flight when the task was removed or re-armed.
type TimerTickMsg struct {
	Token textview.TimerToken
	Gen   uint64
}

type timerTask struct {
	run    func()
	period time.Duration
	gen    uint64
}

// Scheduler runs timer tasks on the bubbletea event loop. Registrations only
// queue commands; the model drains them into its Update result.
type Scheduler struct {
	next    textview.TimerToken
	gen     uint64
	tasks   map[textview.TimerToken]*timerTask
	pending []tea.Cmd

	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[textview.TimerToken]*timerTask),
		tick:  tea.Tick,
	}
}

// AddTimerTask registers task to run every period until removed.
func (s *Scheduler) AddTimerTask(task func(), period time.Duration) textview.TimerToken {
	s.next++
	token := s.next
	t := &timerTask{run: task, period: period}
	s.tasks[token] = t
	s.arm(token, t)
	return token
}

// RemoveTimerTask cancels a registration. Ticks already queued for it are
// dropped when they arrive.
func (s *Scheduler) RemoveTimerTask(token textview.TimerToken) {
	delete(s.tasks, token)
}

func (s *Scheduler) arm(token textview.TimerToken, t *timerTask) {
	s.gen++
	t.gen = s.gen
	gen := t.gen
	s.pending = append(s.pending, s.tick(t.period, func(time.Time) tea.Msg {
		return TimerTickMsg{Token: token, Gen: gen}
	}))
}

// Handle runs the task a tick belongs to and re-arms it. It reports whether
// the tick was live.
func (s *Scheduler) Handle(msg TimerTickMsg) bool {
	t, ok := s.tasks[msg.Token]
	if !ok || t.gen != msg.Gen {
		return false
	}
	t.run()
	// The task may have removed itself.
	if s.tasks[msg.Token] == t {
		s.arm(msg.Token, t)
	}
	return true
}

// Active returns the number of registered tasks.
func (s *Scheduler) Active() int {
	return len(s.tasks)
}

// Drain returns the queued tick commands as one command, nil when none.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
