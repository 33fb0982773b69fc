package console

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bugtrack/internal/client"
	"bugtrack/internal/domain/bug"
)

// Fallback messages shown when the server response carries no
// structured error (transport failures included).
const (
	fallbackFetch  = "Failed to fetch bugs. Please try again."
	fallbackCreate = "Failed to create bug. Please try again."
	fallbackUpdate = "Failed to update bug status. Please try again."
	fallbackDelete = "Failed to delete bug. Please try again."
)

// API is the slice of the HTTP client the console consumes; tests
// substitute a fake.
type API interface {
	ListBugs(ctx context.Context) ([]bug.Bug, error)
	CreateBug(ctx context.Context, req client.CreateBugRequest) (bug.Bug, error)
	UpdateBug(ctx context.Context, id string, req client.UpdateBugRequest) (bug.Bug, error)
	DeleteBug(ctx context.Context, id string) error
}

type Options struct {
	RefreshInterval time.Duration
}

// fetchState is the list-fetch state machine: idle until the first
// load, then loading -> loaded | errored.
type fetchState int

const (
	stateIdle fetchState = iota
	stateLoading
	stateLoaded
	stateErrored
)

type viewMode int

const (
	modeList viewMode = iota
	modeForm
)

// form focus slots, in tab order.
const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusSubmit
	focusCount
)

type formState struct {
	title         string
	description   string
	priorityIndex int
	focus         int
	errorMsg      string
}

// Model owns the cached bug list and mediates every mutation. The
// cache is invalidated by a full refetch after create; update merges
// the server's record in place; delete removes by id on success only.
type Model struct {
	ctx             context.Context
	api             API
	refreshInterval time.Duration

	mode  viewMode
	state fetchState

	bugs          []bug.Bug
	selectedIndex int
	listError     string
	status        string

	form formState

	// submitting guards the create form: repeated submits while a
	// create is in flight collapse to exactly one request.
	submitting bool
	// mutating blocks a second update/delete until the prior one
	// resolves.
	mutating bool
}

type bugsLoadedMsg struct {
	items []bug.Bug
	err   error
}

type bugCreatedMsg struct {
	created bug.Bug
	err     error
}

type statusUpdatedMsg struct {
	id      string
	updated bug.Bug
	err     error
}

type bugDeletedMsg struct {
	id  string
	err error
}

type tickMsg struct{}

func NewModel(ctx context.Context, api API, options Options) *Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Model{
		ctx:             ctx,
		api:             api,
		refreshInterval: interval,
		mode:            modeList,
		state:           stateIdle,
		status:          "starting",
	}
}

func (m *Model) Init() tea.Cmd {
	m.state = stateLoading
	return tea.Batch(m.loadBugsCmd(), m.tickCmd())
}

func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		// Auto-refresh only while nothing is in flight, so a pending
		// mutation is never raced by a refetch.
		if m.mode == modeList && !m.submitting && !m.mutating && m.state != stateLoading {
			return m, tea.Batch(m.loadBugsCmd(), m.tickCmd())
		}
		return m, m.tickCmd()

	case bugsLoadedMsg:
		if msg.err != nil {
			m.state = stateErrored
			m.listError = client.Message(msg.err, fallbackFetch)
			return m, nil
		}
		m.state = stateLoaded
		m.listError = ""
		m.bugs = msg.items
		m.clampSelection()
		return m, nil

	case bugCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.form.errorMsg = client.Message(msg.err, fallbackCreate)
			return m, nil
		}
		// Success: clear the form and refetch the whole list so the
		// cache reflects authoritative order and state.
		m.form = formState{}
		m.mode = modeList
		m.state = stateLoading
		m.status = "created " + msg.created.Title
		return m, m.loadBugsCmd()

	case statusUpdatedMsg:
		m.mutating = false
		if msg.err != nil {
			m.status = client.Message(msg.err, fallbackUpdate)
			return m, nil
		}
		// Incremental merge: replace the one record with the server's
		// representation, no refetch.
		for i := range m.bugs {
			if m.bugs[i].ID == msg.id {
				m.bugs[i] = msg.updated
				break
			}
		}
		m.status = "status set to " + string(msg.updated.Status)
		return m, nil

	case bugDeletedMsg:
		m.mutating = false
		if msg.err != nil {
			// The record stays visible; no optimistic removal.
			m.status = client.Message(msg.err, fallbackDelete)
			return m, nil
		}
		kept := m.bugs[:0]
		for _, b := range m.bugs {
			if b.ID != msg.id {
				kept = append(kept, b)
			}
		}
		m.bugs = kept
		m.clampSelection()
		m.status = "bug deleted"
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.bugs)-1 {
			m.selectedIndex++
		}
	case "r":
		// Manual retry affordance for transport failures.
		if !m.submitting && !m.mutating {
			m.state = stateLoading
			return m, m.loadBugsCmd()
		}
	case "n":
		m.mode = modeForm
		m.form = formState{}
	case "s":
		return m, m.cycleSelectedStatus()
	case "d":
		return m, m.deleteSelected()
	}
	return m, nil
}

// cycleSelectedStatus issues an update moving the selected bug to the
// next status in lifecycle order.
func (m *Model) cycleSelectedStatus() tea.Cmd {
	if m.mutating || m.selectedIndex >= len(m.bugs) {
		return nil
	}

	selected := m.bugs[m.selectedIndex]
	statuses := bug.Statuses()
	next := statuses[0]
	for i, status := range statuses {
		if status == selected.Status {
			next = statuses[(i+1)%len(statuses)]
			break
		}
	}

	m.mutating = true
	return m.updateStatusCmd(selected.ID, string(next))
}

func (m *Model) deleteSelected() tea.Cmd {
	if m.mutating || m.selectedIndex >= len(m.bugs) {
		return nil
	}

	m.mutating = true
	return m.deleteBugCmd(m.bugs[m.selectedIndex].ID)
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if !m.submitting {
			m.mode = modeList
			m.form = formState{}
		}
		return m, nil
	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % focusCount
		return m, nil
	case "shift+tab", "up":
		m.form.focus = (m.form.focus + focusCount - 1) % focusCount
		return m, nil
	case "left":
		if m.form.focus == focusPriority && m.form.priorityIndex > 0 {
			m.form.priorityIndex--
		}
		return m, nil
	case "right":
		if m.form.focus == focusPriority && m.form.priorityIndex < len(bug.Priorities())-1 {
			m.form.priorityIndex++
		}
		return m, nil
	case "enter":
		if m.form.focus == focusSubmit {
			return m, m.submitForm()
		}
		m.form.focus = (m.form.focus + 1) % focusCount
		return m, nil
	case "backspace":
		switch m.form.focus {
		case focusTitle:
			m.form.title = trimLastRune(m.form.title)
		case focusDescription:
			m.form.description = trimLastRune(m.form.description)
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		switch m.form.focus {
		case focusTitle:
			m.form.title += text
		case focusDescription:
			m.form.description += text
		}
		// Typing clears the previous submit error.
		m.form.errorMsg = ""
	}
	return m, nil
}

// submitForm runs the shared validator locally for fast feedback, then
// issues the create. While a create is in flight, further submits are
// dropped so rapid repeated triggers produce exactly one request.
func (m *Model) submitForm() tea.Cmd {
	if m.submitting {
		return nil
	}

	priority := string(bug.Priorities()[m.form.priorityIndex])
	result := bug.Validate(bug.Candidate{
		Title:       m.form.title,
		Description: m.form.description,
		Priority:    priority,
	})
	if err := result.Err(); err != nil {
		var validationErr *bug.ValidationError
		if errors.As(err, &validationErr) {
			m.form.errorMsg = validationErr.PrimaryError()
		} else {
			m.form.errorMsg = err.Error()
		}
		return nil
	}

	m.submitting = true
	m.form.errorMsg = ""
	return m.createBugCmd(client.CreateBugRequest{
		Title:       m.form.title,
		Description: m.form.description,
		Priority:    priority,
	})
}

func (m *Model) loadBugsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.api.ListBugs(m.ctx)
		return bugsLoadedMsg{items: items, err: err}
	}
}

func (m *Model) createBugCmd(req client.CreateBugRequest) tea.Cmd {
	return func() tea.Msg {
		created, err := m.api.CreateBug(m.ctx, req)
		return bugCreatedMsg{created: created, err: err}
	}
}

func (m *Model) updateStatusCmd(id string, status string) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.api.UpdateBug(m.ctx, id, client.UpdateBugRequest{Status: &status})
		return statusUpdatedMsg{id: id, updated: updated, err: err}
	}
}

func (m *Model) deleteBugCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.api.DeleteBug(m.ctx, id)
		return bugDeletedMsg{id: id, err: err}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) clampSelection() {
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
	if m.selectedIndex >= len(m.bugs) && len(m.bugs) > 0 {
		m.selectedIndex = len(m.bugs) - 1
	}
	if len(m.bugs) == 0 {
		m.selectedIndex = 0
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
