package tracker

import (
	"sync"
	"time"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/summary"
)

// EditTarget identifies the slot (and, for updates, the activity) being edited
type EditTarget struct {
	SlotKey    string
	ActivityID string // empty for a new activity
}

// ConfirmDialog is a pending yes/no question, e.g. before a delete
type ConfirmDialog struct {
	Message   string
	OnConfirm func()
}

// InteractionState captures the transient UI state of the track view
type InteractionState struct {
	Cursor        int
	Editing       *EditTarget
	Input         string
	EditingName   bool
	NameInput     string
	ConfirmDialog *ConfirmDialog
	ShowHelp      bool
	Paused        bool
	Message       string
}

// SummaryState tracks the summarization capability and any cached result
type SummaryState struct {
	Status           summary.Availability
	DownloadProgress float64 // -1 when no download is running
	Pending          bool
	Current          *activity.Summary
}

// StateManager manages the track view state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	selectedDate time.Time
	autoRefresh  bool
	userName     string

	interaction InteractionState
	summaryInfo SummaryState
}

// NewStateManager creates state for a view opened on the given day
func NewStateManager(today time.Time, autoRefresh bool, userName string) *StateManager {
	return &StateManager{
		selectedDate: today,
		autoRefresh:  autoRefresh,
		userName:     userName,
		summaryInfo: SummaryState{
			Status:           summary.AvailabilityChecking,
			DownloadProgress: -1,
		},
	}
}

// SelectedDate returns the day the view is showing
func (sm *StateManager) SelectedDate() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.selectedDate
}

// SetSelectedDate changes the viewed day
func (sm *StateManager) SetSelectedDate(date time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.selectedDate = date
}

// AutoRefresh reports whether periodic summary regeneration is on
func (sm *StateManager) AutoRefresh() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.autoRefresh
}

// SetAutoRefresh toggles periodic summary regeneration
func (sm *StateManager) SetAutoRefresh(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.autoRefresh = enabled
}

// UserName returns the display name
func (sm *StateManager) UserName() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.userName
}

// SetUserName updates the display name
func (sm *StateManager) SetUserName(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.userName = name
}

// Interaction returns a copy of the current interaction state
func (sm *StateManager) Interaction() InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.interaction
}

// UpdateInteraction updates interaction state under the lock
func (sm *StateManager) UpdateInteraction(updateFunc func(*InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	updateFunc(&sm.interaction)
}

// Summary returns a copy of the current summary state
func (sm *StateManager) Summary() SummaryState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.summaryInfo
}

// UpdateSummary updates summary state under the lock
func (sm *StateManager) UpdateSummary(updateFunc func(*SummaryState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	updateFunc(&sm.summaryInfo)
}
