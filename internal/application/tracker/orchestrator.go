package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/core/timeline"
	"github.com/quarterlog/quarterlog/internal/data/store"
	"github.com/quarterlog/quarterlog/internal/presentation/display"
	"github.com/quarterlog/quarterlog/internal/presentation/interaction"
	"github.com/quarterlog/quarterlog/internal/summary"
	"github.com/quarterlog/quarterlog/internal/util"
)

type summaryResult struct {
	dateKey string
	result  activity.Summary
	err     error
}

// Orchestrator owns the live track view: it wires the activity store, the
// timeline builder, the summarization service and the renderer together and
// drives them from a single event loop.
type Orchestrator struct {
	config *Config

	fileStore *store.FileStore
	doc       store.Document
	acts      *activity.Store
	builder   *timeline.Builder
	service   summary.Service
	state     *StateManager
	display   *display.TerminalDisplay

	summaryDone chan summaryResult
}

// NewOrchestrator loads persisted state and assembles the track view
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fileStore, err := store.NewFileStore(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}
	doc := fileStore.Load()

	builder, err := timeline.NewBuilder(config.StartHour, config.TotalSlots)
	if err != nil {
		return nil, err
	}

	today := util.GetTimeProvider().Now()
	state := NewStateManager(today, doc.AutoRefreshEnabled(), doc.DisplayName())
	if cached, ok := doc.SummaryFor(activity.DateKey(today)); ok {
		state.UpdateSummary(func(ss *SummaryState) {
			ss.Current = &cached
		})
	}

	return &Orchestrator{
		config:    config,
		fileStore: fileStore,
		doc:       doc,
		acts:      activity.NewStore(doc.Activities),
		builder:   builder,
		service: summary.NewOllamaClient(
			config.ModelHost, config.Model, config.SummaryStyle, config.SummaryTimeout),
		state:       state,
		display:     display.NewTerminalDisplay(&display.DisplayConfig{TimeFormat: config.TimeFormat}),
		summaryDone: make(chan summaryResult, 1),
	}, nil
}

// Run drives the track view until the context is cancelled or the user quits
func (o *Orchestrator) Run(ctx context.Context) error {
	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	watcher, err := store.NewWatcher(o.fileStore.Path())
	if err != nil {
		util.LogWarnf("File watching disabled: %v", err)
	} else {
		defer watcher.Close()
	}
	var fileEvents <-chan store.FileEvent
	if watcher != nil {
		fileEvents = watcher.Events()
	}

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	go o.checkCapability(ctx)

	clockTicker := time.NewTicker(o.config.ClockInterval)
	defer clockTicker.Stop()
	autoTicker := time.NewTicker(o.config.AutoRefreshInterval)
	defer autoTicker.Stop()

	o.render()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-clockTicker.C:
			if !o.state.Interaction().Paused {
				o.render()
			}

		case <-autoTicker.C:
			o.maybeAutoSummarize(ctx)

		case <-fileEvents:
			o.reloadFromDisk()
			o.render()

		case ev := <-keyboard.Events():
			if !o.handleKey(ctx, ev) {
				return nil
			}
			o.render()

		case res := <-o.summaryDone:
			o.applySummaryResult(res)
			o.render()
		}
	}
}

// reloadFromDisk picks up external edits to the store file
func (o *Orchestrator) reloadFromDisk() {
	doc := o.fileStore.Load()
	o.doc = doc
	o.acts.Replace(doc.Activities)
	o.state.SetAutoRefresh(doc.AutoRefreshEnabled())
	o.state.SetUserName(doc.DisplayName())
	util.LogDebug("Reloaded store after external change")
}

// persist writes the whole document back to disk
func (o *Orchestrator) persist() {
	o.doc.Activities = o.acts.Snapshot()
	enabled := o.state.AutoRefresh()
	o.doc.AutoRefresh = &enabled
	o.doc.UserName = o.state.UserName()

	if err := o.fileStore.Save(o.doc); err != nil {
		util.LogErrorf("Failed to save: %v", err)
		o.state.UpdateInteraction(func(is *InteractionState) {
			is.Message = util.ColorRed + "save failed" + util.ColorReset
		})
	}
}

// checkCapability probes the model backend and pulls the model when it is
// installable but not yet present, mirroring first use on a fresh machine
func (o *Orchestrator) checkCapability(ctx context.Context) {
	status := o.service.CheckAvailability(ctx)
	o.state.UpdateSummary(func(ss *SummaryState) {
		ss.Status = status
	})

	if status != summary.AvailabilityDownloadable {
		return
	}

	o.state.UpdateSummary(func(ss *SummaryState) {
		ss.Status = summary.AvailabilityDownloading
		ss.DownloadProgress = 0
	})

	err := o.service.Download(ctx, func(fraction float64) {
		o.state.UpdateSummary(func(ss *SummaryState) {
			ss.DownloadProgress = fraction
		})
	})

	final := summary.AvailabilityUnavailable
	if err != nil {
		util.LogWarnf("Model download failed: %v", err)
	} else {
		final = o.service.CheckAvailability(ctx)
	}
	o.state.UpdateSummary(func(ss *SummaryState) {
		ss.Status = final
		ss.DownloadProgress = -1
	})
}

// generateSummary kicks off asynchronous summarization for the viewed day.
// At most one generation runs at a time.
func (o *Orchestrator) generateSummary(ctx context.Context) {
	ss := o.state.Summary()
	if ss.Pending {
		o.setMessage("summary already running")
		return
	}
	if ss.Status != summary.AvailabilityAvailable {
		o.setMessage("AI is not available")
		return
	}

	date := o.state.SelectedDate()
	acts := o.acts.ForDate(date)
	if len(acts) == 0 {
		o.setMessage("nothing to summarize")
		return
	}

	req := summary.Request{
		Lines:       activity.ChronologicalLines(acts),
		DateLabel:   o.dateLabel(date),
		ActiveHours: activity.ActiveHours(acts),
	}
	dateKey := activity.DateKey(date)

	o.state.UpdateSummary(func(s *SummaryState) {
		s.Pending = true
	})

	go func() {
		genCtx, cancel := context.WithTimeout(ctx, o.config.SummaryTimeout)
		defer cancel()
		result, err := o.service.Summarize(genCtx, req)
		o.summaryDone <- summaryResult{dateKey: dateKey, result: result, err: err}
	}()
}

func (o *Orchestrator) applySummaryResult(res summaryResult) {
	o.state.UpdateSummary(func(ss *SummaryState) {
		ss.Pending = false
	})

	if res.err != nil {
		util.LogWarnf("Summarization failed: %v", res.err)
		o.setMessage("summary failed")
		return
	}

	// The user may have navigated away while generating; cache it either way
	// but only show it when the viewed day still matches
	o.doc.PutSummary(res.dateKey, res.result)
	if activity.DateKey(o.state.SelectedDate()) == res.dateKey {
		sum := res.result
		o.state.UpdateSummary(func(ss *SummaryState) {
			ss.Current = &sum
		})
	}
	o.persist()
}

// maybeAutoSummarize regenerates today's summary on the refresh timer
func (o *Orchestrator) maybeAutoSummarize(ctx context.Context) {
	if !o.state.AutoRefresh() {
		return
	}
	ss := o.state.Summary()
	if ss.Pending || ss.Status != summary.AvailabilityAvailable {
		return
	}
	date := o.state.SelectedDate()
	if !o.isToday(date) || len(o.acts.ForDate(date)) == 0 {
		return
	}
	o.generateSummary(ctx)
}

// changeDay moves the view by a whole number of days (0 jumps to today)
func (o *Orchestrator) changeDay(delta int) {
	var date time.Time
	if delta == 0 {
		date = util.GetTimeProvider().Now()
	} else {
		date = o.state.SelectedDate().AddDate(0, 0, delta)
	}
	o.state.SetSelectedDate(date)

	var cached *activity.Summary
	if sum, ok := o.doc.SummaryFor(activity.DateKey(date)); ok {
		cached = &sum
	}
	o.state.UpdateSummary(func(ss *SummaryState) {
		ss.Current = cached
	})
	o.state.UpdateInteraction(func(is *InteractionState) {
		is.Message = ""
	})
}

func (o *Orchestrator) isToday(date time.Time) bool {
	return activity.SameDay(date, util.GetTimeProvider().Now())
}

func (o *Orchestrator) dateLabel(date time.Time) string {
	if o.isToday(date) {
		return "today"
	}
	return date.Format("January 2")
}

func (o *Orchestrator) setMessage(msg string) {
	o.state.UpdateInteraction(func(is *InteractionState) {
		is.Message = msg
	})
}

// handleKey processes one keyboard event; false means quit
func (o *Orchestrator) handleKey(ctx context.Context, ev interaction.KeyEvent) bool {
	is := o.state.Interaction()

	switch {
	case is.ConfirmDialog != nil:
		o.handleConfirmKey(ev, is.ConfirmDialog)
	case is.EditingName:
		o.handleNameKey(ev)
	case is.Editing != nil:
		return o.handleEditKey(ev)
	default:
		return o.handleNavigationKey(ctx, ev)
	}
	return true
}

func (o *Orchestrator) handleConfirmKey(ev interaction.KeyEvent, dialog *ConfirmDialog) {
	confirmed := ev.Type == interaction.KeyChar && (ev.Key == 'y' || ev.Key == 'Y')
	o.state.UpdateInteraction(func(is *InteractionState) {
		is.ConfirmDialog = nil
	})
	if confirmed {
		dialog.OnConfirm()
	}
}

func (o *Orchestrator) handleNameKey(ev interaction.KeyEvent) {
	switch ev.Type {
	case interaction.KeyEnter:
		var name string
		o.state.UpdateInteraction(func(is *InteractionState) {
			name = strings.TrimSpace(is.NameInput)
			is.EditingName = false
			is.NameInput = ""
		})
		if name != "" {
			o.state.SetUserName(name)
		}
		o.persist()
	case interaction.KeyEscape:
		o.state.UpdateInteraction(func(is *InteractionState) {
			is.EditingName = false
			is.NameInput = ""
		})
	case interaction.KeyBackspace:
		o.state.UpdateInteraction(func(is *InteractionState) {
			if runes := []rune(is.NameInput); len(runes) > 0 {
				is.NameInput = string(runes[:len(runes)-1])
			}
		})
	case interaction.KeyChar:
		o.state.UpdateInteraction(func(is *InteractionState) {
			if len([]rune(is.NameInput)) < 40 {
				is.NameInput += string(ev.Key)
			}
		})
	}
}

func (o *Orchestrator) handleEditKey(ev interaction.KeyEvent) bool {
	switch ev.Type {
	case interaction.KeyCtrlC:
		return false
	case interaction.KeyEnter:
		o.commitEdit()
	case interaction.KeyEscape:
		o.cancelEdit()
	case interaction.KeyBackspace:
		o.state.UpdateInteraction(func(is *InteractionState) {
			if runes := []rune(is.Input); len(runes) > 0 {
				is.Input = string(runes[:len(runes)-1])
			}
		})
	case interaction.KeyUp, interaction.KeyDown:
		// Moving away from the row saves non-empty text, like losing focus
		o.commitEdit()
		o.moveCursor(map[interaction.KeyType]int{interaction.KeyUp: -1, interaction.KeyDown: 1}[ev.Type])
	case interaction.KeyChar:
		o.state.UpdateInteraction(func(is *InteractionState) {
			if len([]rune(is.Input)) < activity.MaxDescriptionChars {
				is.Input += string(ev.Key)
			}
		})
	}
	return true
}

func (o *Orchestrator) commitEdit() {
	is := o.state.Interaction()
	if is.Editing == nil {
		return
	}
	text := strings.TrimSpace(is.Input)
	target := *is.Editing

	o.state.UpdateInteraction(func(s *InteractionState) {
		s.Editing = nil
		s.Input = ""
	})

	if text == "" {
		return
	}

	if target.ActivityID != "" {
		if !o.acts.Update(target.ActivityID, text) {
			util.LogWarnf("Edited activity %s no longer exists", target.ActivityID)
			return
		}
	} else {
		if _, err := o.acts.Add(text, target.SlotKey, o.state.SelectedDate()); err != nil {
			util.LogWarnf("Failed to add activity: %v", err)
			o.setMessage("could not add activity")
			return
		}
	}
	o.persist()
}

func (o *Orchestrator) cancelEdit() {
	o.state.UpdateInteraction(func(is *InteractionState) {
		is.Editing = nil
		is.Input = ""
	})
}

func (o *Orchestrator) handleNavigationKey(ctx context.Context, ev interaction.KeyEvent) bool {
	switch ev.Type {
	case interaction.KeyCtrlC:
		return false
	case interaction.KeyUp:
		o.moveCursor(-1)
		return true
	case interaction.KeyDown:
		o.moveCursor(1)
		return true
	case interaction.KeyLeft:
		o.changeDay(-1)
		return true
	case interaction.KeyRight:
		o.changeDay(1)
		return true
	case interaction.KeyEnter:
		o.startEdit(false)
		return true
	case interaction.KeyEscape:
		o.state.UpdateInteraction(func(is *InteractionState) {
			is.ShowHelp = false
			is.Message = ""
		})
		return true
	}

	if ev.Type != interaction.KeyChar {
		return true
	}

	switch ev.Key {
	case 'q':
		return false
	case 'k':
		o.moveCursor(-1)
	case 'j':
		o.moveCursor(1)
	case '[':
		o.changeDay(-1)
	case ']':
		o.changeDay(1)
	case 't':
		o.changeDay(0)
	case 'a':
		o.startEdit(true)
	case 'e':
		o.startEdit(false)
	case 'd':
		o.requestDelete()
	case 'g':
		o.generateSummary(ctx)
	case 'r':
		o.state.SetAutoRefresh(!o.state.AutoRefresh())
		o.persist()
	case 'u':
		name := o.state.UserName()
		o.state.UpdateInteraction(func(is *InteractionState) {
			is.EditingName = true
			is.NameInput = name
		})
	case 'p':
		o.state.UpdateInteraction(func(is *InteractionState) {
			is.Paused = !is.Paused
		})
	case 'h', '?':
		o.state.UpdateInteraction(func(is *InteractionState) {
			is.ShowHelp = !is.ShowHelp
		})
	}
	return true
}

func (o *Orchestrator) moveCursor(delta int) {
	max := o.config.TotalSlots - 1
	o.state.UpdateInteraction(func(is *InteractionState) {
		is.Cursor += delta
		if is.Cursor < 0 {
			is.Cursor = 0
		}
		if is.Cursor > max {
			is.Cursor = max
		}
		is.Message = ""
	})
}

// startEdit opens the inline editor on the cursor slot. With addNew, or on an
// empty slot, it creates a fresh activity; otherwise it edits the slot's
// first activity in place.
func (o *Orchestrator) startEdit(addNew bool) {
	sv, ok := o.cursorSlot()
	if !ok {
		return
	}

	target := EditTarget{SlotKey: sv.Slot.FullTime}
	input := ""
	if !addNew && len(sv.Activities) > 0 {
		target.ActivityID = sv.Activities[0].ID
		input = sv.Activities[0].Description
	}

	o.state.UpdateInteraction(func(is *InteractionState) {
		is.Editing = &target
		is.Input = input
		is.Message = ""
	})
}

func (o *Orchestrator) requestDelete() {
	sv, ok := o.cursorSlot()
	if !ok || len(sv.Activities) == 0 {
		return
	}

	act := sv.Activities[0]
	id := act.ID
	dialog := &ConfirmDialog{
		Message: fmt.Sprintf("Delete %q?", util.TruncateDisplay(act.Description, 40)),
		OnConfirm: func() {
			if o.acts.Delete(id) {
				o.persist()
			}
		},
	}
	o.state.UpdateInteraction(func(is *InteractionState) {
		is.ConfirmDialog = dialog
	})
}

// cursorSlot resolves the slot view currently under the cursor
func (o *Orchestrator) cursorSlot() (timeline.SlotView, bool) {
	view := o.buildView()
	cursor := o.state.Interaction().Cursor
	if cursor < 0 || cursor >= len(view.Slots) {
		return timeline.SlotView{}, false
	}
	return view.Slots[cursor], true
}

func (o *Orchestrator) buildView() timeline.DayView {
	date := o.state.SelectedDate()
	acts := o.acts.ForDate(date)

	var now time.Time
	if o.isToday(date) {
		now = util.GetTimeProvider().Now()
	}
	return o.builder.BuildDay(acts, now)
}

func (o *Orchestrator) render() {
	view := o.buildView()
	now := util.GetTimeProvider().Now()
	date := o.state.SelectedDate()
	is := o.state.Interaction()
	ss := o.state.Summary()

	vs := display.ViewState{
		DateLabel: date.Format("Monday, January 2"),
		IsToday:   o.isToday(date),
		UserName:  o.state.UserName(),
		Greeting:  greeting(now.Hour()),
		Clock:     util.FormatClock(now),

		Cursor:      is.Cursor,
		EditingName: is.EditingName,
		NameInput:   is.NameInput,
		ShowHelp:    is.ShowHelp,
		Message:     is.Message,

		AIStatus:         ss.Status,
		DownloadProgress: ss.DownloadProgress,
		SummaryPending:   ss.Pending,
		AutoRefresh:      o.state.AutoRefresh(),
	}

	if is.Editing != nil {
		vs.Editing = true
		vs.EditingSlot = is.Editing.SlotKey
		vs.EditingIsNew = is.Editing.ActivityID == ""
		vs.Input = is.Input
	}
	if is.ConfirmDialog != nil {
		vs.Confirm = is.ConfirmDialog.Message
	}
	if ss.Current != nil {
		vs.SummaryText = ss.Current.Text
		vs.SummaryIsAI = ss.Current.IsAI
	}

	// A focused run shows its members individually
	if is.Cursor >= 0 && is.Cursor < len(view.Slots) {
		if g := view.Slots[is.Cursor].Group; g != nil {
			vs.ExpandedGroup = g.GroupID
		}
	}

	o.display.Render(view, vs)
}

func greeting(hour int) string {
	switch {
	case hour < 5:
		return "Good night"
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
