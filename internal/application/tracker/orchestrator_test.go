package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterlog/quarterlog/internal/presentation/interaction"
	"github.com/quarterlog/quarterlog/internal/util"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	require.NoError(t, util.InitializeTimeProvider("UTC"))

	o, err := NewOrchestrator(&Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	return o
}

func typeText(o *Orchestrator, text string) {
	for _, r := range text {
		o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyChar, Key: r})
	}
}

func TestEditFlowAddsActivity(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	require.NotNil(t, o.state.Interaction().Editing)
	assert.Equal(t, "00:00", o.state.Interaction().Editing.SlotKey)

	typeText(o, "Morning pages")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyEnter})

	assert.Nil(t, o.state.Interaction().Editing)
	acts := o.acts.ForDate(o.state.SelectedDate())
	require.Len(t, acts, 1)
	assert.Equal(t, "Morning pages", acts[0].Description)
	assert.Equal(t, "00:00", acts[0].TimeBlock)

	// the mutation reached disk
	assert.Len(t, o.fileStore.Load().Activities, 1)
}

func TestEditEscapeCancels(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	typeText(o, "never saved")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyEscape})

	assert.Nil(t, o.state.Interaction().Editing)
	assert.Equal(t, 0, o.acts.Len())
}

func TestEditMovingAwaySavesNonEmpty(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	typeText(o, "half-typed note")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyDown})

	assert.Nil(t, o.state.Interaction().Editing)
	assert.Equal(t, 1, o.acts.Len())
	assert.Equal(t, 1, o.state.Interaction().Cursor)
}

func TestEditEmptyCommitIsNoop(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	typeText(o, "   ")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyEnter})

	assert.Equal(t, 0, o.acts.Len())
}

func TestEditRewritesExistingActivity(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	typeText(o, "Draft")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyEnter})

	o.startEdit(false)
	is := o.state.Interaction()
	require.NotNil(t, is.Editing)
	assert.NotEmpty(t, is.Editing.ActivityID)
	assert.Equal(t, "Draft", is.Input)

	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyBackspace})
	typeText(o, "t v2")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyEnter})

	acts := o.acts.ForDate(o.state.SelectedDate())
	require.Len(t, acts, 1)
	assert.Equal(t, "Draft v2", acts[0].Description)
}

func TestEditInputCapped(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	for i := 0; i < 300; i++ {
		o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyChar, Key: 'x'})
	}

	assert.Len(t, []rune(o.state.Interaction().Input), 280)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	o := newTestOrchestrator(t)

	o.startEdit(true)
	typeText(o, "Doomed")
	o.handleEditKey(interaction.KeyEvent{Type: interaction.KeyEnter})
	require.Equal(t, 1, o.acts.Len())

	o.requestDelete()
	dialog := o.state.Interaction().ConfirmDialog
	require.NotNil(t, dialog)
	assert.Contains(t, dialog.Message, "Doomed")

	// declining keeps the activity
	o.handleConfirmKey(interaction.KeyEvent{Type: interaction.KeyChar, Key: 'n'}, dialog)
	assert.Nil(t, o.state.Interaction().ConfirmDialog)
	assert.Equal(t, 1, o.acts.Len())

	o.requestDelete()
	dialog = o.state.Interaction().ConfirmDialog
	require.NotNil(t, dialog)
	o.handleConfirmKey(interaction.KeyEvent{Type: interaction.KeyChar, Key: 'y'}, dialog)
	assert.Equal(t, 0, o.acts.Len())
}

func TestChangeDayAndBack(t *testing.T) {
	o := newTestOrchestrator(t)
	today := o.state.SelectedDate()

	o.changeDay(-1)
	assert.False(t, o.isToday(o.state.SelectedDate()))

	o.changeDay(0)
	assert.True(t, o.isToday(o.state.SelectedDate()))
	assert.Equal(t, today.Format("2006-01-02"), o.state.SelectedDate().Format("2006-01-02"))
}

func TestMoveCursorClamps(t *testing.T) {
	o := newTestOrchestrator(t)

	o.moveCursor(-5)
	assert.Equal(t, 0, o.state.Interaction().Cursor)

	for i := 0; i < 200; i++ {
		o.moveCursor(1)
	}
	assert.Equal(t, o.config.TotalSlots-1, o.state.Interaction().Cursor)
}

func TestQuitKeys(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := t.Context()

	assert.False(t, o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyCtrlC}))
	assert.False(t, o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyChar, Key: 'q'}))
	assert.True(t, o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyChar, Key: 'h'}))
	assert.True(t, o.state.Interaction().ShowHelp)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Good night", greeting(3))
	assert.Equal(t, "Good morning", greeting(9))
	assert.Equal(t, "Good afternoon", greeting(14))
	assert.Equal(t, "Good evening", greeting(21))
}

func TestAutoRefreshToggle(t *testing.T) {
	o := newTestOrchestrator(t)
	require.True(t, o.state.AutoRefresh())

	o.handleKey(t.Context(), interaction.KeyEvent{Type: interaction.KeyChar, Key: 'r'})
	assert.False(t, o.state.AutoRefresh())
	assert.False(t, o.fileStore.Load().AutoRefreshEnabled())
}

func TestNameEditing(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := t.Context()

	o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyChar, Key: 'u'})
	require.True(t, o.state.Interaction().EditingName)
	assert.Equal(t, "User", o.state.Interaction().NameInput)

	for range "User" {
		o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyBackspace})
	}
	for _, r := range "Ada" {
		o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyChar, Key: r})
	}
	o.handleKey(ctx, interaction.KeyEvent{Type: interaction.KeyEnter})

	assert.False(t, o.state.Interaction().EditingName)
	assert.Equal(t, "Ada", o.state.UserName())
	assert.Equal(t, "Ada", o.fileStore.Load().DisplayName())
}
