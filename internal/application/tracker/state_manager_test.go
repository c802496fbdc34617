package tracker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/summary"
)

func TestStateManagerInitial(t *testing.T) {
	today := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	sm := NewStateManager(today, true, "Ada")

	assert.Equal(t, today, sm.SelectedDate())
	assert.True(t, sm.AutoRefresh())
	assert.Equal(t, "Ada", sm.UserName())

	ss := sm.Summary()
	assert.Equal(t, summary.AvailabilityChecking, ss.Status)
	assert.Equal(t, float64(-1), ss.DownloadProgress)
	assert.False(t, ss.Pending)
	assert.Nil(t, ss.Current)

	is := sm.Interaction()
	assert.Equal(t, 0, is.Cursor)
	assert.Nil(t, is.Editing)
}

func TestStateManagerUpdates(t *testing.T) {
	sm := NewStateManager(time.Now(), false, "Ada")

	sm.SetUserName("Grace")
	assert.Equal(t, "Grace", sm.UserName())

	sm.SetAutoRefresh(true)
	assert.True(t, sm.AutoRefresh())

	sm.UpdateInteraction(func(is *InteractionState) {
		is.Cursor = 42
		is.Editing = &EditTarget{SlotKey: "10:30"}
		is.Input = "Deep work"
	})
	is := sm.Interaction()
	assert.Equal(t, 42, is.Cursor)
	assert.Equal(t, "10:30", is.Editing.SlotKey)
	assert.Equal(t, "Deep work", is.Input)

	sum := activity.Summary{Text: "done things", IsAI: true}
	sm.UpdateSummary(func(ss *SummaryState) {
		ss.Status = summary.AvailabilityAvailable
		ss.Current = &sum
	})
	ss := sm.Summary()
	assert.Equal(t, summary.AvailabilityAvailable, ss.Status)
	assert.Equal(t, "done things", ss.Current.Text)
}

func TestStateManagerInteractionCopyIsolation(t *testing.T) {
	sm := NewStateManager(time.Now(), true, "Ada")

	is := sm.Interaction()
	is.Cursor = 99

	assert.Equal(t, 0, sm.Interaction().Cursor)
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := NewStateManager(time.Now(), true, "Ada")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sm.UpdateSummary(func(ss *SummaryState) {
				ss.DownloadProgress += 0.01
			})
		}()
		go func() {
			defer wg.Done()
			_ = sm.Summary()
			_ = sm.Interaction()
			_ = sm.UserName()
		}()
	}
	wg.Wait()
}
