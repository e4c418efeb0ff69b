package services

import (
	"testing"
	"time"

	"Encore/models"
	"Encore/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPerformerID = "perf-1"

func newTestQueue(t *testing.T) (*QueueService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, st.PutPerformer(&models.Performer{
		ID:        testPerformerID,
		Username:  "dj-nova",
		Email:     "nova@example.com",
		StageName: "DJ Nova",
	}))
	return NewQueueService(st, NewEarningsService(st)), st
}

func putSettings(t *testing.T, st *store.MemoryStore, s *models.SongRequestSettings) {
	t.Helper()
	s.PerformerID = testPerformerID
	require.NoError(t, st.PutSettings(s))
}

func submitInput(title string, tip float64) SubmitInput {
	return SubmitInput{
		PerformerID:   testPerformerID,
		RequesterID:   "viewer-1",
		RequesterName: "Sam",
		SongTitle:     title,
		TipAmount:     tip,
	}
}

// seedRequest inserts a request directly with a controlled timestamp.
func seedRequest(t *testing.T, st *store.MemoryStore, id string, status models.RequestStatus, priority int, requestedAt time.Time) {
	t.Helper()
	require.NoError(t, st.PutRequest(&models.SongRequest{
		ID:            id,
		PerformerID:   testPerformerID,
		RequesterID:   "viewer-1",
		RequesterName: "Sam",
		SongTitle:     "Song " + id,
		Status:        status,
		Priority:      priority,
		RequestedAt:   requestedAt,
	}))
}

func TestSubmitUnknownPerformer(t *testing.T) {
	q, _ := newTestQueue(t)

	in := submitInput("Levels", 10)
	in.PerformerID = "nope"
	_, err := q.Submit(in)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "performer", notFound.Resource)
}

func TestSubmitWithoutSettingsIsUnrestricted(t *testing.T) {
	q, _ := newTestQueue(t)

	// No settings row: everything is admitted, priority is always 1
	req, err := q.Submit(submitInput("Free Bird", 0))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, 1, req.Priority)
	assert.Nil(t, req.ProcessedAt)

	req, err = q.Submit(submitInput("Thunderstruck", 500))
	require.NoError(t, err)
	assert.Equal(t, 1, req.Priority)
}

func TestSubmitNotAccepting(t *testing.T) {
	q, st := newTestQueue(t)
	s := models.DefaultSettings(testPerformerID)
	s.IsAcceptingRequests = false
	putSettings(t, st, s)

	_, err := q.Submit(submitInput("Levels", 50))

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Reason, "not currently accepting")
}

func TestSubmitBelowMinimumTip(t *testing.T) {
	q, st := newTestQueue(t)
	s := models.DefaultSettings(testPerformerID)
	s.MinimumTip = 15
	putSettings(t, st, s)

	_, err := q.Submit(submitInput("Levels", 10))

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Reason, "15")

	// Nothing was created and no credit was emitted
	requests, err := st.RequestsByPerformer(testPerformerID)
	require.NoError(t, err)
	assert.Empty(t, requests)
	earnings, err := st.EarningsByPerformer(testPerformerID)
	require.NoError(t, err)
	assert.Empty(t, earnings)
}

func TestSubmitBlockedSongCaseInsensitive(t *testing.T) {
	q, st := newTestQueue(t)
	s := models.DefaultSettings(testPerformerID)
	s.MinimumTip = 0
	s.BlockedSongs = []string{"Baby Shark"}
	putSettings(t, st, s)

	_, err := q.Submit(submitInput("baby shark (remix)", 10))

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Reason, "not available")

	_, err = q.Submit(submitInput("Shape of You", 10))
	require.NoError(t, err)
}

func TestSubmitPriorityTier(t *testing.T) {
	q, st := newTestQueue(t)
	s := models.DefaultSettings(testPerformerID)
	s.MinimumTip = 0
	s.PriorityTipThreshold = 20
	putSettings(t, st, s)

	low, err := q.Submit(submitInput("Song A", 19.99))
	require.NoError(t, err)
	assert.Equal(t, 1, low.Priority)

	exact, err := q.Submit(submitInput("Song B", 20))
	require.NoError(t, err)
	assert.Equal(t, 2, exact.Priority)

	high, err := q.Submit(submitInput("Song C", 100))
	require.NoError(t, err)
	assert.Equal(t, 2, high.Priority)
}

func TestSubmitAdmissionScenario(t *testing.T) {
	// Spec scenario: minimumTip 10, priorityTipThreshold 25, maxQueueSize 2
	q, st := newTestQueue(t)
	s := models.DefaultSettings(testPerformerID)
	s.MinimumTip = 10
	s.PriorityTipThreshold = 25
	s.MaxQueueSize = 2
	putSettings(t, st, s)

	a, err := q.Submit(submitInput("Request A", 10))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Priority)

	b, err := q.Submit(submitInput("Request B", 30))
	require.NoError(t, err)
	assert.Equal(t, 2, b.Priority)

	_, err = q.Submit(submitInput("Request C", 15))
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Reason, "queue is full")
}

func TestSubmitEmitsEarningCredit(t *testing.T) {
	q, st := newTestQueue(t)

	in := submitInput("Levels", 12.5)
	in.Artist = "Avicii"
	_, err := q.Submit(in)
	require.NoError(t, err)

	earnings, err := st.EarningsByPerformer(testPerformerID)
	require.NoError(t, err)
	require.Len(t, earnings, 1)
	assert.Equal(t, models.EarningTypeSongRequest, earnings[0].Type)
	assert.Equal(t, 12.5, earnings[0].Amount)
	assert.Equal(t, "Song request from Sam", earnings[0].Source)
	assert.Equal(t, "Levels by Avicii", earnings[0].Description)
	assert.Equal(t, "USD", earnings[0].Currency)
}

func TestSubmitZeroTipEmitsNothing(t *testing.T) {
	q, st := newTestQueue(t)

	_, err := q.Submit(submitInput("Free Bird", 0))
	require.NoError(t, err)

	earnings, err := st.EarningsByPerformer(testPerformerID)
	require.NoError(t, err)
	assert.Empty(t, earnings)
}

func TestGetQueueOrdering(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "old-low", models.StatusPending, 1, base)
	seedRequest(t, st, "new-high", models.StatusPending, 2, base.Add(3*time.Minute))
	seedRequest(t, st, "old-high", models.StatusAccepted, 2, base.Add(1*time.Minute))
	seedRequest(t, st, "now-playing", models.StatusPlaying, 1, base.Add(2*time.Minute))
	seedRequest(t, st, "done", models.StatusCompleted, 2, base)
	seedRequest(t, st, "nope", models.StatusDeclined, 2, base)

	queue, err := q.GetQueue(testPerformerID)
	require.NoError(t, err)

	ids := make([]string, len(queue))
	playing := 0
	for i, r := range queue {
		ids[i] = r.ID
		if r.Status == models.StatusPlaying {
			playing++
		}
	}
	assert.Equal(t, []string{"now-playing", "old-high", "new-high", "old-low"}, ids)
	assert.Equal(t, 1, playing)
	assert.Equal(t, "now-playing", queue[0].ID)
}

func TestGetQueueSameTierFIFO(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "third", models.StatusPending, 1, base.Add(2*time.Second))
	seedRequest(t, st, "first", models.StatusPending, 1, base)
	seedRequest(t, st, "second", models.StatusAccepted, 1, base.Add(time.Second))

	queue, err := q.GetQueue(testPerformerID)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, "first", queue[0].ID)
	assert.Equal(t, "second", queue[1].ID)
	assert.Equal(t, "third", queue[2].ID)
}

func TestAcceptOnlyFromPending(t *testing.T) {
	q, st := newTestQueue(t)
	seedRequest(t, st, "r1", models.StatusPending, 1, time.Now())

	req, err := q.Accept("r1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, req.Status)
	assert.Nil(t, req.ProcessedAt)

	_, err = q.Accept("r1")
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.StatusAccepted, invalid.From)

	_, err = q.Accept("missing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeclineFromNonTerminal(t *testing.T) {
	q, st := newTestQueue(t)
	seedRequest(t, st, "p", models.StatusPending, 1, time.Now())
	seedRequest(t, st, "a", models.StatusAccepted, 1, time.Now())
	seedRequest(t, st, "pl", models.StatusPlaying, 1, time.Now())
	seedRequest(t, st, "c", models.StatusCompleted, 1, time.Now())

	for _, id := range []string{"p", "a", "pl"} {
		req, err := q.Decline(id, "")
		require.NoError(t, err, "decline %s", id)
		assert.Equal(t, models.StatusDeclined, req.Status)
		require.NotNil(t, req.ProcessedAt)
	}

	_, err := q.Decline("c", "")
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestDeclineReasonOverwritesNotes(t *testing.T) {
	q, st := newTestQueue(t)
	require.NoError(t, st.PutRequest(&models.SongRequest{
		ID:          "r1",
		PerformerID: testPerformerID,
		SongTitle:   "Wonderwall",
		Status:      models.StatusPending,
		Priority:    1,
		Notes:       "play the acoustic version",
		RequestedAt: time.Now(),
	}))

	req, err := q.Decline("r1", "not tonight")
	require.NoError(t, err)
	assert.Equal(t, "Declined: not tonight", req.Notes)
}

func TestMarkCompletedHasNoGuard(t *testing.T) {
	q, st := newTestQueue(t)
	seedRequest(t, st, "r1", models.StatusDeclined, 1, time.Now())

	req, err := q.MarkCompleted("r1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, req.Status)
	require.NotNil(t, req.ProcessedAt)
}

func TestUpdateStatusEscapeHatch(t *testing.T) {
	q, st := newTestQueue(t)
	seedRequest(t, st, "r1", models.StatusCompleted, 1, time.Now())

	// No guard: a terminal request can be dragged back
	req, err := q.UpdateStatus("r1", models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)

	req, err = q.UpdateStatus("r1", models.StatusDeclined)
	require.NoError(t, err)
	require.NotNil(t, req.ProcessedAt)

	_, err = q.UpdateStatus("r1", "bogus")
	require.Error(t, err)
}

func TestPlayNextPromotesHead(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "current", models.StatusPlaying, 1, base)
	seedRequest(t, st, "head", models.StatusAccepted, 2, base.Add(time.Minute))
	seedRequest(t, st, "tail", models.StatusPending, 1, base.Add(2*time.Minute))

	next, err := q.PlayNext(testPerformerID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "head", next.ID)
	assert.Equal(t, models.StatusPlaying, next.Status)
	assert.Nil(t, next.ProcessedAt)

	prev, err := st.GetRequest("current")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, prev.Status)
	require.NotNil(t, prev.ProcessedAt)

	queue, err := q.GetQueue(testPerformerID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "head", queue[0].ID)
}

func TestPlayNextOnEmptyQueue(t *testing.T) {
	q, _ := newTestQueue(t)

	next, err := q.PlayNext(testPerformerID)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestPlayNextCompletesLastPlaying(t *testing.T) {
	q, st := newTestQueue(t)
	seedRequest(t, st, "current", models.StatusPlaying, 1, time.Now())

	// Nothing left to promote: the playing request still completes
	next, err := q.PlayNext(testPerformerID)
	require.NoError(t, err)
	assert.Nil(t, next)

	prev, err := st.GetRequest("current")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, prev.Status)
}

func TestReorderAssignsDenseRanks(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "A", models.StatusPending, 1, base)
	seedRequest(t, st, "B", models.StatusPending, 2, base.Add(time.Minute))

	queue, err := q.Reorder(testPerformerID, []string{"B", "A"})
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "B", queue[0].ID)
	assert.Equal(t, "A", queue[1].ID)

	a, err := st.GetRequest("A")
	require.NoError(t, err)
	b, err := st.GetRequest("B")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Priority)
	assert.Equal(t, 2, b.Priority)
}

func TestReorderSkipsPlayingAndRejectsUnknown(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "pl", models.StatusPlaying, 1, base)
	seedRequest(t, st, "A", models.StatusPending, 1, base.Add(time.Minute))

	_, err := q.Reorder(testPerformerID, []string{"A", "ghost"})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	queue, err := q.Reorder(testPerformerID, []string{"pl", "A"})
	require.NoError(t, err)

	pl, err := st.GetRequest("pl")
	require.NoError(t, err)
	assert.Equal(t, 1, pl.Priority, "playing request keeps its priority")
	assert.Equal(t, "pl", queue[0].ID, "playing request still sorts first")
}

func TestClearQueueSparesPlaying(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "pl", models.StatusPlaying, 1, base)
	seedRequest(t, st, "p1", models.StatusPending, 1, base.Add(time.Minute))
	seedRequest(t, st, "p2", models.StatusPending, 1, base.Add(2*time.Minute))

	count, err := q.Clear(testPerformerID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []string{"p1", "p2"} {
		r, err := st.GetRequest(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDeclined, r.Status)
		require.NotNil(t, r.ProcessedAt)
	}

	pl, err := st.GetRequest("pl")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaying, pl.Status)
	assert.Nil(t, pl.ProcessedAt)
}

func TestClearQueueMarkAsCompleted(t *testing.T) {
	q, st := newTestQueue(t)
	seedRequest(t, st, "p1", models.StatusAccepted, 1, time.Now())

	count, err := q.Clear(testPerformerID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	r, err := st.GetRequest("p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, r.Status)
}

func TestListRequestsFilterAndLimit(t *testing.T) {
	q, st := newTestQueue(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	seedRequest(t, st, "p1", models.StatusPending, 1, base)
	seedRequest(t, st, "c1", models.StatusCompleted, 1, base.Add(time.Minute))
	seedRequest(t, st, "c2", models.StatusCompleted, 1, base.Add(2*time.Minute))

	all, err := q.ListRequests(testPerformerID, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	completed, err := q.ListRequests(testPerformerID, models.StatusCompleted, 0)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	limited, err := q.ListRequests(testPerformerID, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
