package schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/eastfallsrec/matchbook/internal/models"
	"github.com/eastfallsrec/matchbook/internal/refresh"
	"github.com/eastfallsrec/matchbook/internal/store"
)

// recordingStore captures score writes and serves canned season data.
type recordingStore struct {
	store.Store

	updatedMatchID int64
	updatedHome    *int64
	updatedAway    *int64
	clearedMatchID int64
}

func (s *recordingStore) CurrentSeason(ctx context.Context) (models.Season, error) {
	return models.Season{ID: 1, Name: "2024-W1-inaugural"}, nil
}

func (s *recordingStore) SeasonMatches(ctx context.Context, seasonID int64) ([]models.Match, error) {
	return []models.Match{
		{ID: 1, SeasonID: seasonID, HomeTeamID: 1, AwayTeamID: 2, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}, nil
}

func (s *recordingStore) SeasonTeams(ctx context.Context, seasonID int64) ([]models.Team, error) {
	return []models.Team{
		{ID: 1, Name: "Ridge Avenue Potholes"},
		{ID: 2, Name: "Mcdevitt's Divets"},
	}, nil
}

func (s *recordingStore) UpdateMatchScore(ctx context.Context, matchID int64, home, away *int64) error {
	s.updatedMatchID = matchID
	s.updatedHome = home
	s.updatedAway = away
	return nil
}

func (s *recordingStore) ClearMatchScore(ctx context.Context, matchID int64) error {
	s.clearedMatchID = matchID
	return nil
}

func setupScheduleTest() (*recordingStore, *refresh.Hub) {
	st := &recordingStore{}
	hub := refresh.NewHub()
	InitHandlers(st, hub)
	return st, hub
}

func scoreRequest(matchID, home, away string) *http.Request {
	form := url.Values{"home_score": {home}, "away_score": {away}}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/matches/"+matchID+"/score", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.SetPathValue("id", matchID)
	return r
}

func TestHandleSetScore(t *testing.T) {
	st, hub := setupScheduleTest()
	events, cancel := hub.Subscribe()
	defer cancel()

	recorder := httptest.NewRecorder()
	HandleSetScore(recorder, scoreRequest("3", "2", "1"))

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if st.updatedMatchID != 3 {
		t.Fatalf("expected write to match 3, got %d", st.updatedMatchID)
	}
	if st.updatedHome == nil || *st.updatedHome != 2 {
		t.Fatalf("unexpected home score: %v", st.updatedHome)
	}
	if st.updatedAway == nil || *st.updatedAway != 1 {
		t.Fatalf("unexpected away score: %v", st.updatedAway)
	}
	if trigger := recorder.Header().Get("HX-Trigger"); trigger != ScheduleUpdatedEvent {
		t.Fatalf("expected HX-Trigger %q, got %q", ScheduleUpdatedEvent, trigger)
	}

	select {
	case view := <-events:
		if view != refresh.ViewSchedule {
			t.Fatalf("expected schedule view event, got %q", view)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a refresh event after a score write")
	}
}

func TestHandleSetScorePartial(t *testing.T) {
	st, _ := setupScheduleTest()

	recorder := httptest.NewRecorder()
	HandleSetScore(recorder, scoreRequest("5", "4", ""))

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if st.updatedHome == nil || *st.updatedHome != 4 {
		t.Fatalf("unexpected home score: %v", st.updatedHome)
	}
	if st.updatedAway != nil {
		t.Fatalf("blank away score should be stored as null, got %v", *st.updatedAway)
	}
}

func TestHandleSetScoreRejectsBadInput(t *testing.T) {
	st, _ := setupScheduleTest()

	for name, r := range map[string]*http.Request{
		"bad id":    scoreRequest("nope", "1", "2"),
		"zero id":   scoreRequest("0", "1", "2"),
		"bad score": scoreRequest("3", "three", "2"),
	} {
		recorder := httptest.NewRecorder()
		HandleSetScore(recorder, r)
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, recorder.Code)
		}
	}
	if st.updatedMatchID != 0 {
		t.Fatal("rejected requests must not reach the store")
	}
}

func TestHandleClearScore(t *testing.T) {
	st, hub := setupScheduleTest()
	events, cancel := hub.Subscribe()
	defer cancel()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/matches/6/clear", nil)
	r.SetPathValue("id", "6")
	recorder := httptest.NewRecorder()
	HandleClearScore(recorder, r)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if st.clearedMatchID != 6 {
		t.Fatalf("expected clear on match 6, got %d", st.clearedMatchID)
	}
	if trigger := recorder.Header().Get("HX-Trigger"); trigger != ScheduleUpdatedEvent {
		t.Fatalf("expected HX-Trigger %q, got %q", ScheduleUpdatedEvent, trigger)
	}

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("expected a refresh event after clearing a score")
	}
}

func TestHandleEventsStreamsRefreshSignals(t *testing.T) {
	_, hub := setupScheduleTest()

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/club/events", nil).WithContext(ctx)
	recorder := httptest.NewRecorder()

	go func() {
		// Publish until the handler has certainly subscribed and streamed.
		for i := 0; i < 50; i++ {
			hub.Publish(refresh.ViewSchedule)
			time.Sleep(5 * time.Millisecond)
		}
		cancel()
	}()

	HandleEvents(recorder, r)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "text/event-stream" {
		t.Fatalf("expected an event stream, got %q", contentType)
	}
	if !strings.Contains(recorder.Body.String(), "event: "+ScheduleUpdatedEvent) {
		t.Fatal("expected at least one refresh event in the stream")
	}
}

func TestHandleSchedulePageFullAndPartial(t *testing.T) {
	setupScheduleTest()

	full := httptest.NewRecorder()
	HandleSchedulePage(full, httptest.NewRequest(http.MethodGet, "/club/schedule", nil))
	if full.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", full.Code)
	}
	if !strings.Contains(full.Body.String(), "<html") {
		t.Fatal("full page load should render the layout")
	}
	if !strings.Contains(full.Body.String(), "Ridge Avenue Potholes") {
		t.Fatal("expected team names in the scoresheet")
	}
	if !strings.Contains(full.Body.String(), "/club/events") {
		t.Fatal("full page should open the refresh event stream")
	}

	partial := httptest.NewRecorder()
	partialReq := httptest.NewRequest(http.MethodGet, "/club/schedule", nil)
	partialReq.Header.Set("HX-Request", "true")
	HandleSchedulePage(partial, partialReq)
	if partial.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", partial.Code)
	}
	if strings.Contains(partial.Body.String(), "<html") {
		t.Fatal("htmx refresh should render only the table fragment")
	}
	if !strings.Contains(partial.Body.String(), `id="scoresheet"`) {
		t.Fatal("expected the scoresheet wrapper in the fragment")
	}
}
