package round

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/internal/metrics"
	"github.com/harun/clawgolf/internal/state"
	"github.com/harun/clawgolf/pkg/golfapi"
)

type fakeAPI struct {
	startErr    error
	startRound  *golfapi.RoundView
	resumeRound *golfapi.RoundView
	resumeErr   error

	startCalls  []string
	resumeCalls []string
}

func (f *fakeAPI) StartRound(ctx context.Context, courseID, teeColor string, yardsPerCell int) (*golfapi.RoundView, error) {
	f.startCalls = append(f.startCalls, courseID+"/"+teeColor)
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.startRound, nil
}

func (f *fakeAPI) ResumeRound(ctx context.Context, courseID, roundID string) (*golfapi.RoundView, error) {
	f.resumeCalls = append(f.resumeCalls, courseID+"/"+roundID)
	if f.resumeErr != nil {
		return nil, f.resumeErr
	}
	return f.resumeRound, nil
}

func newStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(filepath.Join(t.TempDir(), "agent.json"))
}

func baseState() *state.AgentState {
	return &state.AgentState{AgentID: "a1", APIKey: "k1"}
}

func TestStart(t *testing.T) {
	t.Run("new round", func(t *testing.T) {
		api := &fakeAPI{startRound: &golfapi.RoundView{ID: "r1", CurrentHoleNumber: 1, ParForHoles: map[int]int{1: 4}}}
		store := newStore(t)
		st := baseState()
		m := metrics.NewMetrics()

		out, err := NewController(api, store, st, m).Start(context.Background(), StartRequest{CourseID: "c1", TeeColor: "blue"})
		require.NoError(t, err)

		assert.False(t, out.Resumed)
		assert.Equal(t, "r1", out.Round.ID)
		assert.Equal(t, "c1", out.DisplayName())
		assert.Empty(t, api.resumeCalls)

		saved, ok := store.Load()
		require.True(t, ok)
		assert.Equal(t, "c1", saved.CourseID)
		assert.Equal(t, "r1", saved.RoundID)
		assert.Equal(t, "blue", saved.TeeColor)
	})

	t.Run("conflict resumes", func(t *testing.T) {
		api := &fakeAPI{
			startErr:    golferr.FromResponse(409, []byte(`{"error":"Round in progress","roundId":"r7"}`)),
			resumeRound: &golfapi.RoundView{ID: "r7", CurrentHoleNumber: 4, StrokeCount: 2},
		}
		store := newStore(t)
		st := baseState()

		out, err := NewController(api, store, st, nil).Start(context.Background(), StartRequest{CourseID: "c1", TeeColor: "white"})
		require.NoError(t, err)

		assert.True(t, out.Resumed)
		assert.Equal(t, 4, out.Round.CurrentHoleNumber)
		assert.Equal(t, []string{"c1/r7"}, api.resumeCalls)
		assert.Equal(t, "r7", st.RoundID)

		saved, ok := store.Load()
		require.True(t, ok)
		assert.Equal(t, "r7", saved.RoundID)
	})

	t.Run("conflict without round id propagates", func(t *testing.T) {
		api := &fakeAPI{startErr: golferr.FromResponse(409, []byte(`{"error":"Busy","roundId":""}`))}
		st := baseState()

		_, err := NewController(api, newStore(t), st, nil).Start(context.Background(), StartRequest{CourseID: "c1", TeeColor: "white"})
		require.Error(t, err)
		assert.True(t, golferr.Is(err, golferr.KindRequest))
		assert.Empty(t, api.resumeCalls)
		assert.False(t, st.HasActiveRound())
	})

	t.Run("other errors propagate", func(t *testing.T) {
		api := &fakeAPI{startErr: golferr.FromResponse(500, nil)}

		_, err := NewController(api, newStore(t), baseState(), nil).Start(context.Background(), StartRequest{CourseID: "c1"})
		assert.EqualError(t, err, "Request failed (500)")
	})

	t.Run("resume failure propagates", func(t *testing.T) {
		api := &fakeAPI{
			startErr:  golferr.FromResponse(409, []byte(`{"roundId":"r7"}`)),
			resumeErr: golferr.FromResponse(404, []byte(`{"error":"Round not found"}`)),
		}
		st := baseState()

		_, err := NewController(api, newStore(t), st, nil).Start(context.Background(), StartRequest{CourseID: "c1"})
		assert.EqualError(t, err, "Round not found")
		assert.False(t, st.HasActiveRound())
	})

	t.Run("remembered course", func(t *testing.T) {
		api := &fakeAPI{startRound: &golfapi.RoundView{ID: "r2"}}
		st := baseState()
		st.CourseID = "c9"
		st.CourseName = "Links"

		out, err := NewController(api, newStore(t), st, nil).Start(context.Background(), StartRequest{TeeColor: "red"})
		require.NoError(t, err)
		assert.Equal(t, "Links", out.DisplayName())
		assert.Equal(t, []string{"c9/red"}, api.startCalls)
	})

	t.Run("no course", func(t *testing.T) {
		api := &fakeAPI{}

		_, err := NewController(api, newStore(t), baseState(), nil).Start(context.Background(), StartRequest{})
		require.Error(t, err)
		assert.True(t, golferr.Is(err, golferr.KindValidation))
		assert.Contains(t, err.Error(), "courses")
		assert.Empty(t, api.startCalls)
	})
}

func TestActive(t *testing.T) {
	c := NewController(&fakeAPI{}, newStore(t), baseState(), nil)

	_, _, err := c.Active()
	assert.True(t, errors.Is(err, ErrNoActiveRound))
	assert.True(t, golferr.Is(err, golferr.KindState))
	assert.Equal(t, "No active round. Run `start` first.", err.Error())

	_, err = c.Resume(context.Background())
	assert.True(t, golferr.Is(err, golferr.KindState))
}

func TestAfterShot(t *testing.T) {
	newActive := func(t *testing.T) (*Controller, *state.AgentState, *state.Store) {
		st := baseState()
		st.SetRound("c1", "r1", "Links")
		store := newStore(t)
		return NewController(&fakeAPI{}, store, st, nil), st, store
	}

	t.Run("round continues", func(t *testing.T) {
		c, st, _ := newActive(t)
		done, err := c.AfterShot(&golfapi.ShotResponse{HoleCompleted: true})
		require.NoError(t, err)
		assert.False(t, done)
		assert.True(t, st.HasActiveRound())
	})

	t.Run("roundCompleted flag", func(t *testing.T) {
		c, st, store := newActive(t)
		done, err := c.AfterShot(&golfapi.ShotResponse{RoundCompleted: true})
		require.NoError(t, err)
		assert.True(t, done)
		assert.False(t, st.HasActiveRound())

		saved, ok := store.Load()
		require.True(t, ok)
		assert.Empty(t, saved.RoundID)
		assert.Empty(t, saved.CourseID)
		assert.Empty(t, saved.CourseName)
	})

	t.Run("completed status", func(t *testing.T) {
		c, st, _ := newActive(t)
		done, err := c.AfterShot(&golfapi.ShotResponse{Round: golfapi.RoundView{Status: golfapi.StatusCompleted}})
		require.NoError(t, err)
		assert.True(t, done)
		assert.False(t, st.HasActiveRound())
	})
}
