// Package round drives the NONE -> ACTIVE -> NONE round lifecycle and keeps
// the persisted round identity in step with the server.
package round

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/internal/metrics"
	"github.com/harun/clawgolf/internal/state"
	"github.com/harun/clawgolf/pkg/golfapi"
)

// ErrNoActiveRound is returned by commands that need a round in progress.
var ErrNoActiveRound = golferr.State("No active round. Run `start` first.")

// ErrNoCourse is returned by Start when no course is given or remembered.
var ErrNoCourse = golferr.Validation(`No course specified. Run the "courses" command to list available courses, then use: start --courseId <id>`)

// API is the subset of the game client the controller needs.
type API interface {
	StartRound(ctx context.Context, courseID, teeColor string, yardsPerCell int) (*golfapi.RoundView, error)
	ResumeRound(ctx context.Context, courseID, roundID string) (*golfapi.RoundView, error)
}

// Saver persists the agent state.
type Saver interface {
	Save(s *state.AgentState) error
}

// StartRequest holds the resolved inputs of a start.
type StartRequest struct {
	CourseID     string
	TeeColor     string
	YardsPerCell int
}

// Outcome describes how a start ended.
type Outcome struct {
	Round      golfapi.RoundView
	CourseID   string
	CourseName string
	Resumed    bool
}

// DisplayName is the course name when known, otherwise its id.
func (o Outcome) DisplayName() string {
	if o.CourseName != "" {
		return o.CourseName
	}
	return o.CourseID
}

// Controller owns the round identity stored in the agent state.
type Controller struct {
	api     API
	store   Saver
	state   *state.AgentState
	metrics *metrics.Metrics
}

// NewController creates a controller over the loaded agent state.
func NewController(api API, store Saver, s *state.AgentState, m *metrics.Metrics) *Controller {
	return &Controller{
		api:     api,
		store:   store,
		state:   s,
		metrics: m,
	}
}

// Start creates a round, or resumes the one the server reports as already
// in progress. Either way the round identity and tee color are persisted.
func (c *Controller) Start(ctx context.Context, req StartRequest) (*Outcome, error) {
	courseID := req.CourseID
	if courseID == "" {
		courseID = c.state.CourseID
	}
	if courseID == "" {
		return nil, ErrNoCourse
	}

	courseName := ""
	if courseID == c.state.CourseID {
		courseName = c.state.CourseName
	}

	outcome := &Outcome{CourseID: courseID, CourseName: courseName}

	round, err := c.api.StartRound(ctx, courseID, req.TeeColor, req.YardsPerCell)
	if err != nil {
		ge, ok := golferr.As(err)
		if !ok || ge.Kind != golferr.KindConflict {
			return nil, err
		}
		roundID, _ := ge.RoundID()
		log.Info().Str("course_id", courseID).Str("round_id", roundID).Msg("Round already in progress, resuming")

		round, err = c.api.ResumeRound(ctx, courseID, roundID)
		if err != nil {
			return nil, err
		}
		outcome.Resumed = true
	}
	outcome.Round = *round

	c.state.SetRound(courseID, round.ID, courseName)
	c.state.TeeColor = req.TeeColor
	if err := c.store.Save(c.state); err != nil {
		return nil, err
	}

	if outcome.Resumed {
		c.metrics.RoundTransition("resumed")
	} else {
		c.metrics.RoundTransition("started")
	}
	return outcome, nil
}

// Active returns the identity of the round in progress.
func (c *Controller) Active() (courseID, roundID string, err error) {
	if !c.state.HasActiveRound() {
		return "", "", ErrNoActiveRound
	}
	return c.state.CourseID, c.state.RoundID, nil
}

// Resume fetches the full state of the active round.
func (c *Controller) Resume(ctx context.Context) (*golfapi.RoundView, error) {
	courseID, roundID, err := c.Active()
	if err != nil {
		return nil, err
	}
	return c.api.ResumeRound(ctx, courseID, roundID)
}

// Complete forgets the active round and saves the state.
func (c *Controller) Complete() error {
	c.state.ClearRound()
	if err := c.store.Save(c.state); err != nil {
		return err
	}
	c.metrics.RoundTransition("completed")
	return nil
}

// AfterShot completes the round when the shot finished it. It reports
// whether the round ended.
func (c *Controller) AfterShot(resp *golfapi.ShotResponse) (bool, error) {
	if resp == nil {
		return false, errors.New("round: nil shot response")
	}
	if !resp.RoundFinished() {
		return false, nil
	}
	return true, c.Complete()
}
