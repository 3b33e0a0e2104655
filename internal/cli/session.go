package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harun/clawgolf/internal/config"
	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/internal/logger"
	"github.com/harun/clawgolf/internal/metrics"
	"github.com/harun/clawgolf/internal/state"
	"github.com/harun/clawgolf/internal/tracing"
	"github.com/harun/clawgolf/pkg/golfapi"
	"github.com/harun/clawgolf/pkg/round"
)

var errMissingRegistrationKey = golferr.Validation("Missing registration key. Provide --registrationKey or OPENCLAW_GOLF_REGISTRATION_KEY.")

// session is everything a game command needs: resolved config, loaded
// state with credentials, and an API client.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	store   *state.Store
	state   *state.AgentState
	client  *golfapi.Client
	rounds  *round.Controller
	metrics *metrics.Metrics
	logger  *logger.Logger
	log     zerolog.Logger
	out     *printer
}

// openSession resolves configuration, loads the agent state, registers a new
// agent when no credentials exist and writes back explicit settings.
func openSession(cmd *cobra.Command) (s *session, err error) {
	flags := cmd.Flags()

	baseDir, err := config.BaseDir()
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(baseDir); err != nil {
		return nil, err
	}

	level, logFile, err := config.ResolveLogging(flags)
	if err != nil {
		return nil, err
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = level
	logCfg.File = logFile
	logCfg.Output = cmd.ErrOrStderr()
	lg, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = lg.Close()
		}
	}()

	if err := tracing.InitOpenTelemetry("clawgolf", version); err != nil {
		log.Debug().Err(err).Msg("Tracing disabled")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx := tracing.NewCommandContext(parent, cmd.Name())
	zl := lg.GetZerolog()
	cmdLog := tracing.LoggerFromContext(ctx, zl)

	statePath, err := config.ResolveStatePath(flags)
	if err != nil {
		return nil, err
	}
	store := state.NewStore(statePath)
	persisted, found := store.Load()

	cfg, err := config.Resolve(flags, persisted)
	if err != nil {
		return nil, err
	}
	cmdLog.Debug().Str("statePath", statePath).Bool("stateFound", found).RawJSON("config", []byte(cfg.String())).Msg("Resolved configuration")

	m := metrics.NewMetrics()
	client := golfapi.NewClient(golfapi.Config{
		BaseURL: cfg.ServerURL,
		Logger:  &zl,
		Metrics: m,
	})

	s = &session{
		cfg:     cfg,
		store:   store,
		client:  client,
		metrics: m,
		logger:  lg,
		log:     cmdLog,
		out:     newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}

	switch {
	case cfg.HasExplicitCredentials():
		if !found {
			persisted = &state.AgentState{}
		}
	case !found:
		persisted, err = s.register(ctx)
		if err != nil {
			return nil, err
		}
	}
	s.state = persisted

	if cfg.Apply(s.state) {
		if err := store.Save(s.state); err != nil {
			return nil, err
		}
	}

	client.SetCredentials(s.state.AgentID, s.state.APIKey)
	s.ctx = tracing.WithAgentID(ctx, s.state.AgentID)
	s.log = tracing.LoggerFromContext(s.ctx, zl)
	s.rounds = round.NewController(client, store, s.state, m)
	return s, nil
}

// register creates a new agent and saves its credentials.
func (s *session) register(ctx context.Context) (*state.AgentState, error) {
	if s.cfg.RegistrationKey == "" {
		return nil, errMissingRegistrationKey
	}

	reg, err := s.client.Register(ctx, s.cfg.RegistrationKey, s.cfg.Name)
	if err != nil {
		return nil, err
	}

	st := &state.AgentState{
		AgentID:   reg.AgentID,
		APIKey:    reg.APIKey,
		Name:      reg.Name,
		ServerURL: s.cfg.ServerURL,
	}
	if err := s.store.Save(st); err != nil {
		return nil, err
	}
	s.log.Info().Str("agentId", reg.AgentID).Str("path", s.store.Path()).Msg("Registered agent")

	label := reg.AgentID
	if reg.Name != "" {
		label = fmt.Sprintf("%s (%s)", reg.AgentID, reg.Name)
	}
	s.out.Linef("Registered agent %s. Credentials saved to %s.", label, s.store.Path())
	return st, nil
}

// Close flushes metrics and tracing and closes the log file.
func (s *session) Close() error {
	var errs []error
	if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
		errs = append(errs, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tracing.ShutdownOpenTelemetry(shutdownCtx); err != nil {
		s.log.Debug().Err(err).Msg("Tracing shutdown failed")
	}

	if err := s.logger.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// withSession opens a session, runs fn and closes the session. A Close
// failure is reported only when fn succeeded.
func withSession(cmd *cobra.Command, fn func(s *session) error) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
