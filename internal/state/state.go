// Package state persists the agent's credentials and preferences as a single JSON document.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultFileName is the state file created inside the base directory.
const DefaultFileName = "agent.json"

// AgentState is the persisted credential+preference record.
// A round is active iff both CourseID and RoundID are set.
type AgentState struct {
	AgentID      string `json:"agentId"`
	APIKey       string `json:"apiKey"`
	Name         string `json:"name,omitempty"`
	ServerURL    string `json:"serverUrl,omitempty"`
	CourseID     string `json:"courseId,omitempty"`
	RoundID      string `json:"roundId,omitempty"`
	CourseName   string `json:"courseName,omitempty"`
	TeeColor     string `json:"teeColor,omitempty"`
	YardsPerCell int    `json:"yardsPerCell,omitempty"`
	MapFormat    string `json:"mapFormat,omitempty"`

	// extra keeps keys this version does not know about so a rewrite preserves them.
	extra map[string]json.RawMessage
}

type agentStateFields AgentState

// field returns a pointer to the struct field stored under key, or nil.
func (s *AgentState) field(key string) any {
	switch key {
	case "agentId":
		return &s.AgentID
	case "apiKey":
		return &s.APIKey
	case "name":
		return &s.Name
	case "serverUrl":
		return &s.ServerURL
	case "courseId":
		return &s.CourseID
	case "roundId":
		return &s.RoundID
	case "courseName":
		return &s.CourseName
	case "teeColor":
		return &s.TeeColor
	case "yardsPerCell":
		return &s.YardsPerCell
	case "mapFormat":
		return &s.MapFormat
	}
	return nil
}

// UnmarshalJSON decodes the known fields and stashes the rest. A null known
// field stays unset; a known field of the wrong type is dropped with a warning
// so one bad preference never discards the credentials.
func (s *AgentState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out AgentState
	for key, value := range raw {
		target := out.field(key)
		if target == nil {
			continue
		}
		delete(raw, key)
		if err := json.Unmarshal(value, target); err != nil {
			log.Warn().Str("key", key).RawJSON("value", value).Msg("Ignoring state field with unexpected type")
			out.resetField(key)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	out.extra = raw
	*s = out
	return nil
}

func (s *AgentState) resetField(key string) {
	switch p := s.field(key).(type) {
	case *string:
		*p = ""
	case *int:
		*p = 0
	}
}

// MarshalJSON encodes the known fields followed by any preserved unknown keys.
func (s AgentState) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(agentStateFields(s))
	if err != nil {
		return nil, err
	}
	if len(s.extra) == 0 {
		return data, nil
	}

	merged := make(map[string]json.RawMessage, len(s.extra)+10)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range s.extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// HasActiveRound reports whether the state identifies a round in progress.
func (s *AgentState) HasActiveRound() bool {
	return s.CourseID != "" && s.RoundID != ""
}

// SetRound records the identity of the active round.
func (s *AgentState) SetRound(courseID, roundID, courseName string) {
	s.CourseID = courseID
	s.RoundID = roundID
	s.CourseName = courseName
}

// ClearRound forgets the active round. CourseID and RoundID always go together.
func (s *AgentState) ClearRound() {
	s.CourseID = ""
	s.RoundID = ""
	s.CourseName = ""
}

// Settings returns the persisted preferences keyed the way the config resolver names them.
// Unset values are omitted.
func (s *AgentState) Settings() map[string]any {
	out := make(map[string]any)
	if s == nil {
		return out
	}
	if s.ServerURL != "" {
		out["serverUrl"] = s.ServerURL
	}
	if s.TeeColor != "" {
		out["teeColor"] = s.TeeColor
	}
	if s.YardsPerCell != 0 {
		out["yardsPerCell"] = s.YardsPerCell
	}
	if s.MapFormat != "" {
		out["mapFormat"] = s.MapFormat
	}
	return out
}

// Load reads the state at path. It never fails: a missing file, malformed JSON,
// or a record without credentials all yield (nil, false).
func Load(path string) (*AgentState, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", path).Msg("State file unreadable")
		}
		return nil, false
	}

	if err := validateDocument(data); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("State file rejected")
		return nil, false
	}

	var s AgentState
	if err := json.Unmarshal(data, &s); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("State file not decodable")
		return nil, false
	}
	if s.AgentID == "" || s.APIKey == "" {
		return nil, false
	}

	return &s, true
}

// Save writes the full record as indented JSON, creating parent directories.
// The write is not atomic; concurrent invocations race and the last writer wins.
func Save(path string, s *AgentState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	log.Debug().Str("path", path).Msg("State saved")
	return nil
}

// Store binds Load and Save to one path.
type Store struct {
	path string
}

// NewStore creates a store for the given state file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (st *Store) Path() string {
	return st.path
}

// Load reads the bound file. See Load.
func (st *Store) Load() (*AgentState, bool) {
	return Load(st.path)
}

// Save writes the bound file. See Save.
func (st *Store) Save(s *AgentState) error {
	return Save(st.path, s)
}
