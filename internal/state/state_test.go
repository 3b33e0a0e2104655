package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s, ok := Load(filepath.Join(t.TempDir(), "agent.json"))
		assert.False(t, ok)
		assert.Nil(t, s)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, "{not json")

		_, ok := Load(path)
		assert.False(t, ok)
	})

	t.Run("missing apiKey", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `{"agentId":"a1"}`)

		_, ok := Load(path)
		assert.False(t, ok)
	})

	t.Run("empty agentId", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `{"agentId":"","apiKey":"k"}`)

		_, ok := Load(path)
		assert.False(t, ok)
	})

	t.Run("array instead of object", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `[1,2]`)

		_, ok := Load(path)
		assert.False(t, ok)
	})

	t.Run("full record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `{
			"agentId": "a1",
			"apiKey": "k1",
			"serverUrl": "http://localhost:3000",
			"courseId": "c1",
			"roundId": "r1",
			"courseName": "Pebble",
			"teeColor": "blue",
			"yardsPerCell": 5,
			"mapFormat": "ascii"
		}`)

		s, ok := Load(path)
		require.True(t, ok)
		assert.Equal(t, "a1", s.AgentID)
		assert.Equal(t, "k1", s.APIKey)
		assert.Equal(t, "http://localhost:3000", s.ServerURL)
		assert.Equal(t, 5, s.YardsPerCell)
		assert.Equal(t, "ascii", s.MapFormat)
		assert.True(t, s.HasActiveRound())
	})

	t.Run("null and mistyped optional fields keep the credentials", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"null name", `{"agentId":"a1","apiKey":"k1","name":null}`},
			{"string yardsPerCell", `{"agentId":"a1","apiKey":"k1","yardsPerCell":"10"}`},
			{"null round", `{"agentId":"a1","apiKey":"k1","courseId":null,"roundId":null}`},
			{"numeric teeColor", `{"agentId":"a1","apiKey":"k1","teeColor":7,"mapFormat":"ascii"}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "agent.json")
				writeFile(t, path, tt.content)

				s, ok := Load(path)
				require.True(t, ok)
				assert.Equal(t, "a1", s.AgentID)
				assert.Equal(t, "k1", s.APIKey)
				assert.Empty(t, s.Name)
				assert.Zero(t, s.YardsPerCell)
				assert.Empty(t, s.TeeColor)
				assert.False(t, s.HasActiveRound())
			})
		}
	})

	t.Run("mistyped field does not clobber the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `{"agentId":"a1","apiKey":"k1","name":null,"courseId":"c1","roundId":"r1","yardsPerCell":"10","mapFormat":"ascii"}`)

		s, ok := Load(path)
		require.True(t, ok)
		assert.True(t, s.HasActiveRound())
		assert.Equal(t, "ascii", s.MapFormat)
		assert.Zero(t, s.YardsPerCell)
	})

	t.Run("non-string credentials", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `{"agentId":1,"apiKey":"k1"}`)

		_, ok := Load(path)
		assert.False(t, ok)
	})
}

func TestSave(t *testing.T) {
	t.Run("creates parent directories and pretty prints", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "agent.json")

		err := Save(path, &AgentState{AgentID: "a1", APIKey: "k1", TeeColor: "white"})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(string(data), "}\n"))
		assert.Contains(t, string(data), "\n  \"agentId\": \"a1\"")
		assert.NotContains(t, string(data), "roundId")
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		in := &AgentState{AgentID: "a1", APIKey: "k1", YardsPerCell: 10}
		in.SetRound("c1", "r1", "Links")

		require.NoError(t, Save(path, in))
		out, ok := Load(path)
		require.True(t, ok)
		assert.Equal(t, "c1", out.CourseID)
		assert.Equal(t, "r1", out.RoundID)
		assert.Equal(t, "Links", out.CourseName)
		assert.Equal(t, 10, out.YardsPerCell)
	})

	t.Run("unknown keys survive a rewrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.json")
		writeFile(t, path, `{"agentId":"a1","apiKey":"k1","handicap":12,"notes":{"a":true}}`)

		s, ok := Load(path)
		require.True(t, ok)
		s.TeeColor = "red"
		require.NoError(t, Save(path, s))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, float64(12), raw["handicap"])
		assert.Equal(t, map[string]any{"a": true}, raw["notes"])
		assert.Equal(t, "red", raw["teeColor"])
	})
}

func TestClearRound(t *testing.T) {
	s := &AgentState{AgentID: "a1", APIKey: "k1"}
	s.SetRound("c1", "r1", "Links")
	require.True(t, s.HasActiveRound())

	s.ClearRound()
	assert.False(t, s.HasActiveRound())
	assert.Empty(t, s.CourseID)
	assert.Empty(t, s.RoundID)
	assert.Empty(t, s.CourseName)
}

func TestSettings(t *testing.T) {
	var nilState *AgentState
	assert.Empty(t, nilState.Settings())

	s := &AgentState{ServerURL: "http://x", YardsPerCell: 4}
	assert.Equal(t, map[string]any{"serverUrl": "http://x", "yardsPerCell": 4}, s.Settings())
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.json")
	st := NewStore(path)
	assert.Equal(t, path, st.Path())

	_, ok := st.Load()
	assert.False(t, ok)

	require.NoError(t, st.Save(&AgentState{AgentID: "a", APIKey: "b"}))
	s, ok := st.Load()
	require.True(t, ok)
	assert.Equal(t, "a", s.AgentID)
}
