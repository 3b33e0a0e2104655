package golfapi

// Round status values reported by the server.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Course is one entry of the course catalogue. Optional numbers are nil
// when the server omits them.
type Course struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	HoleCount  *int     `json:"holeCount,omitempty"`
	TotalPar   *int     `json:"totalPar,omitempty"`
	TotalYards *int     `json:"totalYards,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

// Playable reports whether the course has at least one hole.
func (c Course) Playable() bool {
	return c.HoleCount != nil && *c.HoleCount > 0
}

// RoundView is the server's view of a round.
type RoundView struct {
	ID                string      `json:"id"`
	CurrentHoleNumber int         `json:"currentHoleNumber"`
	StrokeCount       int         `json:"strokeCount"`
	Status            string      `json:"status"`
	ParForHoles       map[int]int `json:"parForHoles"`
	HoleScores        map[int]int `json:"holeScores"`
}

// Completed reports whether the server marked the round finished.
func (r RoundView) Completed() bool {
	return r.Status == StatusCompleted
}

// CurrentPar returns the par of the current hole when known.
func (r RoundView) CurrentPar() (int, bool) {
	par, ok := r.ParForHoles[r.CurrentHoleNumber]
	return par, ok
}

type roundEnvelope struct {
	Round RoundView `json:"round"`
}

type coursesEnvelope struct {
	Courses []Course `json:"courses"`
}

// Hazard is one entry of the server's map analysis.
type Hazard struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// ASCIIAnalysis carries hazards extracted from the ASCII map.
type ASCIIAnalysis struct {
	Hazards []Hazard `json:"hazards"`
}

// StockYardage is a club's full-power carry and total distance.
type StockYardage struct {
	Name  string  `json:"name"`
	Carry float64 `json:"carry"`
	Total float64 `json:"total"`
}

// HoleInfo is the current hole context. Every field is optional.
type HoleInfo struct {
	HoleNumber      *int           `json:"holeNumber,omitempty"`
	Par             *int           `json:"par,omitempty"`
	StrokeNumber    *int           `json:"strokeNumber,omitempty"`
	BallLie         string         `json:"ballLie,omitempty"`
	DistanceToHole  *float64       `json:"distanceToHole,omitempty"`
	DirectionToHole *float64       `json:"directionToHole,omitempty"`
	ASCIIMap        string         `json:"asciiMap,omitempty"`
	ASCIILegend     string         `json:"asciiLegend,omitempty"`
	ASCIIAnalysis   *ASCIIAnalysis `json:"asciiAnalysis,omitempty"`
	StockYardages   []StockYardage `json:"stockYardages,omitempty"`
}

// Hazards returns the analysed hazards, if any.
func (h *HoleInfo) Hazards() []Hazard {
	if h == nil || h.ASCIIAnalysis == nil {
		return nil
	}
	return h.ASCIIAnalysis.Hazards
}

// ShotDecision is a normalized shot ready to submit.
type ShotDecision struct {
	Club         string  `json:"club"`
	AimDirection float64 `json:"aimDirection"`
	Power        float64 `json:"power"`
}

// ShotResult describes where the ball went.
type ShotResult struct {
	Carry          float64 `json:"carry"`
	Roll           float64 `json:"roll"`
	TotalDistance  float64 `json:"totalDistance"`
	LandingTerrain string  `json:"landingTerrain"`
	FinalLie       string  `json:"finalLie"`
	Penalties      int     `json:"penalties"`
	Holed          bool    `json:"holed"`
}

// ShotResponse is the server's answer to a submitted shot.
type ShotResponse struct {
	ShotResult     ShotResult `json:"shotResult"`
	HoleCompleted  bool       `json:"holeCompleted"`
	RoundCompleted bool       `json:"roundCompleted"`
	Round          RoundView  `json:"round"`
}

// RoundFinished reports whether this shot ended the round.
func (s ShotResponse) RoundFinished() bool {
	return s.RoundCompleted || s.Round.Completed()
}

// Registration holds the credentials issued to a new agent.
type Registration struct {
	AgentID string `json:"agentId"`
	APIKey  string `json:"apiKey"`
	Name    string `json:"name,omitempty"`
}

type registerRequest struct {
	RegistrationKey string `json:"registrationKey"`
	Name            string `json:"name,omitempty"`
}

type startRoundRequest struct {
	AgentID      string `json:"agentId"`
	TeeColor     string `json:"teeColor"`
	YardsPerCell int    `json:"yardsPerCell,omitempty"`
}

type holeImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
