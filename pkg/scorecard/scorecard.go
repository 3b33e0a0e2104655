// Package scorecard turns a round's per-hole pars and scores into a card.
package scorecard

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/harun/clawgolf/pkg/golfapi"
)

// Divider separates the header, hole rows and total.
var Divider = strings.Repeat("─", 40)

// Row is one hole on the card.
type Row struct {
	Hole    int
	Par     int
	Strokes int
	Played  bool
}

// Name returns the score name, or "" for an unplayed hole.
func (r Row) Name() string {
	if !r.Played {
		return ""
	}
	return ScoreName(r.Strokes, r.Par)
}

// Card is the aggregated view of a round.
type Card struct {
	Rows         []Row
	Completed    bool
	TotalStrokes int
	TotalPar     int
	HolesPlayed  int
	CurrentHole  int
}

// Diff returns strokes minus par over the holes the total covers.
func (c Card) Diff() int {
	return c.TotalStrokes - c.TotalPar
}

// Label is "Total" for a finished round, otherwise "Thru N".
func (c Card) Label() string {
	if c.Completed {
		return "Total"
	}
	return fmt.Sprintf("Thru %d", c.HolesPlayed)
}

// Build aggregates a round. Rows follow parForHoles in hole order. A
// completed round totals every hole; otherwise only played holes count.
func Build(round golfapi.RoundView) Card {
	holes := make([]int, 0, len(round.ParForHoles))
	for h := range round.ParForHoles {
		holes = append(holes, h)
	}
	sort.Ints(holes)

	card := Card{
		Rows:        make([]Row, 0, len(holes)),
		Completed:   round.Completed(),
		HolesPlayed: len(round.HoleScores),
		CurrentHole: round.CurrentHoleNumber,
	}

	for _, h := range holes {
		par := round.ParForHoles[h]
		strokes, played := round.HoleScores[h]
		card.Rows = append(card.Rows, Row{Hole: h, Par: par, Strokes: strokes, Played: played})

		if card.Completed || played {
			card.TotalPar += par
			card.TotalStrokes += strokes
		}
	}

	return card
}

// ScoreName names a hole score relative to par.
func ScoreName(strokes, par int) string {
	d := strokes - par
	switch {
	case d <= -3:
		return "Albatross"
	case d == -2:
		return "Eagle"
	case d == -1:
		return "Birdie"
	case d == 0:
		return "Par"
	case d == 1:
		return "Bogey"
	case d == 2:
		return "Dbl Bogey"
	default:
		return fmt.Sprintf("+%d", d)
	}
}

// FormatDiff renders a differential as E, +N or -N.
func FormatDiff(d int) string {
	switch {
	case d == 0:
		return "E"
	case d > 0:
		return fmt.Sprintf("+%d", d)
	default:
		return fmt.Sprintf("%d", d)
	}
}

// Render writes the card as plain text.
func (c Card) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("\nScorecard\n")
	b.WriteString(Divider + "\n")
	for _, r := range c.Rows {
		if r.Played {
			fmt.Fprintf(&b, "  Hole %2d: %d (Par %d) %s\n", r.Hole, r.Strokes, r.Par, r.Name())
		} else {
			fmt.Fprintf(&b, "  Hole %2d: --  (Par %d)\n", r.Hole, r.Par)
		}
	}
	b.WriteString(Divider + "\n")
	fmt.Fprintf(&b, "  %s: %d (Par %d) %s\n", c.Label(), c.TotalStrokes, c.TotalPar, FormatDiff(c.Diff()))
	if !c.Completed {
		fmt.Fprintf(&b, "  Current: Hole %d\n", c.CurrentHole)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
