package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/harun/clawgolf/pkg/golfapi"
	"github.com/harun/clawgolf/pkg/shot"
)

// printer writes the game transcript to out and hints to errOut. Styling is
// dropped when out is not a colour terminal or NO_COLOR is set.
type printer struct {
	out    io.Writer
	errOut io.Writer
	plain  bool

	heading lipgloss.Style
	good    lipgloss.Style
	alert   lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(out, errOut io.Writer) *printer {
	r := lipgloss.NewRenderer(out)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}

	return &printer{
		out:     out,
		errOut:  errOut,
		plain:   r.ColorProfile() == termenv.Ascii,
		heading: r.NewStyle().Bold(true),
		good:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		alert:   r.NewStyle().Foreground(lipgloss.Color("3")),
		muted:   r.NewStyle().Faint(true),
	}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

// Line prints one line of transcript.
func (p *printer) Line(text string) {
	fmt.Fprintln(p.out, text)
}

// Linef prints one formatted line of transcript.
func (p *printer) Linef(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Blank prints an empty line.
func (p *printer) Blank() {
	fmt.Fprintln(p.out)
}

// Heading prints a bold line.
func (p *printer) Heading(text string) {
	p.Line(p.style(p.heading, text))
}

// Hint prints a line on the diagnostic stream.
func (p *printer) Hint(text string) {
	fmt.Fprintln(p.errOut, p.style(p.alert, text))
}

// Courses prints the playable courses.
func (p *printer) Courses(courses []golfapi.Course) {
	if len(courses) == 0 {
		p.Line("No courses with holes are currently available.")
		return
	}

	p.Heading("Available courses:")
	p.Blank()
	for _, c := range courses {
		p.Linef("  %s", p.style(p.heading, c.Name))
		p.Linef("    ID: %s", c.ID)
		p.Linef("    Holes: %s | Par: %s | Yards: %s | Rating: %s",
			optInt(c.HoleCount, "?"), optInt(c.TotalPar, "?"), optInt(c.TotalYards, "?"), optFloat(c.Rating, "unrated"))
		p.Blank()
	}
	p.Line(p.style(p.muted, "Use: start --courseId <id> to begin a round."))
}

// HoleContext prints the map, the situation summary, hazards and the bag.
func (p *printer) HoleContext(info *golfapi.HoleInfo) {
	p.Blank()

	if info.ASCIIMap != "" {
		p.Line(info.ASCIIMap)
		if info.ASCIILegend != "" {
			p.Line(info.ASCIILegend)
		}
		p.Blank()
	}

	var parts []string
	if info.HoleNumber != nil {
		parts = append(parts, fmt.Sprintf("Hole %d", *info.HoleNumber))
	}
	if info.Par != nil {
		parts = append(parts, fmt.Sprintf("Par %d", *info.Par))
	}
	if info.StrokeNumber != nil {
		parts = append(parts, fmt.Sprintf("Stroke %d", *info.StrokeNumber))
	}
	if info.BallLie != "" {
		parts = append(parts, "Lie: "+info.BallLie)
	}
	if info.DistanceToHole != nil {
		parts = append(parts, wholeNumber(*info.DistanceToHole)+"y to flag")
	}
	if info.DirectionToHole != nil {
		parts = append(parts, "Bearing: "+wholeNumber(*info.DirectionToHole)+" deg")
	}
	p.Line(strings.Join(parts, " | "))
	p.Blank()

	if hazards := info.Hazards(); len(hazards) > 0 {
		p.Heading("Hazards:")
		for _, h := range hazards {
			p.Linef("  %s: %s", h.Type, h.Location)
		}
		p.Blank()
	}

	if len(info.StockYardages) > 0 {
		p.Heading("Your bag (stock yardages at full power):")
		for _, club := range info.StockYardages {
			p.Linef("  %-8s %3sy carry / %3sy total", club.Name, number(club.Carry), number(club.Total))
		}
		p.Blank()
	}
}

// ShotSummary prints the shot about to be played.
func (p *printer) ShotSummary(d golfapi.ShotDecision) {
	p.Linef("Shot: %s @ %s deg, power %d%%", d.Club, number(d.AimDirection), shot.Percent(d.Power))
}

// ShotResult prints where the ball went.
func (p *printer) ShotResult(r golfapi.ShotResult) {
	p.Blank()
	p.Linef("Result: carry %.1fy, roll %.1fy, total %.1fy", r.Carry, r.Roll, r.TotalDistance)
	p.Linef("Landing: %s, final lie: %s", r.LandingTerrain, r.FinalLie)
	if r.Penalties > 0 {
		p.Linef("Penalties: +%d", r.Penalties)
	}
	if r.Holed {
		p.Line(p.style(p.good, "HOLED!"))
	}
	p.Blank()
}

func optInt(v *int, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return number(*v)
}

// number prints a float the shortest exact way, so 72 stays "72".
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// wholeNumber rounds half away from zero.
func wholeNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}
