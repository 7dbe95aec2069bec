package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Stats contains statistics about a finished render
type Stats struct {
	Width    int
	Height   int
	Pixels   int           // Pixels rendered
	Rays     int           // Primary rays traced
	Tiles    int           // Tiles rendered
	Skipped  int           // Tiles skipped after cancellation
	Workers  int           // Worker goroutines
	Duration time.Duration // Wall-clock render time
}

// RaysPerSecond is the primary ray throughput
func (s Stats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Duration.Seconds()
}

// Table formats the stats as a text table
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Pixels", fmt.Sprint(s.Pixels)})
	table.Append([]string{"Primary rays", fmt.Sprint(s.Rays)})
	table.Append([]string{"Tiles", fmt.Sprintf("%d (%d skipped)", s.Tiles, s.Skipped)})
	table.Append([]string{"Workers", fmt.Sprint(s.Workers)})
	table.SetFooter([]string{"Time", fmt.Sprintf("%s (%.0f rays/s)", s.Duration.Round(time.Millisecond), s.RaysPerSecond())})
	table.Render()
	return buf.String()
}
