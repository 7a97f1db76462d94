package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fitsunits/pkg/pipeline"
)

// Human-readable output goes to stdout; transient progress to stderr.
// Tests swap both for buffers.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorFg     = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Exported styles are shared by the command renderers and the unit browser.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleValue     = lipgloss.NewStyle().Foreground(colorFg)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
	StyleError     = lipgloss.NewStyle().Foreground(colorFail)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCached      = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed    = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
	styleHeader      = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleBorder      = lipgloss.NewStyle().Foreground(colorFaint)
	styleKeyLabel    = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

const (
	iconArrow  = "→"
	labelCache = "cached"
	labelFresh = "fresh"
)

// statusMark is the leading icon of a one-line status message.
type statusMark struct {
	icon  string
	style lipgloss.Style
	body  *lipgloss.Style
}

var (
	markSuccess = statusMark{icon: "✓", style: lipgloss.NewStyle().Foreground(colorOK)}
	markError   = statusMark{icon: "✗", style: lipgloss.NewStyle().Foreground(colorFail)}
	markWarning = statusMark{icon: "!", style: lipgloss.NewStyle().Foreground(colorWarn), body: &StyleWarning}
	markInfo    = statusMark{icon: "›", style: lipgloss.NewStyle().Foreground(colorMuted)}
)

func (m statusMark) println(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.body != nil {
		msg = m.body.Render(msg)
	}
	fmt.Fprintln(stdout, m.style.Render(m.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.println(format, args...) }
func printError(format string, args ...any)   { markError.println(format, args...) }
func printWarning(format string, args ...any) { markWarning.println(format, args...) }
func printInfo(format string, args ...any)    { markInfo.println(format, args...) }

// printDetail prints a muted line indented under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints one field of a parse or conversion result.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, "  "+styleKeyLabel.Render(key)+" "+StyleValue.Render(value))
}

// printBatchStats summarizes a batch run on one line, e.g.
// "3 jobs · 1 failed · 2 cached".
func printBatchStats(stats pipeline.Stats) {
	parts := []string{fmt.Sprintf("%d jobs", stats.Jobs)}
	if stats.Failed > 0 {
		parts = append(parts, StyleError.Render(fmt.Sprintf("%d failed", stats.Failed)))
	}
	if stats.Warnings > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d warnings", stats.Warnings)))
	}
	if stats.CacheHits > 0 {
		parts = append(parts, styleCached.Render(fmt.Sprintf("%d %s", stats.CacheHits, labelCache)))
	} else {
		parts = append(parts, styleComputed.Render(labelFresh))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func cacheLabel(hit bool) string {
	if hit {
		return styleCached.Render(labelCache)
	}
	return styleComputed.Render(labelFresh)
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
