package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mpetrik/skydeck/internal/domain"
	"github.com/mpetrik/skydeck/internal/store"
	"github.com/mpetrik/skydeck/internal/tui/styles"
)

const sidebarWidth = 26

// contentWidth returns the width left for the main pane.
func contentWidth(total int, sidebar bool) int {
	w := total
	if sidebar {
		w -= sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the kiosk: main pane plus optional sidebar on top, the
// printer footer pinned below.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	mainWidth := contentWidth(m.width, m.sidebarVisible)
	mainHeight := m.height - 4

	var main string
	if m.view == store.ViewPlaylists {
		main = m.playlistView(mainWidth, mainHeight)
	} else {
		main = m.nowPlayingView(mainWidth, mainHeight)
	}

	row := main
	if m.sidebarVisible {
		row = lipgloss.JoinHorizontal(lipgloss.Top, main, m.sidebarView(mainHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left, row, m.footerView())
}

func (m Model) nowPlayingView(width, height int) string {
	t := m.track

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(t.Title) + "\n")
	b.WriteString(styles.AccentStyle.Render(t.Artist) + "\n")
	if t.Album != "" {
		b.WriteString(styles.SubtitleStyle.Render(t.Album) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		styles.DimStyle.Render(fmtTime(t.Elapsed)),
		m.trackBar.ViewAs(t.Progress()),
		styles.DimStyle.Render(fmtTime(t.Duration)),
	))
	b.WriteString("\n")

	state := "⏹ stopped"
	switch t.State {
	case domain.StatePlaying:
		state = "▶ playing"
	case domain.StatePaused:
		state = "⏸ paused"
	}
	flags := []string{state}
	if t.Shuffle {
		flags = append(flags, styles.AccentStyle.Render("⇌ shuffle"))
	} else {
		flags = append(flags, styles.DimStyle.Render("⇌ shuffle"))
	}
	if t.Loop {
		flags = append(flags, styles.AccentStyle.Render("↻ loop"))
	} else {
		flags = append(flags, styles.DimStyle.Render("↻ loop"))
	}
	b.WriteString(strings.Join(flags, "  ") + "\n\n")

	if m.music.State() != domain.Connected {
		b.WriteString(styles.ErrorStyle.Render("music backend offline — showing mock data") + "\n")
	}

	b.WriteString(styles.DimStyle.Render("[1] play/pause  [2] next  [3] prev  [4] shuffle  [5] loop  [tab] playlists"))

	return styles.PaneBorder.Width(width - 2).Height(height).Render(b.String())
}

func (m Model) playlistView(width, height int) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("PLAYLISTS") + "\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n")
	}
	b.WriteString("\n")

	names := m.visiblePlaylists()
	if len(names) == 0 {
		b.WriteString(styles.DimStyle.Render("no playlists"))
	}
	for i, name := range names {
		if i == m.cursor {
			b.WriteString(styles.SelectedStyle.Render("▸ "+name) + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("↑/↓ scroll  enter select  / filter"))

	return styles.PaneBorder.Width(width - 2).Height(height).Render(b.String())
}

func (m Model) sidebarView(height int) string {
	moment := m.clock.Moment(m.now)

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("SKYBLOCK") + "\n\n")

	b.WriteString(styles.BlueStyle.Render("☄ Cult of the Fallen Star") + "\n")
	b.WriteString(styles.SubtitleStyle.Render(
		fmt.Sprintf("SB %02d:%02d  Day %d", moment.Hour, moment.Minute, moment.Day)) + "\n")
	b.WriteString(styles.CountdownStyle.Render(fmtCountdown(m.clock.UntilCultEvent(m.now))) + "\n\n")

	fwRemaining := m.clock.UntilFreeWill(m.now, m.anchor)
	b.WriteString(styles.AmberStyle.Render("⧗ Free Will / Rift") + "\n")
	b.WriteString(styles.CountdownStyle.Render(fmtCountdown(fwRemaining)) + "\n")
	b.WriteString(m.fwBar.ViewAs(fwRemaining.Seconds()/m.clock.FreeWillCycle.Seconds()) + "\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("cycle: %dh", int(m.clock.FreeWillCycle.Hours()))))

	return styles.SidebarBorder.Width(sidebarWidth - 2).Height(height).Render(b.String())
}

func (m Model) footerView() string {
	p := m.printerRec

	stateStyle := styles.DimStyle
	switch p.State {
	case domain.PrinterPrinting:
		stateStyle = styles.AccentStyle
	case domain.PrinterPaused:
		stateStyle = styles.AmberStyle
	case domain.PrinterError:
		stateStyle = styles.ErrorStyle
	}

	parts := []string{
		"🖨 " + stateStyle.Render(strings.ToUpper(p.State)),
		styles.SubtitleStyle.Render(fmt.Sprintf("🔥 %.0f° / %.0f°", p.HotendTemp, p.HotendTarget)),
		styles.SubtitleStyle.Render(fmt.Sprintf("🛏 %.0f° / %.0f°", p.BedTemp, p.BedTarget)),
		styles.AmberStyle.Render(fmt.Sprintf("%.1f%%", p.ProgressRatio()*100)),
		m.printBar.ViewAs(p.ProgressRatio()),
	}
	if m.printer.State() != domain.Connected {
		parts = append(parts, styles.ErrorStyle.Render("offline"))
	}

	return styles.PaneBorder.Width(m.width - 2).Render(strings.Join(parts, "  "))
}

// fmtTime renders track positions: mm:ss, or h:mm:ss from an hour up.
func fmtTime(seconds float64) string {
	s := int(seconds)
	if s < 0 {
		s = 0
	}
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// fmtCountdown renders a countdown as hh:mm:ss.
func fmtCountdown(d time.Duration) string {
	s := int(d.Seconds())
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
