package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the editor surface.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	status := renderStatusBar(&m, m.width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	left := m.renderLeftPanel(bodyHeight)
	right := m.renderRightPanel(bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.picker != nil {
		overlay := m.picker.View()
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, overlay)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render(" Loadout")
	active := m.sess.ActiveProfile()
	state := hintStyle.Render("inactive")
	if active != nil {
		state = profileActiveStyle.Render("● " + *active)
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(state) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + state + " "
}

func (m Model) renderLeftPanel(height int) string {
	style := unfocusedBorderStyle
	if m.focusedPanel == 0 {
		style = focusedBorderStyle
	}
	return style.
		Width(m.leftPanelWidth() - 2).
		Height(height - 2).
		Render(m.list.View())
}

func (m Model) renderRightPanel(height int) string {
	style := unfocusedBorderStyle
	if m.focusedPanel == 1 {
		style = focusedBorderStyle
	}

	var content string
	if m.form != nil {
		content = m.form.View()
	} else {
		content = m.renderProfileDetail()
	}

	return style.
		Width(m.rightPanelWidth() - 2).
		Height(height - 2).
		Render(content)
}

// renderProfileDetail shows the selected profile read-only.
func (m Model) renderProfileDetail() string {
	p := m.list.Selected()
	if p == nil {
		return hintStyle.Render("Select a profile to see its details.")
	}

	toggle := func(on bool) string {
		if on {
			return toggleOnStyle.Render("on")
		}
		return toggleOffStyle.Render("off")
	}

	kill := hintStyle.Render("none")
	if len(p.ProcessesToKill) > 0 {
		kill = formValueStyle.Render(strings.Join(p.ProcessesToKill, ", "))
	}
	image := hintStyle.Render("none")
	if p.CrosshairImagePath != "" {
		image = formValueStyle.Render(p.CrosshairImagePath)
	}

	rows := []string{
		overlayTitleStyle.Render(p.Name),
		formLabelStyle.Render("Kill list:") + " " + kill,
		formLabelStyle.Render("Crosshair:") + " " + image,
		formLabelStyle.Render("Offsets:") + " " + formValueStyle.Render(
			fmt.Sprintf("%+d, %+d", p.CrosshairXOffset, p.CrosshairYOffset)),
		formLabelStyle.Render("Overlay:") + " " + toggle(p.OverlayEnabled),
		formLabelStyle.Render("Max fans:") + " " + toggle(p.FanSpeedMax),
		"",
		hintStyle.Render("e edit  |  s activate"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
