package ui

import (
	"strings"
)

var tabNames = []string{"1 Products", "2 Wishlist", "3 Alerts", "4 Account"}

// renderMain renders the full UI: header, content, status line.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderHeader renders the title bar with tabs and session state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var tabs []string
	for i, name := range tabNames {
		if View(i) == m.currentView {
			tabs = append(tabs, styles.TabOn.Render(name))
		} else {
			tabs = append(tabs, styles.Tab.Render(name))
		}
	}

	who := styles.Muted.Render("anonymous")
	if m.session != nil && m.session.LoggedIn() {
		name := m.session.Username()
		if name == "" {
			name = "signed in"
		}
		who = styles.Success.Render(name)
	}

	return styles.Accent.Render("shopwatch") + "  " +
		strings.Join(tabs, "  ") + "  " + who
}

// renderContent renders the active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProducts:
		return m.renderProducts()
	case ViewWishlist:
		return m.renderWishlist()
	case ViewAlerts:
		return m.renderAlerts()
	case ViewAccount:
		return m.renderAccount()
	default:
		return ""
	}
}

// renderStatusLine shows transient notices and key hints.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	hint := "j/k move   enter add   r reload   T theme   q quit"
	if m.currentView == ViewWishlist {
		hint = "j/k move   x remove   r reload   T theme   q quit"
	}
	line := styles.Muted.Render(hint)
	if m.notice != "" {
		line = styles.Warning.Render(m.notice) + "   " + line
	}
	return line
}

// reasonText renders a mutation failure reason for the status line.
func reasonText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
