package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avries/shopwatch/internal/collection"
)

// handleKey processes keyboard input. The account view owns most keys
// while its form is active; everything else shares the global map.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentView == ViewAccount {
		return m.handleAccountKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1", "p":
		return m.switchView(ViewProducts)

	case "2", "w":
		return m.switchView(ViewWishlist)

	case "3", "a":
		return m.switchView(ViewAlerts)

	case "4", "l":
		return m.switchView(ViewAccount)

	case "r":
		return m, m.reloadCurrentCmd()

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "j", "down":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
		return m, nil

	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "g", "home":
		m.selectedRow = 0
		return m, nil

	case "G", "end":
		if count := m.rowCount(); count > 0 {
			m.selectedRow = count - 1
		}
		return m, nil

	case "enter":
		if m.currentView == ViewProducts {
			return m.addSelected()
		}
		return m, nil

	case "x", "d":
		if m.currentView == ViewWishlist {
			return m.removeSelected()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == v {
		return m, nil
	}
	m.currentView = v
	m.selectedRow = 0
	m.notice = ""

	// Load lazily the first time a view is visited.
	switch v {
	case ViewWishlist:
		if m.wishlistSnap.Status == collection.StatusIdle {
			return m, m.loadWishlistCmd()
		}
	case ViewAlerts:
		if m.alertsSnap.Status == collection.StatusIdle {
			return m, m.loadAlertsCmd()
		}
	}
	return m, nil
}

func (m Model) reloadCurrentCmd() tea.Cmd {
	switch m.currentView {
	case ViewProducts:
		return m.loadProductsCmd()
	case ViewWishlist:
		return m.loadWishlistCmd()
	case ViewAlerts:
		return m.loadAlertsCmd()
	default:
		return nil
	}
}

func (m Model) addSelected() (tea.Model, tea.Cmd) {
	items := m.productsSnap.Items
	if m.selectedRow >= len(items) {
		return m, nil
	}
	if m.session == nil || !m.session.LoggedIn() {
		m.notice = "log in to use the wishlist"
		return m, nil
	}
	rec := items[m.selectedRow].Record
	m.notice = "adding " + rec.Value.Name
	return m, m.addToWishlistCmd(rec)
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	items := m.wishlistSnap.Items
	if m.selectedRow >= len(items) {
		return m, nil
	}
	entry := items[m.selectedRow]
	m.notice = "removing " + entry.Value.Name
	return m, m.removeFromWishlistCmd(entry.Key)
}
