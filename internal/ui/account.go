package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// accountForm holds the login/register form state.
type accountForm struct {
	registering bool
	inputs      []textinput.Model
	focus       int
	busy        bool
	status      string
}

func newAccountForm() accountForm {
	f := accountForm{}
	f.setMode(false)
	return f
}

// setMode rebuilds the inputs for login (identifier, password) or
// register (username, email, password).
func (f *accountForm) setMode(register bool) {
	f.registering = register
	f.focus = 0
	f.status = ""

	var labels []string
	if register {
		labels = []string{"username", "email", "password"}
	} else {
		labels = []string{"username or email", "password"}
	}

	f.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 100
		if label == "password" {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		if i == 0 {
			ti.Focus()
		}
		f.inputs[i] = ti
	}
}

func (f *accountForm) cycleFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *accountForm) values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

// handleAccountKey routes keys while the account view is active.
func (m Model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Logged-in state shows account info, not the form.
	if m.session != nil && m.session.LoggedIn() {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "o":
			m.session.Logout()
			m.savePrefs()
			m.notice = "logged out"
			m.form = newAccountForm()
			return m, nil
		case "1", "p", "esc":
			return m.switchView(ViewProducts)
		case "2", "w":
			return m.switchView(ViewWishlist)
		case "3", "a":
			return m.switchView(ViewAlerts)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m.switchView(ViewProducts)

	case "tab", "down":
		m.form.cycleFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.form.cycleFocus(-1)
		return m, nil

	case "ctrl+r":
		m.form.setMode(!m.form.registering)
		return m, nil

	case "enter":
		return m.submitAccountForm()
	}

	// Everything else goes to the focused input.
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitAccountForm() (tea.Model, tea.Cmd) {
	if m.form.busy {
		return m, nil
	}
	values := m.form.values()
	for _, v := range values {
		if v == "" {
			m.form.status = "all fields are required"
			return m, nil
		}
	}
	m.form.busy = true
	m.form.status = ""
	if m.form.registering {
		return m, m.registerCmd(values[0], values[1], values[2])
	}
	return m, m.loginCmd(values[0], values[1])
}

// renderAccount renders the account view: session info when logged in,
// the login/register form otherwise.
func (m Model) renderAccount() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.session != nil && m.session.LoggedIn() {
		b.WriteString(styles.Accent.Render("Account") + "\n\n")
		name := m.session.Username()
		if name == "" {
			name = "(resumed session)"
		}
		b.WriteString("  logged in as " + styles.Success.Render(name) + "\n\n")
		b.WriteString(styles.Muted.Render("  o logout   esc back") + "\n")
		return b.String()
	}

	title := "Log in"
	hint := "enter submit   tab next field   ctrl+r register instead   esc back"
	if m.form.registering {
		title = "Create account"
		hint = "enter submit   tab next field   ctrl+r log in instead   esc back"
	}

	b.WriteString(styles.Accent.Render(title) + "\n\n")
	for i := range m.form.inputs {
		b.WriteString("  " + m.form.inputs[i].View() + "\n")
	}
	b.WriteString("\n")
	if m.form.busy {
		b.WriteString("  " + m.spin.View() + " contacting server...\n")
	}
	if m.form.status != "" {
		b.WriteString("  " + styles.Danger.Render(m.form.status) + "\n")
	}
	b.WriteString("\n" + styles.Muted.Render("  "+hint) + "\n")
	return b.String()
}
