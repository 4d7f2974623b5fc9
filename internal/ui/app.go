package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avries/shopwatch/internal/alerts"
	"github.com/avries/shopwatch/internal/collection"
	"github.com/avries/shopwatch/internal/prefs"
	"github.com/avries/shopwatch/internal/session"
	"github.com/avries/shopwatch/internal/storefront"
	"github.com/avries/shopwatch/internal/wishlist"
)

// View represents the current active view.
type View int

const (
	ViewProducts View = iota
	ViewWishlist
	ViewAlerts
	ViewAccount
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *session.Session
	Products  *collection.Store[storefront.Product]
	Wishlist  *wishlist.Controller
	Alerts    *alerts.Feed
	ThemeName string
	PrefsPath string
	UITick    time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	session  *session.Session
	products *collection.Store[storefront.Product]
	wishlist *wishlist.Controller
	alerts   *alerts.Feed

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	selectedRow int
	spin        spinner.Model
	notice      string
	prefsPath   string
	uiTick      time.Duration

	// Data state
	productsSnap collection.Snapshot[storefront.Product]
	wishlistSnap collection.Snapshot[storefront.Product]
	alertsSnap   collection.Snapshot[storefront.Alert]

	// Account form state
	form accountForm
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick == 0 {
		uiTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:         ctx,
		session:     opts.Session,
		products:    opts.Products,
		wishlist:    opts.Wishlist,
		alerts:      opts.Alerts,
		theme:       GetTheme(themeName),
		currentView: ViewProducts,
		spin:        sp,
		prefsPath:   prefsPath,
		uiTick:      uiTick,
		form:        newAccountForm(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.uiTick),
		m.spin.Tick,
		m.loadProductsCmd(),
	}
	if m.session != nil && m.session.LoggedIn() {
		cmds = append(cmds, m.loadWishlistCmd(), m.loadAlertsCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		// Pull snapshots the background poller may have refreshed.
		m.pullSnapshots()
		return m, tickCmd(m.uiTick)

	case productsMsg:
		m.productsSnap = collection.Snapshot[storefront.Product](msg)
		m.clampCursor()
		return m, nil

	case wishlistMsg:
		m.wishlistSnap = collection.Snapshot[storefront.Product](msg)
		m.clampCursor()
		return m, nil

	case alertsMsg:
		m.alertsSnap = collection.Snapshot[storefront.Alert](msg)
		m.clampCursor()
		return m, nil

	case mutationMsg:
		return m.handleMutation(msg)

	case loginMsg:
		return m.handleLogin(msg)

	case registerMsg:
		return m.handleRegister(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderMain()
}

// pullSnapshots reads the current state of every collection without
// touching the network.
func (m *Model) pullSnapshots() {
	if m.products != nil {
		m.productsSnap = m.products.Snapshot()
	}
	if m.wishlist != nil {
		m.wishlistSnap = m.wishlist.Snapshot()
	}
	if m.alerts != nil {
		m.alertsSnap = m.alerts.Snapshot()
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := m.rowCount()
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) rowCount() int {
	switch m.currentView {
	case ViewProducts:
		return len(m.productsSnap.Items)
	case ViewWishlist:
		return len(m.wishlistSnap.Items)
	case ViewAlerts:
		return len(m.alertsSnap.Items)
	default:
		return 0
	}
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	m.pullSnapshots()
	switch {
	case msg.outcome.AlreadyPresent:
		m.notice = "already on wishlist"
	case msg.outcome.OK:
		m.notice = msg.action + " ok"
	default:
		m.notice = msg.action + " failed: " + reasonText(msg.outcome.Reason)
	}
	return m, nil
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.form.busy = false
	if msg.err != nil {
		m.form.status = "login failed: " + msg.err.Error()
		return m, nil
	}
	m.form.status = ""
	m.notice = "logged in as " + m.session.Username()
	m.savePrefs()
	m.currentView = ViewProducts
	return m, tea.Batch(m.loadWishlistCmd(), m.loadAlertsCmd())
}

func (m Model) handleRegister(msg registerMsg) (tea.Model, tea.Cmd) {
	m.form.busy = false
	if msg.err != nil {
		m.form.status = "registration failed: " + msg.err.Error()
		return m, nil
	}
	m.form.status = "account created, log in below"
	m.form.setMode(false)
	return m, nil
}

// savePrefs persists the theme and the current session token.
func (m Model) savePrefs() {
	token := ""
	if m.session != nil {
		token = m.session.Token()
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Token: token})
}

// Messages

type tickMsg time.Time

type productsMsg collection.Snapshot[storefront.Product]

type wishlistMsg collection.Snapshot[storefront.Product]

type alertsMsg collection.Snapshot[storefront.Alert]

type mutationMsg struct {
	action  string
	key     string
	outcome collection.Outcome
}

type loginMsg struct{ err error }

type registerMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadProductsCmd() tea.Cmd {
	store, ctx := m.products, m.ctx
	return func() tea.Msg {
		return productsMsg(store.Load(ctx))
	}
}

func (m Model) loadWishlistCmd() tea.Cmd {
	ctl, ctx := m.wishlist, m.ctx
	return func() tea.Msg {
		return wishlistMsg(ctl.Load(ctx))
	}
}

func (m Model) loadAlertsCmd() tea.Cmd {
	feed, ctx := m.alerts, m.ctx
	return func() tea.Msg {
		return alertsMsg(feed.Load(ctx))
	}
}

func (m Model) addToWishlistCmd(rec collection.Record[storefront.Product]) tea.Cmd {
	ctl, ctx := m.wishlist, m.ctx
	return func() tea.Msg {
		return mutationMsg{action: "add", key: rec.Key, outcome: ctl.Add(ctx, rec)}
	}
}

func (m Model) removeFromWishlistCmd(key string) tea.Cmd {
	ctl, ctx := m.wishlist, m.ctx
	return func() tea.Msg {
		return mutationMsg{action: "remove", key: key, outcome: ctl.Remove(ctx, key)}
	}
}

func (m Model) loginCmd(identifier, password string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return loginMsg{err: sess.Login(ctx, identifier, password)}
	}
}

func (m Model) registerCmd(username, email, password string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return registerMsg{err: sess.Register(ctx, username, email, password)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
