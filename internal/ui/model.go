package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"glitchterm/internal/api"
	"glitchterm/internal/config"
	"glitchterm/internal/domain"
	"glitchterm/internal/eventbus"
	"glitchterm/internal/features"
	"glitchterm/internal/profile"
	"glitchterm/internal/search"
	"glitchterm/internal/store"
	"glitchterm/internal/ui/input"
	inputtypes "glitchterm/internal/ui/input/types"
	"glitchterm/internal/ui/modal"
	"glitchterm/internal/ui/views"
)

const listPageSize = 40

// SearchSession is the part of search.Session the UI drives
type SearchSession interface {
	Search(raw string)
	Flush() bool
	AccountIDs() []string
	Status() search.Status
}

// Backend is the REST surface the profile screen reads from
type Backend interface {
	Account(ctx context.Context, id string) (*domain.Account, error)
	Relationships(ctx context.Context, ids ...string) ([]domain.Relationship, error)
	Followers(ctx context.Context, id string, page api.Page) (*api.AccountPage, error)
	Following(ctx context.Context, id string, page api.Page) (*api.AccountPage, error)
}

type AccountStore interface {
	store.AccountReader
	store.AccountImporter
}

type RelationshipStore interface {
	store.RelationshipReader
	store.RelationshipImporter
}

// Deps are the collaborators of the UI model
type Deps struct {
	Context       context.Context
	Bus           eventbus.EventBus
	Config        *config.Config
	Session       SearchSession
	Backend       Backend
	Accounts      AccountStore
	Relationships RelationshipStore
	Features      features.Set
	Logger        *zap.Logger
}

type listTab string

const (
	tabFollowers listTab = "followers"
	tabFollowing listTab = "following"
)

type accountList struct {
	profile.AccountList
	next     api.Page
	loaded   bool
	inflight bool
}

type profileScreen struct {
	accountID string
	loading   bool
	err       error
	tab       listTab
	lists     map[listTab]*accountList
	cursor    int
}

func (p *profileScreen) list(tab listTab) *accountList {
	l, ok := p.lists[tab]
	if !ok {
		l = &accountList{next: api.Page{Limit: listPageSize}}
		l.IsLoading = true
		p.lists[tab] = l
	}
	return l
}

// Model represents the UI state
type Model struct {
	ctx           context.Context
	bus           eventbus.EventBus
	config        *config.Config
	session       SearchSession
	backend       Backend
	accounts      AccountStore
	relationships RelationshipStore
	features      features.Set
	logger        *zap.Logger

	width  int
	height int

	screen       inputtypes.Screen
	query        string
	settledQuery string
	settled      bool
	searchCursor int

	profile *profileScreen
	history []string // profiles to return to with esc

	modal           *modal.Modal
	modalReturnMode inputtypes.Mode
	showHelp        bool
	helpScroll      int
	inPagerMode     bool
	statusMessage   string

	spinner      spinner.Model
	styles       *views.Styles
	renderer     *views.Renderer
	popup        *views.PopupRenderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *PagerOps
}

// NewModel creates a new UI model
func NewModel(deps Deps) *Model {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	styles := views.NewStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusLoading

	return &Model{
		ctx:           ctx,
		bus:           deps.Bus,
		config:        cfg,
		session:       deps.Session,
		backend:       deps.Backend,
		accounts:      deps.Accounts,
		relationships: deps.Relationships,
		features:      deps.Features,
		logger:        logger.Named("ui"),
		screen:        inputtypes.ScreenSearch,
		spinner:       sp,
		styles:        styles,
		renderer:      views.NewRenderer(styles),
		popup:         views.NewPopupRenderer(styles),
		helpRenderer:  NewHelpRenderer(),
		inputHandler:  input.New(),
		pager:         NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.handleHelpKey(msg)
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "?", "q":
		m.showHelp = false
		m.helpScroll = 0
	case "down", "j":
		m.helpScroll++
	case "up", "k":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case profileLoadedMsg:
		return m, m.handleProfileLoaded(msg)

	case listPageMsg:
		m.handleListPage(msg)
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			m.statusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	default:
		return m, m.inputHandler.Update(msg)
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SearchSettledEvent:
		m.settled = true
		m.settledQuery = e.Query
		m.clampCursor()
	case eventbus.ErrorEvent:
		m.statusMessage = e.Message
	case eventbus.ReblogCompletedEvent:
		if e.Reblogged {
			m.statusMessage = "Boosted"
		} else {
			m.statusMessage = "Boost removed"
		}
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.query = a.Text
		m.settled = false
		m.searchCursor = 0
		if m.session != nil {
			m.session.Search(a.Text)
		}

	case inputtypes.SubmitTextAction:
		if m.session != nil {
			m.session.Flush()
		}

	case inputtypes.NavigateAction:
		return m.navigate(a.Direction)

	case inputtypes.OpenProfileAction:
		if m.profile != nil {
			m.history = append(m.history, m.profile.accountID)
		}
		return m.openProfile(a.AccountID)

	case inputtypes.BackAction:
		if n := len(m.history); n > 0 {
			prev := m.history[n-1]
			m.history = m.history[:n-1]
			return m.openProfile(prev)
		}
		m.profile = nil
		m.screen = inputtypes.ScreenSearch

	case inputtypes.ToggleListAction:
		if m.profile == nil {
			return nil
		}
		if m.profile.tab == tabFollowers {
			m.profile.tab = tabFollowing
		} else {
			m.profile.tab = tabFollowers
		}
		m.profile.cursor = 0
		if m.profile.loading || m.profile.err != nil || m.profile.list(m.profile.tab).loaded {
			return nil
		}
		return m.requestList(m.profile.tab)

	case inputtypes.LoadMoreAction:
		return m.loadMore()

	case inputtypes.OpenPagerAction:
		return m.openPager()

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScroll = 0

	case inputtypes.QuitAction:
		if a.Force {
			return tea.Quit
		}
		m.openModal(modal.Options{
			Title:     "Quit glitchterm?",
			Confirm:   "Quit",
			OnConfirm: func() tea.Cmd { return tea.Quit },
		})

	case inputtypes.ConfirmAction:
		if m.modal != nil {
			return m.modal.Confirm()
		}

	case inputtypes.SecondaryAction:
		if m.modal != nil {
			return m.modal.Secondary()
		}

	case inputtypes.DismissAction:
		if m.modal != nil {
			m.modal.Cancel()
		}
	}
	return nil
}

// openModal shows a confirmation modal and routes keys to it until it closes
func (m *Model) openModal(opts modal.Options) {
	onClose := opts.OnClose
	opts.OnClose = func() {
		m.modal = nil
		m.inputHandler.ChangeMode(m.modalReturnMode, m)
		if onClose != nil {
			onClose()
		}
	}
	m.modalReturnMode = m.inputHandler.CurrentMode()
	m.modal = modal.New(opts)
	m.inputHandler.ChangeMode(inputtypes.ModeConfirm, m)
}

func (m *Model) navigate(direction string) tea.Cmd {
	total := m.TotalItems()
	if total == 0 {
		return nil
	}
	cursor := m.CurrentIndex()
	page := m.listHeight()
	switch direction {
	case "up":
		cursor--
	case "down":
		cursor++
	case "pageup":
		cursor -= page
	case "pagedown":
		cursor += page
	case "home":
		cursor = 0
	case "end":
		cursor = total - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}

	if m.screen == inputtypes.ScreenSearch {
		m.searchCursor = cursor
		return nil
	}
	m.profile.cursor = cursor
	if cursor == total-1 {
		return m.loadMore()
	}
	return nil
}

func (m *Model) clampCursor() {
	if total := len(m.results()); m.searchCursor >= total {
		m.searchCursor = max(total-1, 0)
	}
}

func (m *Model) openProfile(id string) tea.Cmd {
	m.screen = inputtypes.ScreenProfile
	m.profile = &profileScreen{
		accountID: id,
		loading:   true,
		tab:       tabFollowers,
		lists:     make(map[listTab]*accountList),
	}
	m.inputHandler.ChangeMode(inputtypes.ModeNormal, m)
	return m.fetchProfile(id)
}

// fetchProfile loads the account and the viewer's relationship with it concurrently
func (m *Model) fetchProfile(id string) tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	logger := m.logger
	withRelationship := m.config.AccessToken != "" && m.config.Me != id

	return func() tea.Msg {
		msg := profileLoadedMsg{accountID: id}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			account, err := backend.Account(gctx, id)
			if err != nil {
				return errors.Wrapf(err, "fetch account %s", id)
			}
			msg.account = account
			return nil
		})
		if withRelationship {
			g.Go(func() error {
				rels, err := backend.Relationships(gctx, id)
				if err != nil {
					// The profile still renders without relationship details
					logger.Warn("fetch relationship failed", zap.String("account_id", id), zap.Error(err))
					return nil
				}
				for i := range rels {
					if rels[i].ID == id {
						msg.relationship = &rels[i]
					}
				}
				return nil
			})
		}
		msg.err = g.Wait()
		return msg
	}
}

func (m *Model) handleProfileLoaded(msg profileLoadedMsg) tea.Cmd {
	if m.profile == nil || m.profile.accountID != msg.accountID {
		return nil
	}
	m.profile.loading = false
	if msg.err != nil {
		m.profile.err = msg.err
		m.publishError("Could not load profile", msg.err)
		return nil
	}
	if msg.account != nil && m.accounts != nil {
		m.accounts.ImportAccounts([]domain.Account{*msg.account})
	}
	if msg.relationship != nil && m.relationships != nil {
		m.relationships.ImportRelationships([]domain.Relationship{*msg.relationship})
	}
	return m.requestList(m.profile.tab)
}

func (m *Model) requestList(tab listTab) tea.Cmd {
	p := m.profile
	l := p.list(tab)
	if l.inflight || (l.loaded && !l.HasMore) {
		return nil
	}
	account := m.account(p.accountID)
	if profile.VisibilityFor(account, m.relationship(p.accountID), m.config.Me).ForceEmpty() {
		l.IsLoading = false
		l.loaded = true
		return nil
	}
	l.inflight = true
	l.IsLoading = true
	return m.fetchList(p.accountID, tab, l.next)
}

func (m *Model) loadMore() tea.Cmd {
	if m.profile == nil || m.profile.loading || m.profile.err != nil {
		return nil
	}
	l := m.profile.list(m.profile.tab)
	if !l.loaded || !l.HasMore {
		return nil
	}
	return m.requestList(m.profile.tab)
}

func (m *Model) fetchList(id string, tab listTab, page api.Page) tea.Cmd {
	ctx := m.ctx
	fetch := m.backend.Followers
	if tab == tabFollowing {
		fetch = m.backend.Following
	}
	return func() tea.Msg {
		result, err := fetch(ctx, id, page)
		return listPageMsg{accountID: id, tab: tab, page: result, err: err}
	}
}

func (m *Model) handleListPage(msg listPageMsg) {
	if m.profile == nil || m.profile.accountID != msg.accountID {
		return
	}
	l := m.profile.list(msg.tab)
	l.inflight = false
	l.IsLoading = false
	if msg.err != nil {
		m.publishError(fmt.Sprintf("Could not load %s", msg.tab), msg.err)
		return
	}
	l.loaded = true
	if msg.page == nil {
		l.HasMore = false
		return
	}
	if m.accounts != nil {
		m.accounts.ImportAccounts(msg.page.Accounts)
	}
	for _, a := range msg.page.Accounts {
		l.Items = append(l.Items, a.ID)
	}
	l.HasMore = msg.page.HasMore
	l.next = msg.page.Next
}

func (m *Model) openPager() tea.Cmd {
	h, ok := m.header()
	if !ok {
		return nil
	}
	text := views.ProfileText(h, m.account(m.profile.accountID))
	pager := m.pager
	return func() tea.Msg {
		if pager.program == nil {
			return pagerMsg{err: errors.New("program not set")}
		}
		pager.program.Send(pauseRenderingMsg{})
		err := pager.Show(text)
		pager.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

func (m *Model) publishError(message string, err error) {
	m.logger.Warn(message, zap.Error(err))
	m.statusMessage = fmt.Sprintf("%s: %v", message, err)
	if m.bus != nil {
		m.bus.Publish(eventbus.ErrorEvent{Message: m.statusMessage, Err: err})
	}
}

func (m *Model) account(id string) *domain.Account {
	if m.accounts == nil {
		return nil
	}
	return m.accounts.Account(id)
}

func (m *Model) relationship(id string) *domain.Relationship {
	if m.relationships == nil {
		return nil
	}
	return m.relationships.Relationship(id)
}

func (m *Model) results() []*domain.Account {
	if m.session == nil || m.accounts == nil {
		return nil
	}
	return m.accounts.Accounts(m.session.AccountIDs())
}

func (m *Model) header() (profile.Header, bool) {
	if m.profile == nil {
		return profile.Header{}, false
	}
	id := m.profile.accountID
	account := m.account(id)
	rel := m.relationship(id)
	return profile.BuildHeader(profile.HeaderInput{
		Account:      account,
		Relationship: rel,
		Me:           m.config.Me,
		LocalDomain:  m.config.LocalDomain,
		Hidden:       profile.AccountHidden(account, rel, m.config.Me),
		Redesign:     m.features.RedesignEnabled(),
		AutoplayGIF:  m.config.UISettings.AutoplayGIF,
	})
}

func (m *Model) listView() profile.ListView {
	p := m.profile
	if p == nil {
		return profile.ListView{}
	}
	in := profile.ListInput{AccountID: &p.accountID}
	if p.err != nil && api.IsNotFound(p.err) {
		in.AccountID = nil
	}
	account := m.account(p.accountID)
	rel := m.relationship(p.accountID)
	in.Account = account
	in.Visibility = profile.VisibilityFor(account, rel, m.config.Me)

	l, ok := p.lists[p.tab]
	if !ok {
		return profile.BuildList(in)
	}
	list := l.AccountList
	if me := m.config.Me; me != "" && rel != nil && me != p.accountID {
		if (p.tab == tabFollowers && rel.Following) || (p.tab == tabFollowing && rel.FollowedBy) {
			in.PrependAccountID = me
			list.Items = without(list.Items, me)
		}
	}
	in.List = &list
	return profile.BuildList(in)
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func (m *Model) listHeight() int {
	if m.screen == inputtypes.ScreenSearch {
		return max(m.height-10, 3)
	}
	return max(m.height/2-4, 3)
}

// Screen implements the input context
func (m *Model) Screen() inputtypes.Screen { return m.screen }

// CurrentIndex implements the input context
func (m *Model) CurrentIndex() int {
	if m.screen == inputtypes.ScreenProfile && m.profile != nil {
		return m.profile.cursor
	}
	return m.searchCursor
}

// TotalItems implements the input context
func (m *Model) TotalItems() int {
	if m.screen == inputtypes.ScreenProfile {
		return len(m.listView().Items)
	}
	return len(m.results())
}

// CurrentAccountID implements the input context
func (m *Model) CurrentAccountID() string {
	if m.screen == inputtypes.ScreenProfile {
		items := m.listView().Items
		if m.profile.cursor < len(items) {
			return items[m.profile.cursor].ID
		}
		return ""
	}
	results := m.results()
	if m.searchCursor < len(results) {
		return results[m.searchCursor].ID
	}
	return ""
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var main string
	if m.screen == inputtypes.ScreenProfile && m.profile != nil {
		main = m.renderProfile()
	} else {
		main = m.renderSearch()
	}
	main += m.renderStatusBar()
	main = m.styles.Main.Render(main)

	switch {
	case m.modal.IsOpen():
		return m.popup.RenderPopupOverlay(main, m.modal.Content(modal.DefaultStyles()), m.height, m.width, m.styles.Popup)
	case m.showHelp:
		return m.popup.RenderPopupOverlay(main, m.helpRenderer.Render(m.height, m.helpScroll), m.height, m.width, m.styles.Popup)
	}
	return main
}

func (m *Model) renderSearch() string {
	focused := m.inputHandler.CurrentMode() == inputtypes.ModeSearch ||
		(m.modal.IsOpen() && m.modalReturnMode == inputtypes.ModeSearch)
	status := search.StatusIdle
	if m.session != nil {
		status = m.session.Status()
	}
	return m.renderer.RenderSearch(views.SearchState{
		Input:       m.inputHandler.TextInput().View(),
		Focused:     focused,
		Query:       m.settledQuery,
		Results:     m.results(),
		Cursor:      m.searchCursor,
		Loading:     status == search.StatusLoading,
		Failed:      status == search.StatusError,
		Settled:     m.settled && strings.TrimSpace(m.query) == m.settledQuery,
		Spinner:     m.spinner.View(),
		LocalDomain: m.config.LocalDomain,
		Height:      m.listHeight(),
	})
}

func (m *Model) renderProfile() string {
	p := m.profile
	state := views.ProfileState{
		Loading:      p.loading,
		Spinner:      m.spinner.View(),
		Account:      m.account(p.accountID),
		Relationship: m.relationship(p.accountID),
		ShowBadges:   true,
		Tab:          string(p.tab),
		List:         m.listView(),
		Lookup:       m.account,
		Cursor:       p.cursor,
		LocalDomain:  m.config.LocalDomain,
		Height:       m.listHeight(),
	}
	if p.err != nil {
		state.Err = "Could not load profile: " + p.err.Error()
		if api.IsNotFound(p.err) {
			state.Err = "Account not found"
		}
	}
	state.Header, state.HasHeader = m.header()
	return m.renderer.RenderProfile(state)
}

func (m *Model) renderStatusBar() string {
	hint := "?: help • q: quit"
	if m.screen == inputtypes.ScreenProfile {
		hint = "tab: followers/following • p: pager • esc: back • " + hint
	}
	if m.statusMessage != "" {
		return "\n" + m.styles.Status.Render(m.statusMessage+"  "+m.styles.Help.Render(hint))
	}
	return "\n" + m.styles.Status.Render(hint)
}
