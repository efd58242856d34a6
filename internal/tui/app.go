package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/ai"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/browser"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/cache"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/config"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/digest"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/filter"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/pipeline"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/share"
)

const (
	searchDebounce    = 300 * time.Millisecond
	highlightDuration = 3 * time.Second
	flashDuration     = 2 * time.Second
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeHome mode = iota
	modeNormal
	modeSearch
	modeFilter
	modeGoto
	modeHelp
)

type App struct {
	cfg     *config.Config
	db      *cache.Cache
	gen     ai.Generator
	initErr string
	version string

	// Post state. posts is the full published list; visible is the
	// filtered view over it.
	posts       []post.Post
	visible     []post.Post
	generatedAt time.Time
	cursor      int
	focus       focusPane
	mode        mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	gotoInput   textinput.Model
	spinner     spinner.Model
	filterBar   filterBar

	// searchTerm drives the filter; it trails the raw input by the
	// debounce interval.
	searchTerm string
	searchSeq  int

	// State
	refresh       bool
	generating    bool
	pendingImages int
	pendingSlug   string
	highlightSlug string
	previewScroll int
	flash         string
	err           error
	updateVersion string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg      *config.Config
	DB       *cache.Cache
	Gen      ai.Generator // nil when InitErr is set
	InitErr  string       // persistent configuration/initialization error
	Refresh  bool         // force regeneration regardless of staleness
	Slug     string       // deep-link target
	Category post.Category
	Version  string
}

func NewApp(opts RunOpts) *App {
	si := textinput.New()
	si.Placeholder = "Search posts..."
	si.Prompt = searchPromptStyle.Render("/ ")
	si.CharLimit = 100

	gi := textinput.New()
	gi.Placeholder = "post slug"
	gi.Prompt = searchPromptStyle.Render("# ")
	gi.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:         opts.Cfg,
		db:          opts.DB,
		gen:         opts.Gen,
		initErr:     opts.InitErr,
		version:     opts.Version,
		refresh:     opts.Refresh,
		pendingSlug: opts.Slug,
		searchInput: si,
		gotoInput:   gi,
		spinner:     sp,
		filterBar:   newFilterBar(),
		mode:        modeHome,
	}
	if opts.Category != "" {
		a.filterBar.selectCategory(opts.Category)
	}
	if opts.Slug != "" {
		a.mode = modeNormal
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCacheCmd(), a.checkUpdateCmd())
}

// --- commands ---

func (a *App) loadCacheCmd() tea.Cmd {
	db := a.db
	return func() tea.Msg {
		snap, ok, err := db.Load()
		if err != nil {
			return cacheErrMsg{err: err}
		}
		return cacheLoadedMsg{snap: snap, ok: ok}
	}
}

// generateCmd runs phase 1 to completion. No deadline: a generation
// round is best effort and never cancelled once started.
func (a *App) generateCmd() tea.Cmd {
	gen := a.gen
	topics := a.cfg.CategoryTopics()
	return func() tea.Msg {
		return generationDoneMsg{result: pipeline.GenerateAll(context.Background(), gen, topics)}
	}
}

// backfillCmds dispatches one fire-and-forget image request per post.
func (a *App) backfillCmds(posts []post.Post) []tea.Cmd {
	gen := a.gen
	imagesDir := config.ImagesDir()
	cmds := make([]tea.Cmd, 0, len(posts))
	for _, p := range posts {
		p := p
		cmds = append(cmds, func() tea.Msg {
			url, err := pipeline.BackfillImage(context.Background(), gen, imagesDir, p)
			if err != nil {
				slog.Warn("image backfill failed", "slug", p.Slug, "err", err)
				return imageFailedMsg{slug: p.Slug}
			}
			return imageReadyMsg{slug: p.Slug, url: url}
		})
	}
	return cmds
}

// saveSnapshotCmd persists the current full list. Every write is a
// whole snapshot; interleaved image updates race benignly and the last
// write wins.
func (a *App) saveSnapshotCmd() tea.Cmd {
	db := a.db
	snap := cache.Snapshot{
		Posts:       append([]post.Post(nil), a.posts...),
		GeneratedAt: a.generatedAt,
	}
	return func() tea.Msg {
		if err := db.Save(snap); err != nil {
			slog.Warn("saving snapshot", "err", err)
		}
		return nil
	}
}

func (a *App) checkUpdateCmd() tea.Cmd {
	version := a.version
	return func() tea.Msg {
		res := checkUpdate(context.Background(), version)
		if res == "" {
			return nil
		}
		return updateAvailableMsg{version: res}
	}
}

func (a *App) debounceCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebouncedMsg{seq: seq}
	})
}

func highlightClearCmd(slug string) tea.Cmd {
	return tea.Tick(highlightDuration, func(time.Time) tea.Msg {
		return highlightClearedMsg{slug: slug}
	})
}

func flashClearCmd() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearedMsg{}
	})
}

func (a *App) shareCmd(p post.Post) tea.Cmd {
	siteURL := a.cfg.SiteURL
	return func() tea.Msg {
		url, err := share.URL(siteURL, p.Slug)
		if err != nil {
			return shareResultMsg{err: err}
		}
		if err := share.Copy(url); err != nil {
			return shareResultMsg{url: url, err: err}
		}
		return shareResultMsg{url: url}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// --- state transitions ---

func (a *App) startGeneration() tea.Cmd {
	if a.generating || a.gen == nil {
		return nil
	}
	a.generating = true
	a.err = nil
	return tea.Batch(a.generateCmd(), a.spinner.Tick)
}

// applyFilters recomputes the visible list from the published posts.
func (a *App) applyFilters() {
	opts := filter.Options{
		Category: a.filterBar.category(),
		Window:   a.filterBar.window,
		Search:   a.searchTerm,
	}
	a.visible = filter.Apply(a.posts, opts, time.Now())
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
}

// resolveDeepLink checks whether the pending slug is now present. A
// slug that is not loaded yet stays pending and is re-checked on every
// post-list change. Locating a post filtered out of view resets the
// filters so it can be scrolled to.
func (a *App) resolveDeepLink() tea.Cmd {
	if a.pendingSlug == "" || len(a.posts) == 0 {
		return nil
	}
	idx := -1
	for i := range a.visible {
		if a.visible[i].Slug == a.pendingSlug {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i := range a.posts {
			if a.posts[i].Slug == a.pendingSlug {
				a.filterBar.reset()
				a.searchTerm = ""
				a.searchInput.SetValue("")
				a.applyFilters()
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return nil
	}
	a.cursor = idx
	a.previewScroll = 0
	a.highlightSlug = a.pendingSlug
	a.pendingSlug = ""
	return highlightClearCmd(a.highlightSlug)
}

func sortNewestFirst(posts []post.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// --- update loop ---

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case cacheLoadedMsg:
		var cmds []tea.Cmd
		if msg.ok {
			a.posts = msg.snap.Posts
			sortNewestFirst(a.posts)
			a.generatedAt = msg.snap.GeneratedAt
			a.applyFilters()
			if cmd := a.resolveDeepLink(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		// Stale-while-revalidate: cached posts are already on screen;
		// regenerate in the background only when stale or absent.
		stale := !msg.ok || msg.snap.Stale(time.Now(), a.cfg.TTL())
		if (stale || a.refresh) && a.gen != nil {
			a.refresh = false
			if cmd := a.startGeneration(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case cacheErrMsg:
		a.err = msg.err
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case generationDoneMsg:
		a.generating = false
		if msg.result.Failed() {
			// Whole-batch failure: generic message, loading cleared.
			a.err = errors.New("post generation failed; showing cached posts")
			return a, nil
		}
		if len(msg.result.Posts) == 0 {
			return a, nil
		}
		// Full replacement of the published list, then phase 2.
		a.posts = msg.result.Posts
		sortNewestFirst(a.posts)
		a.generatedAt = time.Now()
		a.pendingImages = len(a.posts)
		a.applyFilters()
		cmds := []tea.Cmd{a.saveSnapshotCmd()}
		cmds = append(cmds, a.backfillCmds(a.posts)...)
		if cmd := a.resolveDeepLink(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case imageReadyMsg:
		if a.pendingImages > 0 {
			a.pendingImages--
		}
		posts, changed := pipeline.ApplyImage(a.posts, msg.slug, msg.url)
		a.posts = posts
		if !changed {
			return a, nil
		}
		a.applyFilters()
		return a, a.saveSnapshotCmd()

	case imageFailedMsg:
		// Placeholder stays; failure was already logged.
		if a.pendingImages > 0 {
			a.pendingImages--
		}
		return a, nil

	case searchDebouncedMsg:
		if msg.seq != a.searchSeq {
			return a, nil // superseded by more typing
		}
		if a.searchInput.Value() != a.searchTerm {
			a.searchTerm = a.searchInput.Value()
			a.cursor = 0
			a.applyFilters()
		}
		return a, nil

	case highlightClearedMsg:
		if a.highlightSlug == msg.slug {
			a.highlightSlug = ""
		}
		return a, nil

	case shareResultMsg:
		if msg.err != nil {
			a.err = fmt.Errorf("copying share link: %w", msg.err)
			return a, nil
		}
		a.flash = "link copied"
		return a, flashClearCmd()

	case flashClearedMsg:
		a.flash = ""
		return a, nil

	case updateAvailableMsg:
		a.updateVersion = msg.version
		return a, nil

	case spinner.TickMsg:
		if a.generating {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeGoto:
		return a.handleGotoKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// sticky transient error clears on any normal-mode keypress
	a.err = nil

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if p := a.selected(); p != nil {
			if len(p.Sources) > 0 {
				return a, openBrowserCmd(p.Sources[0].URI)
			}
		}
		return a, nil
	case "y":
		if p := a.selected(); p != nil {
			return a, a.shareCmd(*p)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "g":
		a.mode = modeGoto
		a.gotoInput.SetValue("")
		a.gotoInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "r":
		return a, a.startGeneration()
	case "h":
		a.mode = modeHome
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "e", "b":
		a.mode = modeNormal
		return a, nil
	case "r":
		return a, a.startGeneration()
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.searchTerm = ""
		a.applyFilters()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.searchTerm = a.searchInput.Value()
		a.cursor = 0
		a.applyFilters()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != before {
		// Capture the raw input immediately, refilter only after the
		// input has been quiet for the debounce interval.
		a.searchSeq++
		return a, tea.Batch(cmd, a.debounceCmd(a.searchSeq))
	}
	return a, cmd
}

func (a *App) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.gotoInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.gotoInput.Blur()
		slug := strings.TrimSpace(a.gotoInput.Value())
		if slug == "" {
			return a, nil
		}
		a.pendingSlug = slug
		return a, a.resolveDeepLink()
	}
	var cmd tea.Cmd
	a.gotoInput, cmd = a.gotoInput.Update(msg)
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.cursor > 0 {
			a.filterBar.cursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.cursor < len(a.filterBar.categories)-1 {
			a.filterBar.cursor++
		}
		return a, nil
	case " ", "enter":
		a.filterBar.selectCursor()
		a.cursor = 0
		a.applyFilters()
		return a, nil
	case "t":
		a.filterBar.cycleWindow()
		a.cursor = 0
		a.applyFilters()
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.filterBar.categories) {
			a.filterBar.cursor = idx
			a.filterBar.selectCursor()
			a.cursor = 0
			a.applyFilters()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) selected() *post.Post {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return nil
	}
	return &a.visible[a.cursor]
}

// --- view ---

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  circuitsoul")
	}

	if a.mode == modeHome {
		d := digest.Build(a.posts, a.generatedAt, time.Now(), a.cfg.TTL())
		home := renderHomeScreen(d, a.width, a.height-1, a.updateVersion)
		if a.initErr != "" {
			home = bannerStyle.Width(a.width).Render(a.initErr) + "\n" + home
		}
		status := renderStatusBar(statusInfo{
			postCount:   len(a.posts),
			filterLabel: "All",
			generating:  a.generating,
		}, a.width)
		if a.generating {
			status = a.spinner.View() + " " + status
		}
		if a.err != nil {
			status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
		}
		return home + "\n" + status
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	bannerHeight := 0
	if a.initErr != "" {
		bannerHeight = 1
	}
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - bannerHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("the circuit soul")
	headerRight := headerDateStyle.Render(time.Now().Format("Jan 2"))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter bar (replaced by inputs when they are active)
	bar := a.filterBar.render(a.width)
	switch a.mode {
	case modeSearch:
		bar = a.searchInput.View()
	case modeGoto:
		bar = a.gotoInput.View()
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.visible, a.cursor, a.highlightSlug, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(a.selected(), innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(statusInfo{
		postCount:     len(a.visible),
		filterLabel:   a.filterBar.label(),
		searching:     a.mode == modeSearch,
		generating:    a.generating,
		pendingImages: a.pendingImages,
		flash:         a.flash,
		updateVersion: a.updateVersion,
	}, a.width)

	if a.generating {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	parts := []string{header}
	if a.initErr != "" {
		parts = append(parts, bannerStyle.Width(a.width).Render(a.initErr))
	}
	parts = append(parts, bar, content, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("circuitsoul")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate post list\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open first source in browser\n" +
		"  y             Copy share link to clipboard\n" +
		"  g             Go to a post by slug\n" +
		"  r             Regenerate posts\n" +
		"  /             Search posts\n" +
		"  f             Toggle filter mode\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between categories\n" +
		"  space/enter   Select category\n" +
		"  t             Cycle time window\n" +
		"  1-7           Select category by number\n" +
		"  esc, f        Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  h             Go to home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
