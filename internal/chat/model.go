package chat

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/openagora/agora/internal/board"
	"github.com/openagora/agora/internal/config"
	"github.com/openagora/agora/internal/gateway"
	"github.com/openagora/agora/internal/realtime"
	"github.com/openagora/agora/internal/types"
	"github.com/openagora/agora/internal/userdir"
)

// Options configure the board UI.
type Options struct {
	Config  *config.Config
	Gateway *gateway.Client
	Live    *realtime.Client
	Users   *userdir.Store
	Channel string // channel to open on start, empty for the board default
}

// Run starts the board UI and blocks until the user quits.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	fmt.Printf("\033]0;agora\007")

	program := tea.NewProgram(model, tea.WithMouseCellMotion())
	_, err = program.Run()
	model.Close()
	return err
}

// Model implements the board UI: a category/channel sidebar, the live
// message feed, an optional thread panel, and the composer.
type Model struct {
	cfg     *config.Config
	gateway *gateway.Client
	live    *realtime.Client
	users   *userdir.Store
	self    types.User

	directory *board.Directory
	feed      *board.Feed
	thread    *board.ThreadView
	presence  *board.PresenceTracker
	typing    *board.TypingTracker

	viewport viewport.Model
	input    textarea.Model
	zones    *zone.Manager

	width  int
	height int
	status string

	// live event plumbing: websocket handlers push here, waitEventCmd
	// drains into Update one message at a time
	events      chan channelEvent
	channelSubs []*realtime.Subscription
	threadSub   *realtime.Subscription
	boardSubs   []*realtime.Subscription

	// composer
	editingMessageID string
	lastInputValue   string
	lastInputPos     int

	// mention suggestions
	suggestions     []suggestionItem
	suggestionIndex int
	suggestionStart int
	suggestionKind  suggestionKind
	mentionPool     []types.User

	// typing broadcast debounce
	typingSent     bool
	lastKeystroke  time.Time
	lastTypingSent time.Time

	// sidebar
	sidebarOpen  bool
	sidebarFocus bool
	sidebarIndex int
	unread       map[string]int

	threadFocus bool

	// board search
	searchActive  bool
	searchQuery   string
	searchSeq     int
	searchResults *types.SearchResult
	searchIndex   int

	notifications   []types.Notification
	newMsgAuthors   []string
	initialScroll   bool
	pendingScroll   bool
	startChannel    string
	loadedChannelID string
}

// NewModel builds the model with the directory loaded lazily by Init.
func NewModel(opts Options) (*Model, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("chat: config is required")
	}
	if opts.Gateway == nil || opts.Live == nil {
		return nil, fmt.Errorf("chat: gateway and realtime clients are required")
	}

	model := &Model{
		cfg:     opts.Config,
		gateway: opts.Gateway,
		live:    opts.Live,
		users:   opts.Users,
		self: types.User{
			ID:          opts.Config.Identity.UserID,
			Username:    opts.Config.Identity.Username,
			DisplayName: opts.Config.Identity.DisplayName,
		},
		directory:       board.NewDirectory(),
		feed:            board.NewFeed(),
		thread:          board.NewThreadView(),
		presence:        board.NewPresenceTracker(),
		typing:          board.NewTypingTracker(),
		viewport:        viewport.New(0, 0),
		input:           newInputModel(),
		zones:           zone.New(),
		events:          make(chan channelEvent, 256),
		suggestionIndex: -1,
		unread:          make(map[string]int),
		sidebarOpen:     true,
		initialScroll:   true,
		startChannel:    opts.Channel,
	}
	if model.self.DisplayName == "" {
		model.self.DisplayName = model.self.Username
	}

	// Seed mention candidates from the on-disk cache so autocomplete works
	// before the first directory fetch lands.
	if opts.Users != nil {
		if cached, err := opts.Users.All(); err == nil {
			model.mentionPool = cached
		}
	}
	return model, nil
}

// Init subscribes to the board-wide topics and kicks off the initial loads.
func (m *Model) Init() tea.Cmd {
	m.subscribeBoard()
	return tea.Batch(
		m.loadDirectoryCmd(),
		m.loadUsersCmd(),
		m.loadNotificationsCmd(),
		m.waitEventCmd(),
	)
}

// Close tears down live subscriptions. Safe to call after the program exits.
func (m *Model) Close() {
	m.dropChannelSubs()
	for _, sub := range m.boardSubs {
		sub.Close()
	}
	m.boardSubs = nil
}
