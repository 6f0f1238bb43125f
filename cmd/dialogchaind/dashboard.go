package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	dialogconfig "github.com/dialogchain-go/dialogchain/internal/config"
	"github.com/dialogchain-go/dialogchain/internal/engine"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

type dashboardOptions struct {
	configPath string
	cacheDir   string
}

// newDashboardCmd runs a configuration and renders a live Bubbletea view of
// engine state, fed entirely by the EventPublisher's event stream rather
// than a persisted status registry — this engine has no equivalent of a
// one-shot pipeline run to poll the status of, only continuously running
// routes whose state changes are the events themselves.
func newDashboardCmd(root *rootFlags, app *AppContext) *cobra.Command {
	opts := &dashboardOptions{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run a configuration and show a live view of route activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "dashboard")

			cfg, _, err := dialogconfig.LoadRoutes(ctx, opts.configPath, opts.cacheDir, log)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			eng := engine.New(cfg, app.ConnMgr, app.ProcFactory, engine.WithLogger(log), engine.WithEvents(app.Events))

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			program := tea.NewProgram(newDashboardModel(len(eng.Routes())))

			forward := func(ctx context.Context, event ports.DomainEvent) error {
				program.Send(dashboardEventMsg{eventType: event.EventType(), payload: event.Payload()})
				return nil
			}
			for _, evtType := range dashboardTrackedEvents {
				sub, err := app.Events.Subscribe(evtType, forward)
				if err != nil {
					return fmt.Errorf("subscribe to %s: %w", evtType, err)
				}
				defer sub.Unsubscribe()
			}

			go func() {
				if err := eng.Run(runCtx); err != nil {
					log.Error(runCtx, "engine run exited with error", "error", err)
				}
				program.Quit()
			}()

			_, err = program.Run()
			cancel()
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "route configuration location")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "local cache directory for git-backed configurations")
	cmd.MarkFlagRequired("config")

	return cmd
}

var dashboardTrackedEvents = []string{
	ports.EventEngineStarted,
	ports.EventEngineStopped,
	ports.EventRouteStarted,
	ports.EventRouteStopped,
	ports.EventRouteMessageProcessed,
	ports.EventRouteMessageFailed,
	ports.EventConnectorReconnected,
}

type dashboardEventMsg struct {
	eventType string
	payload   interface{}
}

type dashboardTickMsg time.Time

type dashboardModel struct {
	routeCount int
	processed  int
	failed     int
	reconnects int
	recent     []string
	started    bool
	stopped    bool
}

func newDashboardModel(routeCount int) dashboardModel {
	return dashboardModel{routeCount: routeCount}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return dashboardTickMsg(t) })
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case dashboardTickMsg:
		return m, tickEvery()
	case dashboardEventMsg:
		m.apply(msg)
	}
	return m, nil
}

func (m *dashboardModel) apply(msg dashboardEventMsg) {
	switch msg.eventType {
	case ports.EventEngineStarted:
		m.started = true
	case ports.EventEngineStopped:
		m.stopped = true
	case ports.EventRouteMessageProcessed:
		m.processed++
	case ports.EventRouteMessageFailed:
		m.failed++
	case ports.EventConnectorReconnected:
		m.reconnects++
	}
	m.recent = append(m.recent, msg.eventType)
	if len(m.recent) > 8 {
		m.recent = m.recent[len(m.recent)-8:]
	}
}

var (
	dashboardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dashboardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dashboardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m dashboardModel) View() string {
	state := "running"
	if m.stopped {
		state = "stopped"
	} else if !m.started {
		state = "starting"
	}

	summary := fmt.Sprintf(
		"routes: %d\nstate: %s\nprocessed: %d\nfailed: %d\nreconnects: %d",
		m.routeCount, state, m.processed, m.failed, m.reconnects,
	)

	events := "(no events yet)"
	if len(m.recent) > 0 {
		events = ""
		for _, e := range m.recent {
			events += e + "\n"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		dashboardTitleStyle.Render("dialogchaind"),
		dashboardBoxStyle.Render(summary),
		dashboardDimStyle.Render("recent events"),
		dashboardBoxStyle.Render(events),
		dashboardDimStyle.Render("press q to quit"),
	)
}
