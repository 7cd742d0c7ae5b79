// Command twmdemo is an interactive terminal demo of the tiling layout
// engine, built the way the pack's own bubbletea programs are: a single
// tea.Model driving Update/View, with the real work (the tile tree) kept
// in a plain Go value the model just wraps.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"twm/event"
	"twm/render"
	"twm/tile"
)

func main() {
	layoutFlag := flag.String("layout", "", "load a serialized layout instead of starting empty")
	flag.Parse()

	grid := tile.New()
	if *layoutFlag != "" {
		loaded, err := loadLayout(*layoutFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "twmdemo:", err)
			os.Exit(1)
		}
		grid = loaded
	}

	dispatcher := event.NewDispatcher(grid, 32)
	go dispatcher.Run()
	defer dispatcher.Stop()

	m := newModel(dispatcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "twmdemo:", err)
		os.Exit(1)
	}
}

func loadLayout(s string) (*tile.TileGrid, error) {
	result := make(chan event.Result, 1)
	d := event.NewDispatcher(tile.New(), 1)
	go d.Run()
	defer d.Stop()
	d.Send(event.Event{Kind: event.LoadLayout, Layout: s, Result: result})
	r := <-result
	if r.Err != nil {
		return nil, r.Err
	}
	return d.Grid(), nil
}

type model struct {
	dispatcher *event.Dispatcher
	renderer   *render.Renderer
	windowIDs  *tile.WindowIDGenerator
	width      int
	height     int
	status     string
}

func newModel(d *event.Dispatcher) model {
	return model{
		dispatcher: d,
		renderer:   render.New(d.Grid()),
		windowIDs:  tile.NewWindowIDGenerator(),
		status:     "n: new tile  x: close  hjkl: focus  HJKL: swap  ctrl+hjkl: move in  alt+hjkl: move out  f: fullscreen  s: swap rows/cols  q: quit",
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "n":
		m.dispatcher.SendSync(event.Event{Kind: event.Push, Window: m.windowIDs.Next()})
	case "x":
		m.dispatcher.SendSync(event.Event{Kind: event.Pop})
	case "h":
		m.dispatcher.SendSync(event.Event{Kind: event.Focus, Direction: tile.Left})
	case "l":
		m.dispatcher.SendSync(event.Event{Kind: event.Focus, Direction: tile.Right})
	case "k":
		m.dispatcher.SendSync(event.Event{Kind: event.Focus, Direction: tile.Up})
	case "j":
		m.dispatcher.SendSync(event.Event{Kind: event.Focus, Direction: tile.Down})
	case "H":
		m.dispatcher.SendSync(event.Event{Kind: event.SwapFocused, Direction: tile.Left})
	case "L":
		m.dispatcher.SendSync(event.Event{Kind: event.SwapFocused, Direction: tile.Right})
	case "K":
		m.dispatcher.SendSync(event.Event{Kind: event.SwapFocused, Direction: tile.Up})
	case "J":
		m.dispatcher.SendSync(event.Event{Kind: event.SwapFocused, Direction: tile.Down})
	case "ctrl+h":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedIn, Direction: tile.Left})
	case "ctrl+l":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedIn, Direction: tile.Right})
	case "ctrl+k":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedIn, Direction: tile.Up})
	case "ctrl+j":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedIn, Direction: tile.Down})
	case "alt+h":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedOut, Direction: tile.Left})
	case "alt+l":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedOut, Direction: tile.Right})
	case "alt+k":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedOut, Direction: tile.Up})
	case "alt+j":
		m.dispatcher.SendSync(event.Event{Kind: event.MoveFocusedOut, Direction: tile.Down})
	case "r":
		m.dispatcher.SendSync(event.Event{Kind: event.ResetRow})
	case "c":
		m.dispatcher.SendSync(event.Event{Kind: event.ResetColumn})
	case "f":
		m.dispatcher.SendSync(event.Event{Kind: event.ToggleFullscreen})
	case "s":
		m.dispatcher.SendSync(event.Event{Kind: event.SwapColumnsAndRows})
	case "v":
		m.dispatcher.SendSync(event.Event{Kind: event.SetNextAxis, Axis: tile.Vertical})
	case "b":
		m.dispatcher.SendSync(event.Event{Kind: event.SetNextAxis, Axis: tile.Horizontal})
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "initializing..."
	}
	frameHeight := m.height - 1
	if frameHeight < 1 {
		frameHeight = 1
	}
	return m.renderer.View(m.width, frameHeight) + "\n" + m.status
}
