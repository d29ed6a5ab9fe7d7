package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/jverel/darkroom/pkg/errors"
	"github.com/jverel/darkroom/pkg/genedit"
	"github.com/jverel/darkroom/pkg/geom"
	"github.com/jverel/darkroom/pkg/provenance"
	"github.com/jverel/darkroom/pkg/selection"
	"github.com/jverel/darkroom/pkg/studio"
)

// studioCommand creates the interactive TUI command.
func (c *CLI) studioCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "studio [image]...",
		Short: "Open the interactive terminal workspace",
		Long: `Open the darkroom studio: an interactive terminal workspace.

Drag with the mouse to select a region of the active asset, press c to
crop it into a new asset, space to mark assets as edit inputs, e to
send the marked assets to the edit service, and u/r to walk the session
history back and forth.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry := studio.NewRegistry()
			if len(args) > 0 {
				_, errs := registry.ImportFiles(ctx, args)
				for _, err := range errs {
					c.Logger.Warn("skipped import", "err", err)
				}
			}

			var editClient *genedit.Client
			if c.Config.Service.URL != "" {
				if client, err := c.newEditClient(ctx, noCache); err == nil {
					editClient = client
				} else {
					c.Logger.Warn("edit service disabled", "err", err)
				}
			}

			m := newStudioModel(registry, editClient)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the edit result cache")

	return cmd
}

// =============================================================================
// Model
// =============================================================================

const (
	sidebarWidth = 32
	headerRows   = 1
	footerRows   = 2
)

// Studio styles
var (
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSidebarItem = lipgloss.NewStyle().Foreground(colorWhite)
	styleSidebarCur  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSidebarDim  = lipgloss.NewStyle().Foreground(colorDim)
	styleStatusErr   = lipgloss.NewStyle().Foreground(colorRed)
	styleSelection   = lipgloss.NewStyle().Reverse(true)
)

// editResultMsg carries the edit service response back into the event loop.
type editResultMsg struct {
	img  image.Image
	name string
	err  error
}

// studioModel is the bubbletea model for the studio TUI.
//
// The preview pane renders the active asset with half-block characters:
// one terminal cell covers a 1x2 pixel column, so the display surface
// is previewCols wide and previewRows*2 tall in display pixels. Mouse
// coordinates are mapped onto that surface before they reach the
// selection machine.
type studioModel struct {
	registry *studio.Registry
	editor   *genedit.Client

	sel       selection.Machine
	committed geom.Rect // last committed selection, zero when none

	width  int
	height int

	prompting bool   // edit instruction prompt open
	prompt    string // instruction being typed
	editing   bool   // edit request in flight

	status  string
	statErr bool
}

func newStudioModel(registry *studio.Registry, editor *genedit.Client) *studioModel {
	return &studioModel{
		registry: registry,
		editor:   editor,
		status:   "drag to select · c crop · space mark · e edit · u/r undo/redo · q quit",
	}
}

func (m *studioModel) Init() tea.Cmd {
	return nil
}

// previewSize returns the preview pane dimensions in cells.
func (m *studioModel) previewSize() (cols, rows int) {
	cols = m.width - sidebarWidth - 1
	rows = m.height - headerRows - footerRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// displaySurface returns the preview pane size in display pixels and
// the active asset's scaled size on it.
func (m *studioModel) displaySurface() (surfaceW, surfaceH, dispW, dispH int) {
	cols, rows := m.previewSize()
	surfaceW, surfaceH = cols, rows*2

	active, ok := m.registry.Active()
	if !ok {
		return surfaceW, surfaceH, 0, 0
	}
	scale := geom.FitScale(float64(active.Width()), float64(active.Height()), float64(surfaceW), float64(surfaceH))
	dispW, dispH = geom.DisplaySize(float64(active.Width()), float64(active.Height()), scale)
	return surfaceW, surfaceH, dispW, dispH
}

// =============================================================================
// Update
// =============================================================================

func (m *studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)

	case editResultMsg:
		m.editing = false
		if msg.err != nil {
			m.setError(errors.UserMessage(msg.err))
			return m, nil
		}
		parentID := ""
		if marked := m.registry.Marked(); len(marked) > 0 {
			parentID = marked[len(marked)-1]
		}
		prev := m.registry.ActiveID()
		if _, err := m.registry.PromoteResult(context.Background(), msg.name, msg.img, parentID); err != nil {
			m.setError(errors.UserMessage(err))
			return m, nil
		}
		m.clearSelectionIfRetargeted(prev)
		m.setStatus("edit result added")
		return m, nil
	}
	return m, nil
}

// updateMouse feeds pointer events through the selection machine.
func (m *studioModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Map the cell position onto the display surface. Each cell row
	// covers two display pixel rows.
	pointer := geom.Point{X: float64(msg.X), Y: float64(msg.Y * 2)}
	origin := geom.Point{X: 0, Y: float64(headerRows * 2)}
	p := geom.PointerToDisplay(pointer, origin)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.committed = geom.Rect{}
			m.sel.Begin(p)
		}
	case tea.MouseActionMotion:
		m.sel.Update(p)
	case tea.MouseActionRelease:
		if m.sel.State() == selection.Dragging {
			m.sel.Update(p)
			m.sel.End()
			m.committed = m.sel.Pending()
			if m.committed.MinSize(studio.MinSelectionSize) {
				m.setStatus(fmt.Sprintf("selected %s · c to crop", m.committed))
			} else {
				m.setStatus("selection too small to crop")
			}
		}
	}
	return m, nil
}

func (m *studioModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.sel.Reset()
		m.committed = geom.Rect{}
		m.setStatus("selection cleared")

	case "u":
		prev := m.registry.ActiveID()
		if m.registry.Undo(context.Background()) {
			m.clearSelectionIfRetargeted(prev)
			m.setStatus(fmt.Sprintf("undo · %d assets", m.registry.Collection().Len()))
		} else {
			m.setStatus("nothing to undo")
		}

	case "r":
		prev := m.registry.ActiveID()
		if m.registry.Redo(context.Background()) {
			m.clearSelectionIfRetargeted(prev)
			m.setStatus(fmt.Sprintf("redo · %d assets", m.registry.Collection().Len()))
		} else {
			m.setStatus("nothing to redo")
		}

	case "c":
		m.crop()

	case " ":
		if id := m.registry.ActiveID(); id != "" {
			m.registry.ToggleMark(id)
			if m.registry.IsMarked(id) {
				m.setStatus("marked as edit input")
			} else {
				m.setStatus("unmarked")
			}
		}

	case "j", "down":
		m.moveActive(1)

	case "k", "up":
		m.moveActive(-1)

	case "x":
		if id := m.registry.ActiveID(); id != "" {
			if err := m.registry.Remove(id); err == nil {
				m.clearSelectionIfRetargeted(id)
				m.setStatus("asset removed")
			}
		}

	case "e":
		if m.editor == nil {
			m.setError("no edit service configured")
		} else if m.editing {
			m.setStatus("edit already in flight")
		} else if len(m.registry.Marked()) == 0 {
			m.setError("mark at least one asset first (space)")
		} else {
			m.prompting = true
			m.prompt = ""
		}

	case "g":
		m.exportGraph()
	}
	return m, nil
}

// updatePrompt handles typing in the edit instruction prompt.
func (m *studioModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.setStatus("edit cancelled")
	case tea.KeyEnter:
		m.prompting = false
		if m.prompt == "" {
			m.setStatus("edit cancelled")
			return m, nil
		}
		return m, m.startEdit(m.prompt)
	case tea.KeyBackspace:
		if len(m.prompt) > 0 {
			m.prompt = m.prompt[:len(m.prompt)-1]
		}
	case tea.KeySpace:
		m.prompt += " "
	case tea.KeyRunes:
		m.prompt += string(msg.Runes)
	}
	return m, nil
}

// crop extracts the committed selection from the active asset.
func (m *studioModel) crop() {
	if m.committed.Empty() {
		m.setError("no selection to crop")
		return
	}

	_, _, dispW, dispH := m.displaySurface()
	asset, err := m.registry.ExtractRegion(context.Background(), m.registry.ActiveID(), m.committed, float64(dispW), float64(dispH))
	if err != nil {
		m.setError(errors.UserMessage(err))
		return
	}

	m.sel.Reset()
	m.committed = geom.Rect{}
	m.setStatus(fmt.Sprintf("cropped %dx%d", asset.Width(), asset.Height()))
}

// startEdit launches the edit service call as a background command.
func (m *studioModel) startEdit(instruction string) tea.Cmd {
	c := m.registry.Collection()
	var inputs []studio.Asset
	for _, id := range m.registry.Marked() {
		if a, ok := c.Find(id); ok {
			inputs = append(inputs, a)
		}
	}

	m.editing = true
	m.setStatus("editing...")

	editor := m.editor
	return func() tea.Msg {
		img, err := editor.Edit(context.Background(), instruction, inputs)
		return editResultMsg{img: img, name: instruction, err: err}
	}
}

// moveActive shifts the active asset up or down the collection.
func (m *studioModel) moveActive(delta int) {
	c := m.registry.Collection()
	if c.Len() == 0 {
		return
	}

	idx := 0
	for i, a := range c.Assets {
		if a.ID == m.registry.ActiveID() {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= c.Len() {
		idx = c.Len() - 1
	}
	_ = m.registry.SetActive(c.Assets[idx].ID)
	m.sel.Reset()
	m.committed = geom.Rect{}
}

// clearSelectionIfRetargeted resets the selection machine when the
// active asset no longer matches prev. A selection is meaningless
// against a different image, so history moves, removals, and edit
// promotions that retarget the workspace must not leave one behind.
func (m *studioModel) clearSelectionIfRetargeted(prev string) {
	if m.registry.ActiveID() != prev {
		m.sel.Reset()
		m.committed = geom.Rect{}
	}
}

// exportGraph writes the derivation graph next to the working directory.
func (m *studioModel) exportGraph() {
	dot := provenance.ToDOT(m.registry.Collection(), provenance.Options{
		Detailed: true,
		ActiveID: m.registry.ActiveID(),
	})
	svg, err := provenance.RenderSVG(dot)
	if err != nil {
		m.setError("graph render failed")
		return
	}
	if err := os.WriteFile("provenance.svg", svg, 0644); err != nil {
		m.setError("write provenance.svg failed")
		return
	}
	m.setStatus("exported provenance.svg")
}

func (m *studioModel) setStatus(s string) {
	m.status = s
	m.statErr = false
}

func (m *studioModel) setError(s string) {
	m.status = s
	m.statErr = true
}

// =============================================================================
// View
// =============================================================================

func (m *studioModel) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	preview := m.viewPreview()
	sidebar := m.viewSidebar()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, preview, " ", sidebar))
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

func (m *studioModel) viewHeader() string {
	title := styleHeader.Render("darkroom studio")
	if active, ok := m.registry.Active(); ok {
		return title + StyleDim.Render(fmt.Sprintf("  %s · %dx%d · %s",
			active.Name, active.Width(), active.Height(), active.Origin))
	}
	return title + StyleDim.Render("  no assets · darkroom studio <image>...")
}

// viewPreview renders the active asset with half blocks. The top pixel
// of each cell becomes the foreground of "▀" and the bottom pixel the
// background, so each terminal row shows two pixel rows.
func (m *studioModel) viewPreview() string {
	cols, rows := m.previewSize()

	active, ok := m.registry.Active()
	if !ok {
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			StyleDim.Render("empty workspace"))
	}

	_, _, dispW, dispH := m.displaySurface()
	if dispW < 1 || dispH < 1 {
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			StyleDim.Render("window too small"))
	}
	scaled := imaging.Resize(active.Image, dispW, dispH, imaging.Box)

	// The selection rectangle in display pixels, when one is visible.
	sel := m.committed
	if m.sel.State() == selection.Dragging {
		sel = m.sel.Pending()
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topY, botY := row*2, row*2+1
			if col >= dispW || topY >= dispH {
				b.WriteString(" ")
				continue
			}

			cell := "▀"
			style := lipgloss.NewStyle().Foreground(pixelColor(scaled, col, topY))
			if botY < dispH {
				style = style.Background(pixelColor(scaled, col, botY))
			}
			if !sel.Empty() && cellInRect(col, topY, sel) {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(cell))
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cellInRect reports whether the cell whose top pixel is (x, y) touches r.
func cellInRect(x, y int, r geom.Rect) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx < r.X+r.W && fy+1 >= r.Y && fy < r.Y+r.H
}

func pixelColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

func (m *studioModel) viewSidebar() string {
	_, rows := m.previewSize()
	c := m.registry.Collection()

	var b strings.Builder
	b.WriteString(styleSidebarDim.Render(fmt.Sprintf("assets (%d)", c.Len())))
	b.WriteString("\n")

	shown := rows - 1
	for i, a := range c.Assets {
		if i >= shown {
			b.WriteString(styleSidebarDim.Render(fmt.Sprintf("  +%d more", c.Len()-shown)))
			break
		}

		cursor := "  "
		if a.ID == m.registry.ActiveID() {
			cursor = "▸ "
		}
		mark := " "
		if m.registry.IsMarked(a.ID) {
			mark = "●"
		}

		name := a.Name
		if len(name) > sidebarWidth-8 {
			name = name[:sidebarWidth-9] + "…"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, name)

		if a.ID == m.registry.ActiveID() {
			b.WriteString(styleSidebarCur.Render(line))
		} else {
			b.WriteString(styleSidebarItem.Render(line))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
}

func (m *studioModel) viewFooter() string {
	if m.prompting {
		return StyleHighlight.Render("edit> ") + m.prompt + StyleDim.Render("▏") + "\n" +
			StyleDim.Render("enter send · esc cancel")
	}

	status := m.status
	if m.statErr {
		status = styleStatusErr.Render(status)
	} else {
		status = StyleDim.Render(status)
	}

	history := fmt.Sprintf("undo:%v redo:%v marked:%d",
		m.registry.CanUndo(), m.registry.CanRedo(), len(m.registry.Marked()))
	if m.editing {
		history += " · editing..."
	}
	return status + "\n" + StyleDim.Render(history)
}
