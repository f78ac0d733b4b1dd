// Package ebiten hosts the debug overlay on the Ebiten Dear ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sokoban/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and drives a debugui.Overlay inside each of its frames.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	overlay *debugui.Overlay
}

// NewImguiBackend creates the backend and sizes the Ebiten window through it.
func NewImguiBackend(overlay *debugui.Overlay, title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend, overlay: overlay}
}

// Frame runs one overlay pass between BeginFrame and EndFrame.
func (b *ImguiBackend) Frame(ctx *debugui.Context) error {
	b.BeginFrame()
	defer b.EndFrame()
	return b.overlay.Update(ctx)
}

func (b *ImguiBackend) Overlay() *debugui.Overlay {
	return b.overlay
}
