// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// The overlay keeps its windows as components in a storage of its own and renders them
// through a scheduler, while inspecting another storage handed in through Context.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sokoban/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// SchedulerSource names a scheduler whose stats the performance window shows.
type SchedulerSource struct {
	Name  string
	Stats func() *ecs.SchedulerStats
}

// Context is the per-frame resource set of the overlay scheduler.
type Context struct {
	// Target is the storage being inspected.
	Target     *ecs.Storage
	DeltaTime  float64
	Schedulers []SchedulerSource
	Input      ImguiInputState
}

// ImguiSystem records the input capture state and queues every ImguiItem render function.
type ImguiSystem struct {
	Items ecs.Query[struct{ *ImguiItem }]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame[*Context]) {
	io := imgui.CurrentIO()
	frame.Resources.Input.WantCaptureMouse = io.WantCaptureMouse()
	frame.Resources.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		render := item.Render
		frame.Commands.Defer(func() error {
			render()
			return nil
		})
	}
}

// Overlay owns the debug windows and the scheduler that draws them.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler[*Context]
}

// NewOverlay registers the window components, spawns one of each and wires the systems.
func NewOverlay(opts ...ecs.StorageOption) (*Overlay, error) {
	registry := ecs.NewComponentRegistry()
	if err := RegisterDebugUIComponents(registry); err != nil {
		return nil, err
	}

	storage := ecs.NewStorage(registry, opts...)
	if err := SpawnDebugUI(storage); err != nil {
		return nil, err
	}

	scheduler := ecs.NewScheduler[*Context](storage)
	scheduler.Register(&WindowSystem{})
	scheduler.Register(&ImguiSystem{})

	return &Overlay{storage: storage, scheduler: scheduler}, nil
}

// Storage is the overlay's own storage. Spawn ImguiItem entities here to add custom panels.
func (o *Overlay) Storage() *ecs.Storage {
	return o.storage
}

// Update runs one overlay frame. It must be called between the backend's BeginFrame and EndFrame.
func (o *Overlay) Update(ctx *Context) error {
	return o.scheduler.Once(ctx.DeltaTime, ctx)
}
