package debugui

import (
	"errors"

	"github.com/plus3/sokoban/ecs"
)

func SpawnDebugUI(storage *ecs.Storage) error {
	_, err := storage.Spawn(
		NewEntityBrowserComponent(100),
		NewComponentInspectorComponent(),
		NewStorageViewerComponent(),
		NewPerformanceStatsComponent(120),
		NewQueryDebuggerComponent(),
	)
	return err
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) error {
	return errors.Join(
		ecs.RegisterComponent[EntityBrowserComponent](registry),
		ecs.RegisterComponent[ComponentInspectorComponent](registry),
		ecs.RegisterComponent[StorageViewerComponent](registry),
		ecs.RegisterComponent[PerformanceStatsComponent](registry),
		ecs.RegisterComponent[QueryDebuggerComponent](registry),
		ecs.RegisterComponent[ImguiItem](registry),
	)
}

// WindowSystem draws the built-in windows. The storage viewer's selection filters the entity
// browser, whose selection feeds the component inspector.
type WindowSystem struct {
	Windows ecs.Query[struct {
		Browser   *EntityBrowserComponent
		Inspector *ComponentInspectorComponent
		Viewer    *StorageViewerComponent
		Perf      *PerformanceStatsComponent
		Queries   *QueryDebuggerComponent
	}]
}

func (s *WindowSystem) Execute(frame *ecs.UpdateFrame[*Context]) {
	ctx := frame.Resources
	if ctx.Target == nil {
		return
	}

	for w := range s.Windows.Values() {
		frame.Commands.Defer(func() error {
			if kind, ok := w.Viewer.Render(ctx.Target); ok {
				w.Browser.SetKindFilter(kind)
			}
			w.Browser.Render(ctx.Target)
			w.Inspector.Render(ctx.Target, w.Browser.GetSelectedEntity())
			w.Queries.Render(ctx.Target)
			w.Perf.Render(ctx)
			return nil
		})
	}
}
