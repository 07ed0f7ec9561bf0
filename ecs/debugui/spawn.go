//go:build cgo

package debugui

import "github.com/mawside/cellar/ecs"

// SpawnDebugPanels installs the standard panel set as one ImguiItem entity.
// The archetype viewer's selection filters the entity browser, and the
// browser's selection feeds the component inspector.
func SpawnDebugPanels(world *ecs.World, scheduler *ecs.Scheduler) {
	browser := NewEntityBrowserPanel(100)
	inspector := NewComponentInspectorPanel()
	viewer := NewArchetypeViewerPanel()
	stats := NewPerformanceStatsPanel(120)
	queries := NewQueryDebuggerPanel()
	timer := NewFrameTimer()

	world.Spawn(ImguiItem{
		Render: func() {
			if key := viewer.Render(world); key != nil {
				browser.FilterByArchetype(*key)
			}
			browser.Render(world)
			inspector.Render(world, browser.Selected())
			stats.Render(world, scheduler.Stats(), timer.Delta())
			queries.Render(world)
		},
	})
}
