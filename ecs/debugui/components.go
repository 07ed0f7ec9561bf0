//go:build cgo

package debugui

import (
	"github.com/mawside/cellar/ecs"
)

// Panel state structs. Panels are plain values captured by the render
// closure SpawnDebugPanels installs; they are not components themselves.

type EntityBrowserPanel struct {
	cache      *entityBrowserCache
	selected   ecs.Entity
	filterText string
	filterKey  *uint64
	pageSize   int
	page       int
}

type ComponentInspectorPanel struct {
	selected ecs.Entity
}

type ArchetypeViewerPanel struct {
	cache       *archetypeViewerCache
	selectedKey *uint64
}

type PerformanceStatsPanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerPanel struct {
	selectedTypes map[string]bool
	cache         *queryDebuggerCache
}
