//go:build cgo

// Package ebiten bridges the Dear ImGui backend for the Ebiten game engine
// into resource form.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// Backend wraps the Ebiten-specific Dear ImGui backend so it can live in a
// world as a resource. Call BeginFrame before stepping the scheduler and
// EndFrame after; Draw renders the accumulated widgets onto the screen.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates a backend with its own window.
func NewBackend(title string, width, height int) Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	return Backend{EbitenBackend: b}
}
