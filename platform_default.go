//go:build !(js && wasm)

package gesture

// DefaultPlatform returns the platform for the current build target: ebiten
// touch polling on native targets.
func DefaultPlatform() Platform {
	return NewEbitenPlatform()
}
