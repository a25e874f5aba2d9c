package menu

import "time"

// EntityID is a weak reference to a scene entity. The zero value refers to
// nothing.
type EntityID uint32

// None is the empty entity reference.
const None EntityID = 0

// Capability is a bitmask of roles an entity can carry. Ancestor searches
// match any entity whose capabilities intersect the requested mask.
type Capability uint8

const (
	CapDocument  Capability = 1 << iota // entity bears paged document content
	CapMenu                             // entity is (part of) the page menu
	CapMediaRoot                        // media loader root; decides pinning
)

// Resource is the loaded descriptor of a document.
type Resource struct {
	NumPages int
}

// Scene answers structural questions about the scene graph.
type Scene interface {
	// EntityExists reports whether id refers to a live entity.
	EntityExists(id EntityID) bool
	// FindAncestorWithCapability walks from id (inclusive) toward the root
	// and returns the nearest entity carrying c, or None.
	FindAncestorWithCapability(id EntityID, c Capability) EntityID
}

// Resources maps documents to their loaded descriptors. An entry exists only
// once the document loader has finished.
type Resources interface {
	Resource(id EntityID) (Resource, bool)
}

// Pages is the networked page-number state. Mutations must be preceded by
// AcquireAuthority and MarkDirty.
type Pages interface {
	Page(id EntityID) int
	SetPage(id EntityID, page int)
	AcquireAuthority(id EntityID)
	MarkDirty(id EntityID)
}

// PermissionOracle decides whether the local participant may pin an entity.
type PermissionOracle interface {
	CanPin(channel string, id EntityID) bool
}

// World bundles every collaborator the controller reads from or mutates.
type World interface {
	Scene
	Resources
	Pages
	PermissionOracle
}

// Renderer receives the menu's visual state.
type Renderer interface {
	SetVisible(id EntityID, visible bool)
	// EnableFollow binds the menu's follow behavior to target and enables it.
	EnableFollow(menu, target EntityID)
	// DisableFollow clears the enabled bit and leaves the binding as is.
	DisableFollow(menu EntityID)
	SetText(id EntityID, text string)
}

// Refs holds the menu entity and its child controls.
type Refs struct {
	Menu       EntityID
	PrevButton EntityID
	NextButton EntityID
	PageLabel  EntityID
}

// State is the controller state carried between steps.
type State struct {
	TargetRef EntityID
	// ClearTargetTimer is the simulation time after which the target is
	// dropped unless hover evidence renews it.
	ClearTargetTimer time.Duration
}

// Frame is the per-step input to the controller.
type Frame struct {
	// Now is the current simulation time.
	Now time.Duration
	// Frozen suppresses the menu entirely.
	Frozen bool
	// Hovered is the ordered hover signal of the dominant pointer.
	Hovered []EntityID
	// Activated reports whether a button was activated this step. A nil
	// func means nothing was activated.
	Activated func(EntityID) bool
}

func (f Frame) activated(id EntityID) bool {
	return f.Activated != nil && f.Activated(id)
}
