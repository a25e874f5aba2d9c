package viewer

import (
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/ecs"
	"github.com/phanxgames/folio/media"
	"github.com/phanxgames/folio/menu"
	"github.com/phanxgames/folio/permission"
)

// world presents the scene and its stores as one menu.World.
type world struct {
	scene     *folio.Scene
	pages     *ecs.PageStore
	resources *media.ResourceMap
	perms     *permission.Oracle
}

var _ menu.World = (*world)(nil)

func (w *world) EntityExists(id menu.EntityID) bool {
	return w.scene.EntityExists(id)
}

func (w *world) FindAncestorWithCapability(id menu.EntityID, c menu.Capability) menu.EntityID {
	return w.scene.FindAncestorWithCapability(id, c)
}

func (w *world) Resource(id menu.EntityID) (menu.Resource, bool) {
	return w.resources.Resource(id)
}

func (w *world) Page(id menu.EntityID) int {
	return w.pages.Page(id)
}

func (w *world) SetPage(id menu.EntityID, page int) {
	w.pages.SetPage(id, page)
}

func (w *world) AcquireAuthority(id menu.EntityID) {
	w.pages.AcquireAuthority(id)
}

func (w *world) MarkDirty(id menu.EntityID) {
	w.pages.MarkDirty(id)
}

func (w *world) CanPin(channel string, id menu.EntityID) bool {
	return w.perms.CanPin(channel, id)
}
