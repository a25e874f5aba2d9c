package menu

import "fmt"

const (
	menuID  EntityID = 1
	prevID  EntityID = 2
	nextID  EntityID = 3
	labelID EntityID = 4

	rootA EntityID = 10
	docA  EntityID = 11
	meshA EntityID = 12

	rootB EntityID = 20
	docB  EntityID = 21
	meshB EntityID = 22

	stray EntityID = 30
)

var testRefs = Refs{Menu: menuID, PrevButton: prevID, NextButton: nextID, PageLabel: labelID}

type fakeWorld struct {
	parents   map[EntityID]EntityID
	caps      map[EntityID]Capability
	live      map[EntityID]bool
	resources map[EntityID]Resource
	pages     map[EntityID]int
	pinnable  map[EntityID]bool
	calls     []string
}

func newFakeWorld() *fakeWorld {
	w := &fakeWorld{
		parents:   map[EntityID]EntityID{},
		caps:      map[EntityID]Capability{},
		live:      map[EntityID]bool{},
		resources: map[EntityID]Resource{},
		pages:     map[EntityID]int{},
		pinnable:  map[EntityID]bool{},
	}
	w.add(menuID, None, CapMenu)
	w.add(prevID, menuID, 0)
	w.add(nextID, menuID, 0)
	w.add(labelID, menuID, 0)

	w.add(rootA, None, CapMediaRoot)
	w.add(docA, rootA, CapDocument)
	w.add(meshA, docA, 0)
	w.resources[docA] = Resource{NumPages: 5}
	w.pages[docA] = 1
	w.pinnable[rootA] = true

	w.add(rootB, None, CapMediaRoot)
	w.add(docB, rootB, CapDocument)
	w.add(meshB, docB, 0)
	w.resources[docB] = Resource{NumPages: 3}
	w.pages[docB] = 2
	w.pinnable[rootB] = true

	w.add(stray, None, 0)
	return w
}

func (w *fakeWorld) add(id, parent EntityID, c Capability) {
	w.live[id] = true
	w.parents[id] = parent
	w.caps[id] = c
}

func (w *fakeWorld) remove(id EntityID) {
	delete(w.live, id)
}

func (w *fakeWorld) EntityExists(id EntityID) bool {
	return w.live[id]
}

func (w *fakeWorld) FindAncestorWithCapability(id EntityID, c Capability) EntityID {
	for id != None && w.live[id] {
		if w.caps[id]&c != 0 {
			return id
		}
		id = w.parents[id]
	}
	return None
}

func (w *fakeWorld) Resource(id EntityID) (Resource, bool) {
	r, ok := w.resources[id]
	return r, ok
}

func (w *fakeWorld) Page(id EntityID) int {
	if p, ok := w.pages[id]; ok {
		return p
	}
	return 1
}

func (w *fakeWorld) SetPage(id EntityID, page int) {
	w.calls = append(w.calls, fmt.Sprintf("set:%d=%d", id, page))
	w.pages[id] = page
}

func (w *fakeWorld) AcquireAuthority(id EntityID) {
	w.calls = append(w.calls, fmt.Sprintf("authority:%d", id))
}

func (w *fakeWorld) MarkDirty(id EntityID) {
	w.calls = append(w.calls, fmt.Sprintf("dirty:%d", id))
}

func (w *fakeWorld) CanPin(channel string, id EntityID) bool {
	return w.pinnable[id]
}

type fakeRenderer struct {
	visible       map[EntityID]bool
	text          map[EntityID]string
	followTarget  EntityID
	followEnabled bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		visible: map[EntityID]bool{},
		text:    map[EntityID]string{},
	}
}

func (r *fakeRenderer) SetVisible(id EntityID, visible bool) {
	r.visible[id] = visible
}

func (r *fakeRenderer) EnableFollow(menu, target EntityID) {
	r.followTarget = target
	r.followEnabled = true
}

func (r *fakeRenderer) DisableFollow(menu EntityID) {
	r.followEnabled = false
}

func (r *fakeRenderer) SetText(id EntityID, text string) {
	r.text[id] = text
}

func clicked(ids ...EntityID) func(EntityID) bool {
	return func(id EntityID) bool {
		for _, c := range ids {
			if c == id {
				return true
			}
		}
		return false
	}
}
