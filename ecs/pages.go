package ecs

import (
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/folio/menu"
)

// NetworkedPage is the shared page number of a document. Pages are 1-indexed.
type NetworkedPage struct {
	Page int
}

// Ownership records which participant holds authority over an entity.
type Ownership struct {
	Owner xid.ID
}

// DocumentRef links a donburi entity to the scene entity it mirrors.
type DocumentRef struct {
	ID menu.EntityID
}

var (
	NetworkedPageComponent = donburi.NewComponentType[NetworkedPage]()
	OwnershipComponent     = donburi.NewComponentType[Ownership]()
	DocumentComponent      = donburi.NewComponentType[DocumentRef]()

	// EntityStateDirty marks entities whose state must be propagated.
	EntityStateDirty = donburi.NewTag()
)

// PageChanged is published whenever a document's page number changes,
// locally or from a remote update.
type PageChanged struct {
	Document menu.EntityID
	Page     int
	Owner    xid.ID
	Remote   bool
}

// PageChangedEvent is the Donburi event type for PageChanged.
var PageChangedEvent = events.NewEventType[PageChanged]()

var dirtyQuery = donburi.NewQuery(filter.Contains(EntityStateDirty, DocumentComponent))

// PageStore keeps networked page state for documents. The zero value is not
// usable; create one with NewPageStore. Not safe for concurrent use.
type PageStore struct {
	world    donburi.World
	local    xid.ID
	entities map[menu.EntityID]donburi.Entity
	log      zerolog.Logger
}

// NewPageStore creates a store in world. local identifies this participant
// when it takes authority.
func NewPageStore(world donburi.World, local xid.ID) *PageStore {
	return &PageStore{
		world:    world,
		local:    local,
		entities: make(map[menu.EntityID]donburi.Entity),
		log:      zerolog.Nop(),
	}
}

// SetLogger sets the logger used for ownership changes.
func (p *PageStore) SetLogger(l zerolog.Logger) {
	p.log = l
}

// Local returns the ID of the local participant.
func (p *PageStore) Local() xid.ID {
	return p.local
}

// World returns the underlying donburi world.
func (p *PageStore) World() donburi.World {
	return p.world
}

// Register creates page state for doc, owned by owner. Registering an
// existing document resets its page and owner without marking it dirty.
func (p *PageStore) Register(doc menu.EntityID, page int, owner xid.ID) {
	if page < 1 {
		page = 1
	}
	entry := p.entry(doc)
	if entry == nil {
		e := p.world.Create(DocumentComponent, NetworkedPageComponent, OwnershipComponent)
		p.entities[doc] = e
		entry = p.world.Entry(e)
		DocumentComponent.SetValue(entry, DocumentRef{ID: doc})
	}
	NetworkedPageComponent.SetValue(entry, NetworkedPage{Page: page})
	OwnershipComponent.SetValue(entry, Ownership{Owner: owner})
}

// Unregister removes the state of doc.
func (p *PageStore) Unregister(doc menu.EntityID) {
	e, ok := p.entities[doc]
	if !ok {
		return
	}
	delete(p.entities, doc)
	if p.world.Valid(e) {
		p.world.Remove(e)
	}
}

// Registered reports whether doc has page state.
func (p *PageStore) Registered(doc menu.EntityID) bool {
	return p.entry(doc) != nil
}

func (p *PageStore) entry(doc menu.EntityID) *donburi.Entry {
	e, ok := p.entities[doc]
	if !ok || !p.world.Valid(e) {
		return nil
	}
	return p.world.Entry(e)
}

// ensure returns the entry for doc, registering it at page 1 with no owner
// when missing.
func (p *PageStore) ensure(doc menu.EntityID) *donburi.Entry {
	if entry := p.entry(doc); entry != nil {
		return entry
	}
	p.Register(doc, 1, xid.NilID())
	return p.entry(doc)
}

// Page returns the page number of doc. Documents without state are on
// page 1.
func (p *PageStore) Page(doc menu.EntityID) int {
	entry := p.entry(doc)
	if entry == nil {
		return 1
	}
	return NetworkedPageComponent.Get(entry).Page
}

// SetPage writes the page number of doc and publishes PageChanged.
func (p *PageStore) SetPage(doc menu.EntityID, page int) {
	entry := p.ensure(doc)
	NetworkedPageComponent.SetValue(entry, NetworkedPage{Page: page})
	PageChangedEvent.Publish(p.world, PageChanged{
		Document: doc,
		Page:     page,
		Owner:    OwnershipComponent.Get(entry).Owner,
	})
}

// AcquireAuthority makes the local participant the owner of doc.
func (p *PageStore) AcquireAuthority(doc menu.EntityID) {
	entry := p.ensure(doc)
	own := OwnershipComponent.Get(entry)
	if own.Owner == p.local {
		return
	}
	p.log.Debug().
		Uint32("document", uint32(doc)).
		Str("from", own.Owner.String()).
		Str("to", p.local.String()).
		Msg("authority acquired")
	own.Owner = p.local
}

// Owner returns the owner of doc.
func (p *PageStore) Owner(doc menu.EntityID) (xid.ID, bool) {
	entry := p.entry(doc)
	if entry == nil {
		return xid.NilID(), false
	}
	return OwnershipComponent.Get(entry).Owner, true
}

// MarkDirty tags doc for propagation.
func (p *PageStore) MarkDirty(doc menu.EntityID) {
	entry := p.ensure(doc)
	if !entry.HasComponent(EntityStateDirty) {
		entry.AddComponent(EntityStateDirty)
	}
}

// IsDirty reports whether doc is waiting for propagation.
func (p *PageStore) IsDirty(doc menu.EntityID) bool {
	entry := p.entry(doc)
	return entry != nil && entry.HasComponent(EntityStateDirty)
}

// Flush hands every dirty document's state to send and clears the tag.
// It returns the number of documents flushed.
func (p *PageStore) Flush(send func(PageChanged)) int {
	var dirty []donburi.Entity
	dirtyQuery.Each(p.world, func(entry *donburi.Entry) {
		dirty = append(dirty, entry.Entity())
	})
	for _, e := range dirty {
		entry := p.world.Entry(e)
		if send != nil {
			send(PageChanged{
				Document: DocumentComponent.Get(entry).ID,
				Page:     NetworkedPageComponent.Get(entry).Page,
				Owner:    OwnershipComponent.Get(entry).Owner,
			})
		}
		entry.RemoveComponent(EntityStateDirty)
	}
	return len(dirty)
}

// ApplyRemote stores a page change received from another participant. It
// does not mark the document dirty.
func (p *PageStore) ApplyRemote(doc menu.EntityID, page int, owner xid.ID) {
	entry := p.ensure(doc)
	NetworkedPageComponent.SetValue(entry, NetworkedPage{Page: page})
	OwnershipComponent.SetValue(entry, Ownership{Owner: owner})
	PageChangedEvent.Publish(p.world, PageChanged{
		Document: doc,
		Page:     page,
		Owner:    owner,
		Remote:   true,
	})
}

// Prune drops the state of documents for which exists reports false and
// returns how many were removed.
func (p *PageStore) Prune(exists func(menu.EntityID) bool) int {
	var gone []menu.EntityID
	for doc := range p.entities {
		if !exists(doc) {
			gone = append(gone, doc)
		}
	}
	for _, doc := range gone {
		p.Unregister(doc)
	}
	return len(gone)
}
