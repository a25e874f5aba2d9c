package ecs

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/folio"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []folio.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e folio.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(folio.InteractionEvent{
		Type:    folio.EventPointerDown,
		NodeID:  42,
		GlobalX: 100,
		GlobalY: 200,
		Button:  folio.MouseButtonLeft,
	})
	store.EmitEvent(folio.InteractionEvent{Type: folio.EventClick, NodeID: 42})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != folio.EventPointerDown || e0.NodeID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}
	if received[1].Type != folio.EventClick {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_SceneClickReachesWorld(t *testing.T) {
	world := donburi.NewWorld()
	scene := folio.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))

	button := folio.NewSprite("button", 40, 20)
	button.Interactable = true
	scene.Root().AddChild(button)

	var clicks []uint32
	InteractionEventType.Subscribe(world, func(w donburi.World, e folio.InteractionEvent) {
		if e.Type == folio.EventClick {
			clicks = append(clicks, e.NodeID)
		}
	})

	scene.InjectClick(10, 10)
	scene.Step(0)
	scene.Step(0)
	InteractionEventType.ProcessEvents(world)

	if len(clicks) != 1 || clicks[0] != button.ID {
		t.Errorf("clicks = %v, want [%d]", clicks, button.ID)
	}
}
