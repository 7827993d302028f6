package ecs

import (
	"github.com/phanxgames/curtain"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for curtain transition events.
var TransitionEventType = events.NewEventType[curtain.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on TransitionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) curtain.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event curtain.Event) {
	TransitionEventType.Publish(s.world, event)
}
