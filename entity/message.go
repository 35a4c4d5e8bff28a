package entity

import "time"

// MessageType identifies a message channel. The String form is the wire name
// shared with scene definitions and telemetry consumers.
type MessageType uint8

const (
	MessageTick MessageType = iota + 1
	MessageLogic
	MessageCameraUpdate
	MessageChildEntityAdded
	MessageChildEntityRemoved
	MessageHandleLogic
	MessageCheckCollisionGroup
	MessageTimeElapsed
	MessageAddCollisionEntity
	MessageRemoveCollisionEntity
	MessageRelocateEntity
	MessageOrientationUpdated
)

var messageNames = map[MessageType]string{
	MessageTick:                  "tick",
	MessageLogic:                 "logic",
	MessageCameraUpdate:          "camera-update",
	MessageChildEntityAdded:      "child-entity-added",
	MessageChildEntityRemoved:    "child-entity-removed",
	MessageHandleLogic:           "handle-logic",
	MessageCheckCollisionGroup:   "check-collision-group",
	MessageTimeElapsed:           "time-elapsed",
	MessageAddCollisionEntity:    "add-collision-entity",
	MessageRemoveCollisionEntity: "remove-collision-entity",
	MessageRelocateEntity:        "relocate-entity",
	MessageOrientationUpdated:    "orientation-updated",
}

func (t MessageType) String() string {
	if name, ok := messageNames[t]; ok {
		return name
	}
	return "unknown"
}

// Message is a tagged payload dispatched synchronously on an entity bus.
// Handlers receive the concrete payload type for the message's kind.
type Message interface {
	Kind() MessageType
}

// Tick carries real elapsed wall time in milliseconds and drives one
// scheduling pass.
type Tick struct {
	DeltaT float64
}

func (Tick) Kind() MessageType { return MessageTick }

// Logic is an alias channel for Tick kept for scene definitions that use the
// older name.
type Logic struct {
	DeltaT float64
}

func (Logic) Kind() MessageType { return MessageLogic }

// CameraUpdate reports the new viewport rectangle used for logic culling.
type CameraUpdate struct {
	ViewportLeft   float64
	ViewportTop    float64
	ViewportWidth  float64
	ViewportHeight float64
}

func (CameraUpdate) Kind() MessageType { return MessageCameraUpdate }

// ChildEntityAdded announces a new child entity to interested components.
type ChildEntityAdded struct {
	Child *Entity
}

func (ChildEntityAdded) Kind() MessageType { return MessageChildEntityAdded }

// ChildEntityRemoved announces a removed child entity.
type ChildEntityRemoved struct {
	Child *Entity
}

func (ChildEntityRemoved) Kind() MessageType { return MessageChildEntityRemoved }

// StepMessage is the per-step payload shared by HandleLogic and
// CheckCollisionGroup. The scheduler reuses one instance across all entities
// and steps, mutating it in place; handlers must not retain it past the
// current dispatch.
type StepMessage struct {
	DeltaT float64
	Camera *CameraWindow
}

// HandleLogic is delivered once per simulation step to every registered,
// non-culled entity.
type HandleLogic struct {
	Step *StepMessage
}

func (HandleLogic) Kind() MessageType { return MessageHandleLogic }

// CheckCollisionGroup asks the owning entity's collision group to run its
// resolution cycle for the current step.
type CheckCollisionGroup struct {
	Step *StepMessage
}

func (CheckCollisionGroup) Kind() MessageType { return MessageCheckCollisionGroup }

// Telemetry tags for TimeElapsed.
const (
	TimeElapsedLogic     = "Logic"
	TimeElapsedCollision = "Collision"
)

// TimeElapsed is timing telemetry; no handshake.
type TimeElapsed struct {
	Name string
	Time time.Duration
}

func (TimeElapsed) Kind() MessageType { return MessageTimeElapsed }

// AddCollisionEntity explicitly admits an entity into a collision group.
type AddCollisionEntity struct {
	Entity *Entity
}

func (AddCollisionEntity) Kind() MessageType { return MessageAddCollisionEntity }

// RemoveCollisionEntity explicitly removes an entity from a collision group.
type RemoveCollisionEntity struct {
	Entity *Entity
}

func (RemoveCollisionEntity) Kind() MessageType { return MessageRemoveCollisionEntity }

// RelocateEntity tells a collision group that resolution finished: snapshot
// previous positions and recompute the aggregate box.
type RelocateEntity struct{}

func (RelocateEntity) Kind() MessageType { return MessageRelocateEntity }

// OrientationUpdated reports a rotation change from a kinematic integrator.
type OrientationUpdated struct {
	Rotation float64
}

func (OrientationUpdated) Kind() MessageType { return MessageOrientationUpdated }

// Broadcaster delivers a message outside any single entity bus, e.g. scene
// wide telemetry. The simulation context is injected where needed instead of
// being read from a process-wide singleton.
type Broadcaster interface {
	Broadcast(Message) int
}
