package entity

// Handler processes one message. Dispatch is synchronous: Trigger invokes all
// handlers bound to the message kind, in registration order, before returning.
type Handler func(Message)

// Binding is the handle returned by Bind, used to detach exactly that
// listener again.
type Binding struct {
	entity  *Entity
	kind    MessageType
	handler Handler
	removed bool
}

// Bind registers a handler for the given message kind and returns its
// binding handle.
func (e *Entity) Bind(kind MessageType, handler Handler) *Binding {
	if handler == nil {
		return nil
	}
	if e.listeners == nil {
		e.listeners = make(map[MessageType][]*Binding)
	}
	b := &Binding{entity: e, kind: kind, handler: handler}
	if _, ok := e.listeners[kind]; !ok {
		e.messageOrder = append(e.messageOrder, kind)
	}
	e.listeners[kind] = append(e.listeners[kind], b)
	return b
}

// Unbind detaches a binding. Unbinding during a dispatch of the same kind is
// safe; the handler simply stops receiving subsequent messages.
func (e *Entity) Unbind(b *Binding) {
	if b == nil || b.removed || b.entity != e {
		return
	}
	b.removed = true
	list := e.listeners[b.kind]
	for i, cur := range list {
		if cur == b {
			e.listeners[b.kind] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(e.listeners[b.kind]) == 0 {
		delete(e.listeners, b.kind)
		for i, k := range e.messageOrder {
			if k == b.kind {
				e.messageOrder = append(e.messageOrder[:i], e.messageOrder[i+1:]...)
				break
			}
		}
	}
}

// Trigger synchronously dispatches msg to every bound handler in registration
// order and returns the number of handlers invoked. A zero return tells the
// caller no listener remains interested in this kind.
func (e *Entity) Trigger(msg Message) int {
	if e == nil || msg == nil {
		return 0
	}
	list := e.listeners[msg.Kind()]
	if len(list) == 0 {
		return 0
	}
	// copy so handlers may bind/unbind during dispatch
	bound := make([]*Binding, len(list))
	copy(bound, list)
	count := 0
	for _, b := range bound {
		if b.removed {
			continue
		}
		b.handler(msg)
		count++
	}
	return count
}

// Accepts reports whether any handler is bound for the given kind.
func (e *Entity) Accepts(kind MessageType) bool {
	if e == nil {
		return false
	}
	return len(e.listeners[kind]) > 0
}

// AcceptedMessages returns the kinds this entity currently listens for, in
// first-bind order.
func (e *Entity) AcceptedMessages() []MessageType {
	if e == nil {
		return nil
	}
	out := make([]MessageType, len(e.messageOrder))
	copy(out, e.messageOrder)
	return out
}
