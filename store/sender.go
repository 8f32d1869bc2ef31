package store

// Sender accepts an action from outside the current transition. It is the
// only capability handed to asynchronous jobs and to nested features.
type Sender[A any] interface {
	Send(action A)
}

// SenderFunc adapts a plain function to the Sender interface.
type SenderFunc[A any] func(A)

func (f SenderFunc[A]) Send(action A) { f(action) }

// Scope produces a sender usable by a nested feature: sending a child action
// applies translate at send time and forwards the result to parent. Scoping
// is transitive; a grandchild's sender is a mapper wrapping a mapper.
func Scope[Child, Parent any](parent Sender[Parent], translate func(Child) Parent) Sender[Child] {
	return actionMapper[Child, Parent]{parent: parent, translate: translate}
}

// actionMapper decorates a parent sender with a pure child-to-parent action
// translation applied eagerly on every send.
type actionMapper[Child, Parent any] struct {
	parent    Sender[Parent]
	translate func(Child) Parent
}

func (m actionMapper[Child, Parent]) Send(action Child) {
	m.parent.Send(m.translate(action))
}
