package host

// Hooks is a set of optional lifecycle callbacks an embedder can attach to
// a Handle. Every field is a plain func(); none take engine data, mirroring
// the original engine's notification-only host callbacks (the embedder
// already has the call's inputs and outputs — a hook just says "this
// happened now"). A nil field is simply not called.
//
// Hook panics are recovered and logged, never propagated: a misbehaving
// embedder-supplied callback must not be able to crash the engine call it
// was attached to.
type Hooks struct {
	OnInit        func()
	OnIndex       func()
	OnAdd         func()
	OnRemove      func()
	OnSearch      func()
	OnClear       func()
	OnSerialize   func()
	OnDeserialize func()
}

// run invokes hook if non-nil, recovering and logging any panic it raises.
func (h Hooks) run(name string, hook func()) {
	if hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logPanic(name, r)
		}
	}()
	hook()
}

func (h Hooks) init()        { h.run("OnInit", h.OnInit) }
func (h Hooks) index()       { h.run("OnIndex", h.OnIndex) }
func (h Hooks) add()         { h.run("OnAdd", h.OnAdd) }
func (h Hooks) remove()      { h.run("OnRemove", h.OnRemove) }
func (h Hooks) search()      { h.run("OnSearch", h.OnSearch) }
func (h Hooks) clear()       { h.run("OnClear", h.OnClear) }
func (h Hooks) serialize()   { h.run("OnSerialize", h.OnSerialize) }
func (h Hooks) deserialize() { h.run("OnDeserialize", h.OnDeserialize) }
