package event

import (
	"sync"
)

// Keystrokes are the highest-frequency input; KeyInputEvent is pooled.
//
// Usage:
//
//	ev := AcquireKeyInputEvent()
//	ev.Raw = "12 USD"
//	// ... post and process ...
//	ReleaseKeyInputEvent(ev) // after processing
var keyInputPool = sync.Pool{
	New: func() interface{} {
		return &KeyInputEvent{}
	},
}

// AcquireKeyInputEvent gets a KeyInputEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireKeyInputEvent() *KeyInputEvent {
	return keyInputPool.Get().(*KeyInputEvent)
}

// ReleaseKeyInputEvent resets ev and returns it to the pool.
func ReleaseKeyInputEvent(ev *KeyInputEvent) {
	if ev == nil {
		return
	}
	ev.Ts = 0
	ev.Raw = ""
	ev.Caret = 0

	keyInputPool.Put(ev)
}

// Warmup pre-allocates a batch of key input events.
func Warmup() {
	const batchSize = 64

	evs := make([]*KeyInputEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		evs = append(evs, AcquireKeyInputEvent())
	}
	for _, ev := range evs {
		ReleaseKeyInputEvent(ev)
	}
}
