package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"trade_console/internal/catalog"
	"trade_console/internal/event"
	"trade_console/internal/stake"
	"trade_console/internal/store"

	"github.com/google/uuid"
)

// ErrStopped is returned when posting to a console that is no longer running.
var ErrStopped = errors.New("console stopped")

// Recorder receives event processing latency for metrics. Optional.
type Recorder interface {
	RecordEvent(latencyNs int64)
}

// Components are the stores and controllers a Console drives.
type Components struct {
	Trade         *store.TradeStore
	Client        *store.ClientStore
	Panels        *store.Panels
	Tooltip       *store.TooltipStore
	Favorites     *catalog.FavoritesStore
	Selector      *catalog.Selector
	Field         *stake.Field
	Input         *TextInput
	Continuations *Continuations
	Recorder      Recorder
}

// Console is the single-threaded event processor behind the trade panel.
// Every component is touched only from the Run goroutine; other goroutines
// post events and read rendered views.
type Console struct {
	inbox   chan event.Event
	done    chan struct{}
	session string
	seq     uint64

	c       Components
	lastErr string

	// Boundary: notified with every rendered view.
	onRender func(View)

	mu   sync.RWMutex // Guards view for external reads
	view View

	unsubscribe []func()
	stopOnce    sync.Once
}

// NewConsole wires store subscriptions and renders the initial view.
func NewConsole(inboxSize int, c Components, onRender func(View)) *Console {
	if c.Continuations == nil {
		c.Continuations = NewContinuations()
	}
	s := &Console{
		inbox:    make(chan event.Event, inboxSize),
		done:     make(chan struct{}),
		session:  uuid.NewString(),
		c:        c,
		onRender: onRender,
	}

	s.unsubscribe = append(s.unsubscribe,
		c.Trade.OnStake(c.Field.SyncFromStore),
		c.Client.OnCurrency(func(string) { c.Field.OnCurrencyChange() }),
	)
	s.render()
	return s
}

// Session returns the console session id.
func (s *Console) Session() string {
	return s.session
}

// Post enqueues ev, blocking while the inbox is full.
func (s *Console) Post(ctx context.Context, ev event.Event) error {
	select {
	case <-s.done:
		return ErrStopped
	default:
	}
	select {
	case s.inbox <- ev:
		return nil
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sync waits until every event posted before it has been rendered.
func (s *Console) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if err := s.Post(ctx, &event.SyncEvent{BaseEvent: stamp(), Done: done}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the main event loop. This MUST be run in a single goroutine.
func (s *Console) Run(ctx context.Context) {
	slog.Info("Console started", slog.String("session", s.session))

	defer func() {
		if r := recover(); r != nil {
			slog.Error("CRITICAL_PANIC_DETECTED", slog.Any("panic", r), slog.String("session", s.session))
			s.DumpState("panic_dump.json")
			s.stop()
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	s.c.Selector.Mount()
	s.render()
	s.c.Continuations.Flush()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Console stopping...", slog.Uint64("events", s.seq))
			s.stop()
			return
		case ev := <-s.inbox:
			s.processEvent(ev)
		}
	}
}

func (s *Console) stop() {
	s.stopOnce.Do(func() {
		for _, unsub := range s.unsubscribe {
			unsub()
		}
		s.c.Field.Unmount()
		close(s.done)
	})
}

func (s *Console) processEvent(ev event.Event) {
	start := time.Now()
	s.seq++

	switch e := ev.(type) {
	case *event.KeyInputEvent:
		s.c.Field.HandleChange(e.Raw, e.Caret)
		event.ReleaseKeyInputEvent(e)
	case *event.StepEvent:
		if e.Up {
			s.c.Field.HandleIncrement()
		} else {
			s.c.Field.HandleDecrement()
		}
	case *event.FocusEvent:
		s.c.Input.SetFocused(e.Focused)
		s.c.Field.HandleSelect(e.Focused)
	case *event.MobileClickEvent:
		s.c.Field.HandleMobileClick()
	case *event.SelectEvent:
		s.handleSelect(e.Symbol)
	case *event.TabEvent:
		s.setErr(s.c.Selector.SetTab(e.Tab))
	case *event.SearchEvent:
		s.c.Selector.SetQuery(e.Query)
	case *event.ClearSearchEvent:
		s.c.Selector.ClearQuery()
	case *event.ToggleFavoriteEvent:
		s.c.Selector.ToggleFavorite(e.Symbol)
	case *event.CatalogEvent:
		s.c.Selector.Refresh(e.Snapshot)
	case *event.CurrencyEvent:
		s.c.Client.SetCurrency(e.Currency)
	case *event.SyncEvent:
	default:
		slog.Warn("Unknown event type", slog.Any("type", ev.GetType()))
	}

	// Render, then run post-render continuations against it.
	s.render()
	if n := s.c.Continuations.Flush(); n > 0 {
		s.render()
	}

	if s.c.Recorder != nil {
		s.c.Recorder.RecordEvent(time.Since(start).Nanoseconds())
	}
	if e, ok := ev.(*event.SyncEvent); ok && e.Done != nil {
		close(e.Done)
	}
}

func (s *Console) handleSelect(symbol string) {
	sel, err := s.c.Selector.Select(symbol)
	if err != nil {
		s.setErr(err)
		return
	}
	s.lastErr = ""
	if sel.Accepted {
		slog.Info("Market selected", slog.String("symbol", symbol), slog.String("session", s.session))
	}
}

func (s *Console) setErr(err error) {
	if err == nil {
		s.lastErr = ""
		return
	}
	s.lastErr = err.Error()
	slog.Warn("Command failed", slog.Any("error", err), slog.String("session", s.session))
}

func (s *Console) render() {
	v := s.buildView()

	s.mu.Lock()
	s.view = v
	s.mu.Unlock()

	if s.onRender != nil {
		s.onRender(v)
	}
}

// View returns the last rendered view (external read).
func (s *Console) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// DumpState writes the last rendered view to a file (for post-mortem).
func (s *Console) DumpState(filename string) {
	slog.Info("Dumping internal state...", slog.String("file", filename))

	b, err := json.MarshalIndent(s.View(), "", "  ")
	if err != nil {
		slog.Error("Failed to marshal state", slog.Any("error", err))
		return
	}

	err = os.WriteFile(filename, b, 0644)
	if err != nil {
		slog.Error("Failed to write state dump", slog.Any("error", err))
	}
}

func stamp() event.BaseEvent {
	return event.BaseEvent{Ts: time.Now().UnixMilli()}
}
