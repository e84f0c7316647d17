package stake

import (
	"testing"

	"trade_console/internal/domain"

	"github.com/shopspring/decimal"
)

type fakeTrade struct {
	stake    string
	setCalls []string
}

func (f *fakeTrade) Stake() string { return f.stake }
func (f *fakeTrade) SetStake(s string) {
	f.stake = s
	f.setCalls = append(f.setCalls, s)
}

type fakeClient struct{ currency string }

func (f *fakeClient) Currency() string { return f.currency }

type fakeTooltip struct {
	message string
	anchor  domain.Point
	kind    domain.TooltipKind
	visible bool
}

func (f *fakeTooltip) ShowTooltip(message string, anchor domain.Point, kind domain.TooltipKind) {
	f.message, f.anchor, f.kind, f.visible = message, anchor, kind, true
}
func (f *fakeTooltip) HideTooltip() { f.visible = false }

type fakeInput struct {
	focused bool
	caret   int
}

func (f *fakeInput) Bounds() domain.Rect {
	return domain.Rect{Left: 100, Top: 40, Width: 200, Height: 20}
}
func (f *fakeInput) Focused() bool { return f.focused }
func (f *fakeInput) SetCaret(pos int) { f.caret = pos }

type fakeScheduler struct{ queue []func() }

func (f *fakeScheduler) Defer(fn func()) { f.queue = append(f.queue, fn) }
func (f *fakeScheduler) flush() {
	q := f.queue
	f.queue = nil
	for _, fn := range q {
		fn()
	}
}

type fakeSheet struct{ key, height string }

func (f *fakeSheet) OpenBottomSheet(key, height string) { f.key, f.height = key, height }

type fieldFixture struct {
	field   *Field
	trade   *fakeTrade
	client  *fakeClient
	tooltip *fakeTooltip
	input   *fakeInput
	sched   *fakeScheduler
	sheet   *fakeSheet
}

func newFieldFixture(stake string) *fieldFixture {
	fx := &fieldFixture{
		trade:   &fakeTrade{stake: stake},
		client:  &fakeClient{currency: "USD"},
		tooltip: &fakeTooltip{},
		input:   &fakeInput{focused: true, caret: -1},
		sched:   &fakeScheduler{},
		sheet:   &fakeSheet{},
	}
	fx.field = NewField(Deps{
		Trade:     fx.trade,
		Client:    fx.client,
		Sheet:     fx.sheet,
		Tooltip:   fx.tooltip,
		Input:     fx.input,
		Scheduler: fx.sched,
	}, Limits{MinStake: decimal.NewFromInt(1), MaxPayout: decimal.NewFromInt(100)}, NewStepper(decimal.NewFromInt(1)))
	return fx
}

func TestField_HandleChange_CommitsValidValue(t *testing.T) {
	fx := newFieldFixture("10")

	fx.field.HandleChange("105 USD", 2)

	if fx.field.LocalValue() != "105" {
		t.Errorf("Expected local value 105, got %q", fx.field.LocalValue())
	}
	if fx.trade.stake != "10" {
		t.Errorf("Out-of-bounds value must not be committed, store has %q", fx.trade.stake)
	}
	if fx.field.Verdict().Kind != domain.ErrorKindAboveMaximum {
		t.Errorf("Expected AboveMaximum, got %s", fx.field.Verdict().Kind)
	}
	if !fx.tooltip.visible || fx.tooltip.kind != domain.TooltipError {
		t.Error("Error tooltip should be visible")
	}

	fx.field.HandleChange("15 USD", 1)
	if fx.trade.stake != "15" {
		t.Errorf("Expected committed 15, got %q", fx.trade.stake)
	}
	if fx.tooltip.visible {
		t.Error("Tooltip should be hidden after a valid edit")
	}
}

func TestField_HandleChange_EmptyKeepsStore(t *testing.T) {
	fx := newFieldFixture("10")
	var lastErr bool
	fx.field.OnError = func(hasError bool) { lastErr = hasError }

	fx.field.HandleChange(" USD", 0)

	if fx.field.LocalValue() != "" {
		t.Errorf("Expected empty local value, got %q", fx.field.LocalValue())
	}
	if fx.field.Verdict().Kind != domain.ErrorKindEmpty {
		t.Errorf("Expected Empty, got %s", fx.field.Verdict().Kind)
	}
	if fx.tooltip.message != EmptyMessage {
		t.Errorf("Expected %q, got %q", EmptyMessage, fx.tooltip.message)
	}
	if len(fx.trade.setCalls) != 0 {
		t.Errorf("Store must not be written on error, got %v", fx.trade.setCalls)
	}
	if !lastErr {
		t.Error("OnError should report true")
	}
}

func TestField_HandleChange_RejectedSuffixDeletion(t *testing.T) {
	fx := newFieldFixture("123456")

	fx.field.HandleChange("1 USD", 0)

	if fx.field.LocalValue() != "123456" {
		t.Errorf("Rejected edit must keep local value, got %q", fx.field.LocalValue())
	}
	if fx.tooltip.visible || len(fx.sched.queue) != 0 {
		t.Error("Rejected edit must have no side effects")
	}
}

func TestField_TooltipAnchor(t *testing.T) {
	fx := newFieldFixture("10")

	fx.field.HandleChange("0.5", 3)

	want := domain.Point{X: 92, Y: 50}
	if fx.tooltip.anchor != want {
		t.Errorf("Expected anchor %+v, got %+v", want, fx.tooltip.anchor)
	}
}

func TestField_CaretRestore(t *testing.T) {
	t.Run("restored after render", func(t *testing.T) {
		fx := newFieldFixture("1")
		fx.field.HandleChange("12 USD", 2)

		if fx.input.caret != -1 {
			t.Error("Caret must not move before the render commits")
		}
		fx.sched.flush()
		if fx.input.caret != 2 {
			t.Errorf("Expected caret 2, got %d", fx.input.caret)
		}
	})

	t.Run("no-op after blur", func(t *testing.T) {
		fx := newFieldFixture("1")
		fx.field.HandleChange("12 USD", 2)
		fx.input.focused = false
		fx.sched.flush()
		if fx.input.caret != -1 {
			t.Errorf("Caret should not move on blurred input, got %d", fx.input.caret)
		}
	})

	t.Run("no-op after unmount", func(t *testing.T) {
		fx := newFieldFixture("1")
		fx.field.HandleChange("12 USD", 2)
		fx.field.Unmount()
		fx.sched.flush()
		if fx.input.caret != -1 {
			t.Errorf("Caret should not move on unmounted input, got %d", fx.input.caret)
		}
	})
}

func TestField_IncrementDecrement(t *testing.T) {
	fx := newFieldFixture("5")

	fx.field.HandleIncrement()
	if fx.trade.stake != "6" {
		t.Fatalf("Expected 6, got %q", fx.trade.stake)
	}
	fx.field.HandleDecrement()
	if fx.trade.stake != "5" {
		t.Errorf("Expected 5, got %q", fx.trade.stake)
	}
}

func TestField_DecrementToZeroIsRejected(t *testing.T) {
	fx := newFieldFixture("1")

	fx.field.HandleDecrement()

	if fx.trade.stake != "1" {
		t.Errorf("Zero stake must not be committed, got %q", fx.trade.stake)
	}
	if fx.field.Verdict().Kind != domain.ErrorKindEmpty {
		t.Errorf("Expected Empty, got %s", fx.field.Verdict().Kind)
	}
}

func TestField_IncrementFromEmpty(t *testing.T) {
	fx := newFieldFixture("")

	fx.field.HandleIncrement()

	if fx.trade.stake != "1" {
		t.Errorf("Expected 1, got %q", fx.trade.stake)
	}
}

func TestField_IncrementPastMaximum(t *testing.T) {
	fx := newFieldFixture("100")

	fx.field.HandleIncrement()

	if fx.trade.stake != "100" {
		t.Errorf("Expected stake to stay at 100, got %q", fx.trade.stake)
	}
	if fx.field.Verdict().Kind != domain.ErrorKindAboveMaximum {
		t.Errorf("Expected AboveMaximum, got %s", fx.field.Verdict().Kind)
	}
}

func TestField_HandleSelect_ReshowsError(t *testing.T) {
	fx := newFieldFixture("10")
	var selected bool
	fx.field.OnSelect = func(s bool) { selected = s }

	fx.field.HandleChange("0.5", 3)
	fx.tooltip.HideTooltip()

	fx.field.HandleSelect(true)

	if !selected || !fx.field.IsSelected() {
		t.Error("Field should be selected")
	}
	if !fx.tooltip.visible {
		t.Error("Pending error should be shown again on select")
	}
}

func TestField_HandleMobileClick(t *testing.T) {
	fx := newFieldFixture("10")

	fx.field.HandleMobileClick()

	if fx.sheet.key != SheetKey || fx.sheet.height != SheetHeight {
		t.Errorf("Expected sheet %s/%s, got %s/%s", SheetKey, SheetHeight, fx.sheet.key, fx.sheet.height)
	}
}

func TestField_OnCurrencyChange_Revalidates(t *testing.T) {
	fx := newFieldFixture("10")
	fx.field.HandleChange("0.5", 3)
	usd := fx.field.Verdict().Message

	fx.client.currency = "JPY"
	fx.field.OnCurrencyChange()

	if fx.field.Verdict().Message == usd {
		t.Errorf("Verdict should be recomputed for the new currency, still %q", usd)
	}
}

func TestField_SyncFromStore(t *testing.T) {
	fx := newFieldFixture("10")

	fx.field.SyncFromStore("25")

	if fx.field.LocalValue() != "25" {
		t.Errorf("Expected 25, got %q", fx.field.LocalValue())
	}
}
