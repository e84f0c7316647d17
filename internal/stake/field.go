package stake

import (
	"log/slog"

	"trade_console/internal/domain"
)

// TradeStake is the part of the trade-configuration store the stake field needs.
type TradeStake interface {
	Stake() string
	SetStake(stake string)
}

// CurrencySource supplies the active settlement currency.
type CurrencySource interface {
	Currency() string
}

// BottomSheetOpener opens the mobile bottom sheet for a given panel.
type BottomSheetOpener interface {
	OpenBottomSheet(key, height string)
}

// Input is the on-screen text control the field is bound to.
type Input interface {
	Bounds() domain.Rect
	Focused() bool
	SetCaret(pos int)
}

// Scheduler queues a continuation to run after the current render commits.
type Scheduler interface {
	Defer(fn func())
}

// Recorder receives stake activity for metrics. Optional.
type Recorder interface {
	RecordStakeEdit()
	RecordValidation(kind domain.ErrorKind)
}

// Mobile bottom sheet parameters for the stake panel.
const (
	SheetKey    = "stake"
	SheetHeight = "400px"
)

// tooltipOffsetX moves the error tooltip just left of the input.
const tooltipOffsetX = 8

// Deps groups the collaborators of a Field.
type Deps struct {
	Trade     TradeStake
	Client    CurrencySource
	Sheet     BottomSheetOpener
	Tooltip   domain.TooltipSink
	Input     Input
	Scheduler Scheduler
	Recorder  Recorder
}

// Field is the stake input controller. It keeps the locally displayed value,
// which may be invalid, apart from the committed stake in the trade store.
type Field struct {
	deps    Deps
	limits  Limits
	stepper *Stepper

	localValue string
	verdict    domain.Verdict
	isSelected bool
	mounted    bool

	// OnSelect and OnError mirror the input's selection and error state.
	OnSelect func(selected bool)
	OnError  func(hasError bool)
}

// NewField creates a mounted stake field seeded from the store's stake.
func NewField(deps Deps, limits Limits, stepper *Stepper) *Field {
	if stepper == nil {
		stepper = NewStepper(DefaultStep)
	}
	return &Field{
		deps:       deps,
		limits:     limits,
		stepper:    stepper,
		localValue: deps.Trade.Stake(),
		mounted:    true,
	}
}

// LocalValue returns the value currently shown in the input.
func (f *Field) LocalValue() string {
	return f.localValue
}

// Verdict returns the latest validation verdict.
func (f *Field) Verdict() domain.Verdict {
	return f.verdict
}

// IsSelected reports whether the input is focused/selected.
func (f *Field) IsSelected() bool {
	return f.isSelected
}

// SyncFromStore makes the local value follow a stake committed elsewhere.
func (f *Field) SyncFromStore(stake string) {
	f.localValue = stake
}

// HandleChange processes the raw input value after a keystroke.
// caret is the caret position at the time of the edit, or -1 if unknown.
func (f *Field) HandleChange(raw string, caret int) {
	value, accepted := normalizeEdit(f.localValue, raw, f.currency())
	if !accepted {
		return
	}
	f.record()
	f.localValue = value

	if value == "" {
		f.apply(domain.Verdict{IsError: true, Kind: domain.ErrorKindEmpty, Message: EmptyMessage})
		return
	}

	if f.validateAndUpdate(value) {
		f.commit(value)
	}
	f.restoreCaret(caret)
}

// HandleIncrement steps the committed stake up by one step.
func (f *Field) HandleIncrement() {
	f.step(f.stepper.Increment)
}

// HandleDecrement steps the committed stake down by one step.
func (f *Field) HandleDecrement() {
	f.step(f.stepper.Decrement)
}

func (f *Field) step(next func(string) string) {
	current := f.deps.Trade.Stake()
	if current == "" {
		current = "0"
	}
	value := next(current)
	f.record()
	if f.validateAndUpdate(value) {
		f.commit(value)
	}
}

// HandleSelect tracks focus and re-shows a pending error when focused.
func (f *Field) HandleSelect(selected bool) {
	f.isSelected = selected
	if f.OnSelect != nil {
		f.OnSelect(selected)
	}
	if f.verdict.IsError && f.verdict.Message != "" {
		f.showError(f.verdict.Message)
	}
}

// HandleMobileClick opens the stake bottom sheet.
func (f *Field) HandleMobileClick() {
	if f.deps.Sheet != nil {
		f.deps.Sheet.OpenBottomSheet(SheetKey, SheetHeight)
	}
}

// OnCurrencyChange re-validates the shown value against the new currency.
func (f *Field) OnCurrencyChange() {
	if f.validateAndUpdate(f.localValue) {
		f.hideError()
	}
}

// Unmount turns pending continuations into no-ops.
func (f *Field) Unmount() {
	f.mounted = false
}

func (f *Field) validateAndUpdate(value string) bool {
	v := f.limits.Validate(value, f.currency())
	f.apply(v)
	return !v.IsError
}

func (f *Field) apply(v domain.Verdict) {
	f.verdict = v
	if f.deps.Recorder != nil {
		f.deps.Recorder.RecordValidation(v.Kind)
	}
	if v.IsError && v.Message != "" {
		f.showError(v.Message)
	}
	if f.OnError != nil {
		f.OnError(v.IsError)
	}
}

func (f *Field) commit(value string) {
	f.deps.Trade.SetStake(value)
	f.hideError()
}

func (f *Field) showError(message string) {
	if f.deps.Tooltip == nil || f.deps.Input == nil {
		return
	}
	f.deps.Tooltip.ShowTooltip(message, anchorFor(f.deps.Input.Bounds()), domain.TooltipError)
}

func (f *Field) hideError() {
	if f.deps.Tooltip != nil {
		f.deps.Tooltip.HideTooltip()
	}
}

// restoreCaret puts the caret back once the normalized value has been rendered.
func (f *Field) restoreCaret(caret int) {
	if caret < 0 || f.deps.Scheduler == nil || f.deps.Input == nil {
		return
	}
	f.deps.Scheduler.Defer(func() {
		if !f.mounted || !f.deps.Input.Focused() {
			slog.Debug("Caret restore skipped", slog.Int("caret", caret))
			return
		}
		f.deps.Input.SetCaret(caret)
	})
}

func (f *Field) record() {
	if f.deps.Recorder != nil {
		f.deps.Recorder.RecordStakeEdit()
	}
}

func (f *Field) currency() string {
	if f.deps.Client == nil {
		return ""
	}
	return f.deps.Client.Currency()
}

func anchorFor(r domain.Rect) domain.Point {
	return domain.Point{X: r.Left - tooltipOffsetX, Y: r.Top + r.Height/2}
}
