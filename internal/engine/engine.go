package engine

import "math"

// Snapshot is the renderable state of the calculator after an event.
type Snapshot struct {
	// Display is the main display text: the operand or result, or "Error".
	Display string

	// History is the trace line shown above the display. It may be empty.
	History string

	// Error is true while the engine is in the Error state.
	Error bool

	// ResultPending is true right after "=" produced a result.
	ResultPending bool
}

// Engine is the arithmetic input engine.
type Engine struct {
	current Value
	// entry is non-nil while current is being typed; it holds the text form.
	entry         *operand
	previous      float64
	pending       Operator
	newOperand    bool
	resultPending bool
	history       string

	leadingMinus bool
}

// New creates an engine in its initial state, displaying "0".
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	return e
}

// HandleEvent applies ev and returns the resulting snapshot.
// Events that are not meaningful in the current state leave it unchanged.
func (e *Engine) HandleEvent(ev Event) Snapshot {
	switch ev.Kind {
	case KindDigit:
		e.inputDigit(ev.Digit)
	case KindDecimal:
		e.inputDecimal()
	case KindOperator:
		e.inputOperator(ev.Op)
	case KindFunc:
		e.applyFunc(ev.Fn)
	case KindEquals:
		e.equals()
	case KindClear:
		e.reset()
	case KindClearEntry:
		e.clearEntry()
	case KindBackspace:
		e.backspace()
	case KindToggleSign:
		e.toggleSign()
	}
	return e.Snapshot()
}

// Snapshot returns the current renderable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Display:       e.display(),
		History:       e.history,
		Error:         e.current.IsError(),
		ResultPending: e.resultPending,
	}
}

// Value returns the current value.
func (e *Engine) Value() Value {
	return e.current
}

// Pending returns the operator awaiting its right operand, or OpNone.
func (e *Engine) Pending() Operator {
	return e.pending
}

// HasDecimalPoint reports whether the operand being typed has a point.
func (e *Engine) HasDecimalPoint() bool {
	return e.entry != nil && e.entry.point
}

func (e *Engine) display() string {
	if e.entry != nil && !e.current.IsError() {
		return e.entry.String()
	}
	return FormatValue(e.current)
}

func (e *Engine) reset() {
	e.current = Number(0)
	e.entry = nil
	e.previous = 0
	e.pending = OpNone
	e.newOperand = true
	e.resultPending = false
	e.history = ""
}

// setEntry makes o the operand being typed.
func (e *Engine) setEntry(o operand) {
	e.entry = &o
	e.current = Number(o.float())
	e.newOperand = false
}

// startOperand discards a finished result or an error before new input.
func (e *Engine) startOperand() {
	if e.resultPending || e.current.IsError() {
		e.history = ""
	}
	e.resultPending = false
}

// editable returns the current value as an operand that can be extended or
// trimmed: the operand being typed, or else the displayed text of a computed
// value. Errors and exponent forms are not editable.
func (e *Engine) editable() (operand, bool) {
	if e.current.IsError() {
		return operand{}, false
	}
	if e.entry != nil {
		return *e.entry, true
	}
	return parseOperand(FormatValue(e.current))
}

func (e *Engine) inputDigit(d uint8) {
	if d > 9 {
		return
	}
	if e.resultPending || e.newOperand {
		e.startOperand()
		e.setEntry(digitOperand(d))
		return
	}
	o, ok := e.editable()
	if !ok {
		e.startOperand()
		e.setEntry(digitOperand(d))
		return
	}
	if !o.appendDigit(d) {
		return
	}
	e.setEntry(o)
}

func (e *Engine) inputDecimal() {
	if e.resultPending || e.newOperand {
		e.startOperand()
		e.setEntry(pointOperand())
		return
	}
	o, ok := e.editable()
	if !ok {
		e.startOperand()
		e.setEntry(pointOperand())
		return
	}
	o.appendPoint()
	e.setEntry(o)
}

func (e *Engine) inputOperator(op Operator) {
	if op == OpNone || e.current.IsError() {
		return
	}
	if op == OpSubtract && e.leadingMinus && e.pending == OpNone && e.current.IsZero() {
		e.leadingMinusAsSign()
		return
	}
	if e.current.IsZero() && op != OpSubtract {
		return
	}

	if !e.newOperand {
		if e.pending != OpNone {
			if !e.evaluateIntermediate() {
				return
			}
		} else {
			e.previous = e.current.Float()
		}
	}

	e.history = FormatNumber(e.previous) + " " + op.Symbol() + " "
	e.pending = op
	e.newOperand = true
	e.entry = nil
	e.resultPending = false
}

// leadingMinusAsSign starts (or flips) a negative operand in place of a
// subtraction on an empty operand.
func (e *Engine) leadingMinusAsSign() {
	o := zeroOperand()
	if e.entry != nil && !e.newOperand && !e.resultPending {
		o = *e.entry
	}
	e.startOperand()
	o.negate()
	e.setEntry(o)
}

// evaluateIntermediate applies the pending operator because another operator
// arrived before "=". Returns false if the engine entered the Error state.
func (e *Engine) evaluateIntermediate() bool {
	v := apply(e.pending, e.previous, e.current.Float())
	if v.IsError() {
		e.enterError("")
		return false
	}
	e.current = v
	e.previous = v.Float()
	e.entry = nil
	e.newOperand = true
	return true
}

func (e *Engine) equals() {
	if e.resultPending || e.pending == OpNone {
		return
	}
	second := e.current.Float()
	v := apply(e.pending, e.previous, second)
	if v.IsError() {
		e.enterError("")
		return
	}
	e.history = FormatNumber(e.previous) + " " + e.pending.Symbol() + " " + FormatNumber(second) + " ="
	e.current = v
	e.previous = v.Float()
	e.entry = nil
	e.resultPending = true
	e.pending = OpNone
	e.newOperand = true
}

// apply evaluates a op b.
func apply(op Operator, a, b float64) Value {
	switch op {
	case OpAdd:
		return checked(a + b)
	case OpSubtract:
		return checked(a - b)
	case OpMultiply:
		return checked(a * b)
	case OpDivide:
		if b == 0 {
			return ErrorValue()
		}
		return checked(a / b)
	case OpPower:
		return checked(math.Pow(a, b))
	default:
		return Number(b)
	}
}

func (e *Engine) applyFunc(fn Func) {
	if e.current.IsError() {
		return
	}
	x := e.current.Float()
	trace := fn.trace(FormatNumber(x))

	var v Value
	switch fn {
	case FnSquare:
		v = checked(x * x)
	case FnCube:
		v = checked(x * x * x)
	case FnSquareRoot:
		if x < 0 {
			v = ErrorValue()
		} else {
			v = Number(math.Sqrt(x))
		}
	case FnCubeRoot:
		v = Number(math.Cbrt(x))
	default:
		return
	}

	if v.IsError() {
		e.enterError(trace)
		return
	}
	e.current = v
	e.entry = nil
	e.history = trace
}

func (e *Engine) toggleSign() {
	if e.current.IsError() {
		return
	}
	if e.entry != nil {
		o := *e.entry
		o.negate()
		e.setEntry(o)
		return
	}
	e.current = Number(-e.current.Float())
}

func (e *Engine) backspace() {
	if e.resultPending {
		return
	}
	o, ok := e.editable()
	if !ok {
		o = zeroOperand()
	} else {
		o.backspace()
	}
	e.setEntry(o)
}

func (e *Engine) clearEntry() {
	e.current = Number(0)
	e.entry = nil
	e.newOperand = true
}

// enterError moves the engine to the Error state. history is the text left
// on the history line; only unary function traces survive an error.
func (e *Engine) enterError(history string) {
	e.current = ErrorValue()
	e.entry = nil
	e.history = history
	e.previous = 0
	e.pending = OpNone
	e.resultPending = false
	e.newOperand = true
}
