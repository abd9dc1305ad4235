package engine

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLeadingMinusAsSign enables the LeadingMinusAsSign transition: pressing
// "-" while no operator is pending and the current value is zero starts a
// negative operand instead of opening a subtraction.
func WithLeadingMinusAsSign(enable bool) Option {
	return func(e *Engine) {
		e.leadingMinus = enable
	}
}
