package backtest

import "fmt"

// ConfigurationError reports invalid simulation parameters. It is always
// raised before any bar is processed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid simulation config: %s", e.Reason)
}

// AlignmentError reports a signal series that does not match the price
// series it claims to be derived from.
type AlignmentError struct {
	PriceLen  int
	SignalLen int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("signal series length %d does not match price series length %d", e.SignalLen, e.PriceLen)
}

// DataUnavailableError reports an empty or missing price series from the
// upstream data provider.
type DataUnavailableError struct {
	Symbol string
	Range  string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no price data available for %s (range %s)", e.Symbol, e.Range)
}
