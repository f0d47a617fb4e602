package promagg

// Observation is a single metric data point sent to the aggregator.
// It is created for one send and discarded straight after.
type Observation struct {
	Name   string
	Value  Value
	Labels Labels
}

// NewObservation creates an Observation, substituting empty Labels when labels is nil.
func NewObservation(name string, value Value, labels Labels) *Observation {
	if labels == nil {
		labels = Labels{}
	}
	return &Observation{
		Name:   name,
		Value:  value,
		Labels: labels,
	}
}

// Sender emits observations to an aggregator.
type Sender interface {
	// Send emits one observation. labels may be nil.
	Send(name string, value Value, labels Labels) error
}
