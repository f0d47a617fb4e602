package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"

	"github.com/promagg/promagg"
)

type observationGenerator struct {
	rnd *rand.Rand

	remaining        uint64 // atomic
	nameFormat       string
	nameCardinality  uint
	labelCardinality []uint
	valueLimit       uint
	stringValues     bool
}

// next generates a random observation, returning false once the generator is exhausted.
// Only one goroutine may call next, remaining may be read concurrently.
func (g *observationGenerator) next() (string, promagg.Value, promagg.Labels, bool) {
	if atomic.LoadUint64(&g.remaining) == 0 {
		return "", nil, nil, false
	}
	atomic.AddUint64(&g.remaining, ^uint64(0))

	name := fmt.Sprintf(g.nameFormat, g.rnd.Intn(int(g.nameCardinality)))

	labels := make(promagg.Labels, len(g.labelCardinality))
	for idx, c := range g.labelCardinality {
		labels["label"+strconv.Itoa(idx)] = strconv.Itoa(g.rnd.Intn(int(c)))
	}

	var value promagg.Value
	switch {
	case g.stringValues:
		value = promagg.String("v" + strconv.Itoa(g.rnd.Intn(int(g.valueLimit))))
	case g.rnd.Intn(2) == 0:
		value = promagg.Int(g.rnd.Intn(int(g.valueLimit)))
	default:
		value = promagg.Float(g.rnd.Float64() * float64(g.valueLimit))
	}
	return name, value, labels, true
}

func (g *observationGenerator) pending() uint64 {
	return atomic.LoadUint64(&g.remaining)
}
