package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ash2k/stager"
	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"github.com/tilinna/clock"
	"golang.org/x/time/rate"

	"github.com/promagg/promagg"
	"github.com/promagg/promagg/internal/util"
	"github.com/promagg/promagg/pkg/client"
)

const (
	pauseInitialInterval = 100 * time.Millisecond
	pauseMaxInterval     = 5 * time.Second
	statusInterval       = 1 * time.Second
)

func main() {
	opts := parseArgs(os.Args[1:])

	ctx, cancelFunc := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFunc()

	if err := run(ctx, opts, logrus.StandardLogger(), os.Stdout); err != nil {
		logrus.Fatalf("%v", err)
	}
}

type loader struct {
	logger     logrus.FieldLogger
	sender     promagg.Sender
	limiter    *rate.Limiter
	backoff    util.BackoffFactory
	generators []*observationGenerator

	sent   uint64 // atomic
	failed uint64 // atomic
}

func newLoader(opts commandOptions, sender promagg.Sender, logger logrus.FieldLogger) *loader {
	l := &loader{
		logger:  logger,
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), int(opts.Workers)),
		backoff: util.NewBackoffFactory(backoff.DefaultMultiplier, pauseInitialInterval, pauseMaxInterval),
	}
	for i := uint(0); i < opts.Workers; i++ {
		count := opts.Count / uint64(opts.Workers)
		if i == 0 {
			count += opts.Count % uint64(opts.Workers)
		}
		l.generators = append(l.generators, &observationGenerator{
			rnd:              rand.New(rand.NewSource(rand.Int63())),
			remaining:        count,
			nameFormat:       opts.MetricPrefix + "observation" + opts.MetricSuffix,
			nameCardinality:  opts.NameCardinality,
			labelCardinality: opts.LabelCardinality,
			valueLimit:       opts.ValueLimit,
			stringValues:     opts.StringValues,
		})
	}
	return l
}

func run(ctx context.Context, opts commandOptions, logger logrus.FieldLogger, out io.Writer) error {
	settings := client.NewSettings(opts.Host, opts.Port)
	settings.CompressionLevel = opts.CompressionLevel
	c, err := client.New(settings, client.WithLogger(logger))
	if err != nil {
		return err
	}
	l := newLoader(opts, c, logger)
	l.Run(ctx, out)
	if failed := atomic.LoadUint64(&l.failed); failed > 0 {
		return fmt.Errorf("%d observations failed to send", failed)
	}
	return nil
}

// Run sends every generated observation, printing progress to out every second. It returns
// once all generators are exhausted or ctx is done.
func (l *loader) Run(ctx context.Context, out io.Writer) {
	pendingWorkers := make(chan struct{}, len(l.generators))
	// Runs after the workers are shut down, so the final counts are complete.
	defer l.printStatus(out)
	stgr := stager.New()
	defer stgr.Shutdown()
	stage := stgr.NextStage()
	for _, g := range l.generators {
		g := g
		stage.StartWithContext(func(workerCtx context.Context) {
			defer func() { pendingWorkers <- struct{}{} }()
			l.sendWorker(workerCtx, g)
		})
	}

	statusTicker := clock.NewTicker(ctx, statusInterval)
	defer statusTicker.Stop()
	for runningWorkers := len(l.generators); runningWorkers > 0; {
		select {
		case <-ctx.Done():
			return
		case <-pendingWorkers:
			runningWorkers--
		case <-statusTicker.C:
			l.printStatus(out)
		}
	}
}

func (l *loader) printStatus(out io.Writer) {
	pending := uint64(0)
	for _, g := range l.generators {
		pending += g.pending()
	}
	_, _ = fmt.Fprintf(out, "%d sent, %d failed, %d pending\n", atomic.LoadUint64(&l.sent), atomic.LoadUint64(&l.failed), pending)
}

func (l *loader) sendWorker(ctx context.Context, g *observationGenerator) {
	bo := l.backoff()
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return
		}
		name, value, labels, ok := g.next()
		if !ok {
			return
		}
		if err := l.sender.Send(name, value, labels); err != nil {
			atomic.AddUint64(&l.failed, 1)
			pause := bo.NextBackOff()
			l.logger.WithError(err).WithField("pause", pause).Warn("error sending observation")
			if !interruptableSleep(ctx, pause) {
				return
			}
			continue
		}
		bo.Reset()
		atomic.AddUint64(&l.sent, 1)
	}
}

// interruptableSleep will sleep for the specified duration, or until the context is
// cancelled, whichever comes first.  Returns true if the sleep completes, false if
// the context is canceled.
func interruptableSleep(ctx context.Context, d time.Duration) bool {
	timer := clock.NewTimer(ctx, d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return false
	case <-timer.C:
		return true
	}
}
