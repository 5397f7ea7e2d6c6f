// Package app wires the AIS demodulator core into a runnable program: CLI
// configuration, capture ingestion, a frame sink, and periodic statistics
// reporting. None of this is part of the demodulator core itself.
package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"aisdemod/internal/ais"
	"aisdemod/internal/logging"
	"aisdemod/internal/pcmsource"
	"aisdemod/internal/sink"
)

// rollingWindowSamples is how many statistics snapshots feed the rolling
// mean reject rate, mirroring the teacher's 30s-cadence reporter with a
// smoothing window on top.
const rollingWindowSamples = 10

// Application owns the demodulators, capture ingestion, and frame sink for
// one run of the program.
type Application struct {
	config  Config
	logger  *logrus.Logger
	rotator *logging.LogRotator
	sink    *sink.Sink

	demodA *ais.Demodulator
	demodB *ais.Demodulator

	rollA *rollingRejectRate
	rollB *rollingRejectRate

	watcher *pcmsource.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication constructs an Application from config. Call Start to run
// it to completion (it blocks until a shutdown signal arrives).
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		rollA:  newRollingRejectRate(rollingWindowSamples),
		rollB:  newRollingRejectRate(rollingWindowSamples),
	}
}

// Start initializes all components, begins processing, and blocks until a
// shutdown signal is received.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("starting AIS demodulator")

	if err := app.initializeComponents(); err != nil {
		return errors.Wrap(err, "failed to initialize components")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.run(); err != nil {
		app.logger.WithError(err).Error("application error")
		app.shutdown()
		return err
	}

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		app.logger.WithError(err).Debug("systemd readiness notification failed")
	} else if sent {
		app.logger.Debug("notified systemd: ready")
	}

	<-sigChan
	app.logger.Info("received shutdown signal")
	app.shutdown()

	return nil
}

func (app *Application) initializeComponents() error {
	var err error

	app.rotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return errors.Wrap(err, "failed to initialize log rotator")
	}

	app.sink = sink.NewSink(app.rotator, app.logger)

	app.demodA, err = ais.NewDemodulator(ChannelA, app.sink.Callback(ChannelA))
	if err != nil {
		return errors.Wrap(err, "failed to construct channel A demodulator")
	}
	app.demodB, err = ais.NewDemodulator(ChannelB, app.sink.Callback(ChannelB))
	if err != nil {
		return errors.Wrap(err, "failed to construct channel B demodulator")
	}

	if app.config.WatchDir != "" {
		app.watcher, err = pcmsource.NewWatcher(app.config.WatchDir, app.logger)
		if err != nil {
			return errors.Wrap(err, "failed to initialize capture directory watcher")
		}
	}

	return nil
}

func (app *Application) run() error {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.rotator.Start(app.ctx)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.reportStatistics()
	}()

	switch {
	case app.config.Capture != "":
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			if err := app.processCapture(app.config.Capture); err != nil {
				app.logger.WithError(err).WithField("capture", app.config.Capture).Error("capture processing failed")
			}
		}()
	case app.watcher != nil:
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			app.watcher.Run(app.ctx)
		}()
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			app.processWatchedCaptures()
		}()
	default:
		return errors.New("no capture source configured: set --capture or --watch-dir")
	}

	app.logger.Info("all components started")
	return nil
}

func (app *Application) processWatchedCaptures() {
	for {
		select {
		case <-app.ctx.Done():
			return
		case path, ok := <-app.watcher.Files:
			if !ok {
				return
			}
			if err := app.processCapture(path); err != nil {
				app.logger.WithError(err).WithField("capture", path).Error("capture processing failed")
			}
		}
	}
}

// processCapture feeds one capture file's two channels through their
// respective demodulators, chunk by chunk, until it is exhausted.
func (app *Application) processCapture(path string) error {
	src, err := pcmsource.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open capture %s", path)
	}
	defer src.Close()

	app.logger.WithFields(logrus.Fields{
		"capture":     path,
		"sample_rate": src.SampleRate(),
	}).Info("processing capture")

	for {
		select {
		case <-app.ctx.Done():
			return nil
		default:
		}

		a, b, err := src.Next()
		if err != nil {
			if isEOF(err) {
				app.logger.WithField("capture", path).Info("capture processing complete")
				return nil
			}
			return errors.Wrap(err, "read capture chunk")
		}

		if len(a) > 0 {
			if err := app.demodA.PushSamples(a); err != nil {
				return errors.Wrap(err, "channel A PushSamples")
			}
		}
		if len(b) > 0 {
			if err := app.demodB.PushSamples(b); err != nil {
				return errors.Wrap(err, "channel B PushSamples")
			}
		}
	}
}

func isEOF(err error) bool {
	return stderrors.Is(err, io.EOF)
}

// reportStatistics logs a per-channel statistics snapshot every
// StatsInterval seconds, with a rolling mean reject rate smoothing out
// single noisy windows.
func (app *Application) reportStatistics() {
	interval := time.Duration(app.config.StatsInterval) * time.Second
	if interval <= 0 {
		interval = DefaultStatsInterval * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			app.logSnapshot(ChannelA, app.demodA, app.rollA)
			app.logSnapshot(ChannelB, app.demodB, app.rollB)
		}
	}
}

func (app *Application) logSnapshot(channel string, d *ais.Demodulator, roll *rollingRejectRate) {
	snap := statSnapshot{channel: channel, frames: d.Frames(), crcRejects: d.CRCRejects()}
	mean := roll.Add(snap)

	app.logger.WithFields(logrus.Fields{
		"channel":          channel,
		"frames":           snap.frames,
		"crc_rejects":      snap.crcRejects,
		"reject_rate":      fmt.Sprintf("%.4f", rejectRate(snap)),
		"reject_rate_mean": fmt.Sprintf("%.4f", mean),
	}).Info("demodulator statistics")
}

// shutdown cancels all background work and closes owned resources,
// allowing up to 5 seconds for goroutines to exit cleanly.
func (app *Application) shutdown() {
	app.logger.Info("shutting down application")
	app.cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("all goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("shutdown timeout, forcing exit")
	}

	if app.watcher != nil {
		app.watcher.Close()
	}
	if app.rotator != nil {
		app.rotator.Close()
	}

	app.logger.Info("shutdown complete")
}
