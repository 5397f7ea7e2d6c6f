// Package sink persists validated AIS frames without interpreting their
// payload: six-bit de-armoring and NMEA sentence formatting stay out of
// scope for this repository, same as for the demodulator core.
package sink

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"aisdemod/internal/ais"
	"aisdemod/internal/logging"
)

// Sink writes one line per delivered frame to a rotating log file: ISO
// timestamp, channel tag, payload byte length, hex payload.
type Sink struct {
	rotator *logging.LogRotator
	logger  *logrus.Logger
}

// NewSink binds a Sink to an already-open LogRotator.
func NewSink(rotator *logging.LogRotator, logger *logrus.Logger) *Sink {
	return &Sink{rotator: rotator, logger: logger}
}

// Callback returns an ais.Callback bound to channelTag that writes every
// delivered frame through the sink. Construct one per Demodulator.
func (s *Sink) Callback(channelTag string) ais.Callback {
	return func(f ais.Frame) {
		if err := s.write(channelTag, f); err != nil {
			s.logger.WithError(err).WithField("channel", channelTag).Error("failed to write frame")
		}
	}
}

func (s *Sink) write(channelTag string, f ais.Frame) error {
	writer, err := s.rotator.GetWriter()
	if err != nil {
		return fmt.Errorf("get log writer: %w", err)
	}

	line := fmt.Sprintf("%s,%s,%d,%s\n",
		time.Now().UTC().Format(time.RFC3339Nano),
		channelTag,
		len(f.Payload),
		hex.EncodeToString(f.Payload),
	)

	if _, err := writer.Write([]byte(line)); err != nil {
		return fmt.Errorf("write frame line: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"channel": channelTag,
		"bytes":   len(f.Payload),
	}).Debug("frame delivered")

	return nil
}
