// Package camera owns the capture device for the duration of a camera
// view and accumulates still captures into a session-scoped buffer.
package camera

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"sync"

	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
)

// DefaultQuality is the fixed JPEG quality factor applied to every capture.
const DefaultQuality = 80

// Session manages acquisition and release of a camera device and a
// frame-by-frame capture buffer. The device handle is exclusively owned by
// one session at a time; Stop must run on every path that leaves the
// camera view.
type Session struct {
	mu      sync.Mutex
	device  domain.CaptureDevice
	buffer  []domain.EncodedImage
	quality int
	log     *logger.Logger
}

// NewSession creates an inactive capture session. Quality outside 1-100
// falls back to DefaultQuality.
func NewSession(quality int, log *logger.Logger) *Session {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Session{quality: quality, log: log}
}

// Start clears the capture buffer and acquires the device. Acquisition
// failure is terminal for the session and reported as a camera error; it
// is not retried. Any previously held device is released first.
func (s *Session) Start(ctx context.Context, cam domain.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	s.buffer = s.buffer[:0]

	if cam == nil {
		return fmt.Errorf("%w: no capture backend configured", domain.ErrCameraUnavailable)
	}

	dev, err := cam.Acquire(ctx)
	if err != nil {
		s.log.Error("camera: device acquisition failed: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrCameraUnavailable, err)
	}

	s.device = dev
	s.log.Info("camera: session started")
	return nil
}

// Capture encodes the current frame at native resolution into the buffer.
// A silent no-op when the device is inactive or no decoded frame is
// available yet; the UI is expected to prevent this case, but it must not
// crash or corrupt the buffer.
func (s *Session) Capture() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return
	}

	frame, err := s.device.Frame()
	if err != nil {
		s.log.Debug("camera: capture skipped: %v", err)
		return
	}
	if b := frame.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: s.quality}); err != nil {
		s.log.Error("camera: jpeg encode failed: %v", err)
		return
	}

	token := domain.EncodedImage(base64.StdEncoding.EncodeToString(buf.Bytes()))
	s.buffer = append(s.buffer, token)
	s.log.Debug("camera: captured frame %d (%d bytes encoded)", len(s.buffer), len(token))
}

// Stop releases all underlying device tracks and clears the handle.
// Idempotent: calling it with no active device is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.device == nil {
		return
	}
	s.device.Release()
	s.device = nil
	s.log.Info("camera: device released")
}

// Finish stops the device and drains the ordered capture buffer for
// hand-off to ingestion. An empty return means no network call should
// follow.
func (s *Session) Finish() []domain.EncodedImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	out := s.buffer
	s.buffer = nil
	return out
}

// Captures returns the number of stills taken this session.
func (s *Session) Captures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// Active reports whether a device handle is currently held.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device != nil
}
