package camera

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
)

// Compile-time interface check.
var _ domain.Camera = (*Webcam)(nil)

// Webcam acquires a local V4L2 device through a GStreamer pipeline:
// v4l2src → videoconvert → RGBA caps → appsink. The appsink keeps only
// the latest frame (max-buffers=1, drop=true) so Frame always reflects
// the live picture.
type Webcam struct {
	devicePath string
	log        *logger.Logger
}

// NewWebcam creates a webcam backend for the given device path
// (e.g. /dev/video0).
func NewWebcam(devicePath string, log *logger.Logger) *Webcam {
	return &Webcam{devicePath: devicePath, log: log}
}

// Acquire builds and starts the capture pipeline and returns the live
// device handle. The handle must be released before a new session starts.
func (w *Webcam) Acquire(ctx context.Context) (domain.CaptureDevice, error) {
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	src, err := gst.NewElement("v4l2src")
	if err != nil {
		return nil, fmt.Errorf("creating v4l2src: %w", err)
	}
	src.SetProperty("device", w.devicePath)

	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, fmt.Errorf("creating videoconvert: %w", err)
	}

	// Lock the appsink format to RGBA at the device's native resolution.
	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return nil, fmt.Errorf("creating capsfilter: %w", err)
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString("video/x-raw,format=RGBA"))

	sink, err := app.NewAppSink()
	if err != nil {
		return nil, fmt.Errorf("creating appsink: %w", err)
	}
	sink.SetProperty("sync", false)
	sink.SetProperty("max-buffers", 1)
	sink.SetProperty("drop", true)

	pipeline.AddMany(src, converter, capsfilter, sink.Element)
	if err := gst.ElementLinkMany(src, converter, capsfilter, sink.Element); err != nil {
		return nil, fmt.Errorf("linking pipeline elements: %w", err)
	}

	dev := &gstDevice{pipeline: pipeline, log: w.log}
	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: dev.onNewSample,
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("starting pipeline: %w", err)
	}

	w.log.Info("camera: gstreamer pipeline playing (device=%s)", w.devicePath)
	return dev, nil
}

// statePipeline is the slice of the pipeline the device handle drives.
type statePipeline interface {
	SetState(gst.State) error
}

// gstDevice is the live handle on a running capture pipeline.
type gstDevice struct {
	pipeline statePipeline

	mu       sync.Mutex
	frame    *image.RGBA
	released bool

	log *logger.Logger
}

// onNewSample copies the latest decoded frame out of the pipeline. A
// single bad sample skips the frame rather than terminating the stream.
func (d *gstDevice) onNewSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		return gst.FlowOK
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return gst.FlowOK
	}

	width, height, ok := sampleDimensions(sample)
	if !ok {
		d.log.Debug("camera: sample missing dimensions, skipping frame")
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) < width*height*4 {
		buffer.Unmap()
		return gst.FlowOK
	}

	// Copy out: GStreamer reuses the buffer after Unmap.
	pix := make([]byte, width*height*4)
	copy(pix, data)
	buffer.Unmap()

	d.publishFrame(&image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	})
	return gst.FlowOK
}

// publishFrame makes img the current frame. Frames arriving after release
// are dropped.
func (d *gstDevice) publishFrame(img *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.frame = img
}

// Frame returns the most recent decoded frame, or ErrNoFrame until the
// source has delivered one.
func (d *gstDevice) Frame() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frame == nil {
		return nil, domain.ErrNoFrame
	}
	return d.frame, nil
}

// Release stops the pipeline. Idempotent.
func (d *gstDevice) Release() {
	d.mu.Lock()
	if d.released {
		d.mu.Unlock()
		return
	}
	d.released = true
	d.frame = nil
	d.mu.Unlock()

	// The state change must run unlocked: the streaming thread may be
	// inside onNewSample waiting on d.mu, and the downward change waits
	// for that callback to return before deactivating the sink pad.
	if err := d.pipeline.SetState(gst.StateNull); err != nil {
		d.log.Error("camera: stopping pipeline: %v", err)
	}
}

// sampleDimensions reads width and height out of the sample caps.
func sampleDimensions(sample *gst.Sample) (int, int, bool) {
	caps := sample.GetCaps()
	if caps == nil {
		return 0, 0, false
	}
	st := caps.GetStructureAt(0)
	if st == nil {
		return 0, 0, false
	}

	wv, err := st.GetValue("width")
	if err != nil {
		return 0, 0, false
	}
	hv, err := st.GetValue("height")
	if err != nil {
		return 0, 0, false
	}

	width, wok := wv.(int)
	height, hok := hv.(int)
	if !wok || !hok || width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
