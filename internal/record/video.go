package record

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// Video writes frames into a Motion-JPEG AVI file.
type Video struct {
	aw     mjpeg.AviWriter
	buf    bytes.Buffer
	opts   jpeg.Options
	frames int
}

// NewVideo creates path and prepares it for width*height frames at fps.
func NewVideo(path string, width, height, fps int) (*Video, error) {
	if width <= 0 || height <= 0 || fps <= 0 {
		return nil, fmt.Errorf("video %dx%d at %d fps: %w", width, height, fps, ErrInvalidSize)
	}
	aw, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create video %s: %w", path, err)
	}
	return &Video{aw: aw, opts: jpeg.Options{Quality: 90}}, nil
}

// AddFrame encodes img as JPEG and appends it.
func (v *Video) AddFrame(img image.Image) error {
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &v.opts); err != nil {
		return fmt.Errorf("encode frame %d: %w", v.frames, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (v *Video) Frames() int { return v.frames }

// Close finalizes the AVI index. The file is unreadable until Close returns.
func (v *Video) Close() error {
	return v.aw.Close()
}
