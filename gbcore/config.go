package gbcore

import "github.com/ashgrove/gogbc/internal/video"

// Config collects the few knobs a host can set when building a Core, using
// the functional-options idiom.
type Config struct {
	palette           video.Palette
	serialCapacity    int
	audioRingCapacity int
}

func defaultConfig() Config {
	return Config{
		palette:           video.DefaultPalette,
		serialCapacity:    4096,
		audioRingCapacity: 8192,
	}
}

// Option configures a Core at construction time.
type Option func(*Config)

// WithPalette overrides the default BGB-green shade table.
func WithPalette(p video.Palette) Option {
	return func(cfg *Config) { cfg.palette = p }
}

// WithGrayscalePalette selects the plain 4-shade grayscale palette instead
// of the default green-tinted one.
func WithGrayscalePalette() Option {
	return func(cfg *Config) { cfg.palette = video.Grayscale }
}

// WithSerialCapacity bounds how many bytes of serial output are retained
// for SerialOutput/SerialBytes.
func WithSerialCapacity(n int) Option {
	return func(cfg *Config) { cfg.serialCapacity = n }
}

// WithAudioRingCapacity sizes the APU's outgoing sample ring, in stereo
// sample pairs. Larger rings tolerate a slower-draining host at the cost of
// latency; smaller rings drop samples sooner if TakeAudio isn't called
// often enough.
func WithAudioRingCapacity(n int) Option {
	return func(cfg *Config) { cfg.audioRingCapacity = n }
}
