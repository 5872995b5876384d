package audio

const (
	// CPUHz is the DMG master clock frequency.
	CPUHz = 4194304
	// OutputFrequency is the stereo sample rate produced by the APU.
	OutputFrequency = 44100
	// RingCapacity bounds the stereo sample ring; overflow silently drops
	// new samples, per spec.md §7.
	RingCapacity = 8192

	waveRAMSize = 16
)

// dutyTable maps the 2-bit duty selector (NRx1 bits 6-7) to the fraction of
// the 8-step square cycle that is high.
var dutyTable = [4][8]bool{
	{false, false, false, false, false, false, false, true},  // 12.5%
	{true, false, false, false, false, false, false, true},   // 25%
	{true, false, false, false, false, true, true, true},     // 50%
	{false, true, true, true, true, true, true, false},       // 75% (inverted 25%)
}
