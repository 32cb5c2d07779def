package emucore

import "fmt"

// StatusWord is the telemetry returned by Core.RenderFrame, packed as
// fps<<24 | fps3d<<16 | cpuLoad0<<8 | cpuLoad1.
type StatusWord uint32

// PackStatus builds a StatusWord. Values are truncated to 8 bits.
func PackStatus(fps, fps3d, cpuLoad0, cpuLoad1 int) StatusWord {
	return StatusWord(uint32(fps&0xFF)<<24 | uint32(fps3d&0xFF)<<16 |
		uint32(cpuLoad0&0xFF)<<8 | uint32(cpuLoad1&0xFF))
}

// FPS returns the emulated frames per second.
func (s StatusWord) FPS() int {
	return int(s>>24) & 0xFF
}

// FPS3D returns the frames per second of the 3D engine.
func (s StatusWord) FPS3D() int {
	return int(s>>16) & 0xFF
}

// CPULoad returns the load percentage of the ARM9 (0) or ARM7 (1) core.
func (s StatusWord) CPULoad(cpu int) int {
	if cpu == 0 {
		return int(s>>8) & 0xFF
	}
	return int(s) & 0xFF
}

// String returns the HUD line, e.g. "Fps:60/60(45%/12%)".
func (s StatusWord) String() string {
	return fmt.Sprintf("Fps:%d/%d(%d%%/%d%%)", s.FPS(), s.FPS3D(), s.CPULoad(0), s.CPULoad(1))
}
