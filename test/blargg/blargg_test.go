package blargg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashgrove/gogbc/gbcore"
)

// testCase names a Blargg ROM by its path relative to GOGBC_TEST_ROMS and the
// literal serial output it must produce on completion.
type testCase struct {
	romPath  string
	expected string
	frames   int
}

func testCases() []testCase {
	return []testCase{
		{romPath: "cpu_instrs/individual/01-special.gb", expected: "01-special\n\nPassed\n", frames: 2000},
		{romPath: "cpu_instrs/individual/06-ld r,r.gb", expected: "06-ld r,r\n\nPassed\n", frames: 2000},
		{romPath: "instr_timing.gb", expected: "instr_timing\n\nPassed\n", frames: 500},
	}
}

func TestBlarggSuite(t *testing.T) {
	root := os.Getenv("GOGBC_TEST_ROMS")
	if root == "" {
		t.Skip("GOGBC_TEST_ROMS not set; skipping Blargg ROM tests")
	}

	for _, tc := range testCases() {
		tc := tc
		t.Run(tc.romPath, func(t *testing.T) {
			path := filepath.Join(root, tc.romPath)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Skipf("ROM file not found: %s", path)
			}

			rom, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading ROM: %v", err)
			}

			core, err := gbcore.BuildFromROM(rom)
			if err != nil {
				t.Fatalf("building core: %v", err)
			}

			for i := 0; i < tc.frames; i++ {
				if _, err := core.RunToVBlank(); err != nil {
					t.Fatalf("emulation fault after %d frames: %v", i, err)
				}
				if strings.Contains(core.SerialOutput(), "Passed") {
					break
				}
			}

			if got := core.SerialOutput(); !strings.Contains(got, tc.expected) {
				t.Errorf("serial output mismatch\n  want substring: %q\n  got:            %q", tc.expected, got)
			}
		})
	}
}
