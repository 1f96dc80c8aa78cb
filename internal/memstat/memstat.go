// Package memstat reports the process's memory footprint.
package memstat

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sys/unix"
)

var errNoVmRSS = errors.New("memstat: VmRSS not found")

// PeakKB returns the peak resident set size in KiB.
func PeakKB() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, fmt.Errorf("getrusage: %w", err)
	}

	// Darwin reports bytes, Linux reports KiB.
	if runtime.GOOS == "darwin" {
		return int64(ru.Maxrss) / 1024, nil
	}

	return int64(ru.Maxrss), nil
}

// CurrentKB returns the current resident set size in KiB. Where
// /proc/self/status is unavailable it falls back to PeakKB.
func CurrentKB() (int64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return PeakKB()
	}
	defer f.Close()

	return parseVmRSS(f)
}

func parseVmRSS(r io.Reader) (int64, error) {
	prefix := []byte("VmRSS:")

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()
		if !bytes.HasPrefix(line, prefix) {
			continue
		}

		fields := bytes.Fields(line[len(prefix):])
		if len(fields) == 0 {
			break
		}

		return strconv.ParseInt(string(fields[0]), 10, 64)
	}

	if err := sc.Err(); err != nil {
		return 0, err
	}

	return 0, errNoVmRSS
}
