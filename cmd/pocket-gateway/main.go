// Command pocket-gateway runs a POCKET+ decompression loop suited to an
// embedded gateway: it reads a compressed feed from stdin, writes the
// reconstructed frames to stdout, and toggles a GPIO line once per frame so
// external watchdog hardware can observe that decoding is making progress.
package main

import (
	"bufio"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/warthog618/go-gpiocdev"

	"github.com/tanagraspace/pocket-plus/bitio"

	pocketplus "github.com/tanagraspace/pocket-plus"
)

func main() {
	var (
		packetSizeBits = pflag.Int("packet-size-bits", 64, "frame length F in bits")
		robustnessFlag = pflag.Int("robustness", 1, "base robustness level R, 0-7")
		chip           = pflag.String("gpio-chip", "gpiochip0", "GPIO chip for the heartbeat line")
		line           = pflag.Int("gpio-line", 0, "GPIO line offset for the heartbeat")
		noHeartbeat    = pflag.Bool("no-heartbeat", false, "disable the GPIO heartbeat (for hosts without GPIO)")
	)
	pflag.Parse()

	if *robustnessFlag < 0 || *robustnessFlag > pocketplus.MaxRobustness {
		log.Fatal("robustness out of range", "robustness", *robustnessFlag)
	}

	var hb *heartbeat
	if !*noHeartbeat {
		h, err := newHeartbeat(*chip, *line)
		if err != nil {
			log.Warn("heartbeat disabled", "err", err)
		} else {
			hb = h
			defer hb.Close()
		}
	}

	dec, err := pocketplus.NewDecompressor(*packetSizeBits, nil)
	if err != nil {
		log.Fatal("configuring decompressor", "err", err)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal("reading stdin", "err", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	r := bitio.NewReader(input)
	frames := 0
	for r.Remaining() > 0 {
		frame, err := dec.DecompressFrame(r)
		if err != nil {
			log.Fatal("decompressing frame", "err", err)
		}
		r.AlignToByte()

		if _, err := w.Write(frame.Bytes()); err != nil {
			log.Fatal("writing stdout", "err", err)
		}

		frames++
		if hb != nil {
			if err := hb.Toggle(); err != nil {
				log.Warn("heartbeat toggle", "err", err)
			}
		}
	}

	log.Info("done", "frames", frames)
}

// heartbeat wraps a single GPIO output line toggled once per decoded frame.
type heartbeat struct {
	line  *gpiocdev.Line
	value int
}

func newHeartbeat(chip string, offset int) (*heartbeat, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &heartbeat{line: l}, nil
}

func (h *heartbeat) Toggle() error {
	h.value ^= 1
	return h.line.SetValue(h.value)
}

func (h *heartbeat) Close() error {
	return h.line.Close()
}
