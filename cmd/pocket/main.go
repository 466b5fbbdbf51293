// Command pocket compresses and decompresses streams of fixed-length
// telemetry frames using the POCKET+ (CCSDS 124.0-B-1) algorithm.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	pocketplus "github.com/tanagraspace/pocket-plus"
)

func main() {
	var (
		configPath     = pflag.StringP("config", "c", "", "path to a YAML session manifest")
		decompress     = pflag.BoolP("decompress", "d", false, "decompress instead of compress")
		packetSizeBits = pflag.Int("packet-size-bits", 0, "frame length F in bits (overrides config)")
		robustnessFlag = pflag.Int("robustness", -1, "base robustness level R, 0-7 (overrides config)")
		ptLimit        = pflag.Int("pt-limit", 0, "new-mask period, in frames (overrides config)")
		ftLimit        = pflag.Int("ft-limit", 0, "send-mask period, in frames (overrides config)")
		rtLimit        = pflag.Int("rt-limit", 0, "uncompressed period, in frames (overrides config)")
		initialMaskHex = pflag.String("initial-mask", "", "hex-encoded initial mask M0 (overrides config)")
		quiet          = pflag.BoolP("quiet", "q", false, "suppress informational logging")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] < input > output\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *quiet {
		log.SetLevel(log.WarnLevel)
	}

	cfg := pocketplus.DefaultSessionConfig()
	if *configPath != "" {
		loaded, err := pocketplus.LoadSessionConfig(*configPath)
		if err != nil {
			log.Fatal("loading config", "err", err)
		}
		cfg = loaded
	}
	if *packetSizeBits > 0 {
		cfg.PacketSizeBits = *packetSizeBits
	}
	if *robustnessFlag >= 0 {
		cfg.Robustness = *robustnessFlag
	}
	if *ptLimit > 0 {
		cfg.PtLimit = *ptLimit
	}
	if *ftLimit > 0 {
		cfg.FtLimit = *ftLimit
	}
	if *rtLimit > 0 {
		cfg.RtLimit = *rtLimit
	}
	if *initialMaskHex != "" {
		cfg.InitialMask = *initialMaskHex
	}

	initialMask, err := cfg.InitialMaskVector()
	if err != nil {
		log.Fatal("invalid initial mask", "err", err)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal("reading stdin", "err", err)
	}

	var output []byte
	if *decompress {
		output, err = pocketplus.Decompress(input, cfg.PacketSizeBits, cfg.Robustness, initialMask)
	} else {
		output, err = pocketplus.Compress(input, cfg.PacketSizeBits, cfg.Robustness, cfg.PtLimit, cfg.FtLimit, cfg.RtLimit, initialMask)
	}
	if err != nil {
		log.Fatal("pocket", "err", err)
	}

	log.Info("done", "input_bytes", len(input), "output_bytes", len(output))

	if _, err := os.Stdout.Write(output); err != nil {
		log.Fatal("writing stdout", "err", err)
	}
}
