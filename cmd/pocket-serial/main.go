// Command pocket-serial reads fixed-length telemetry frames from a serial
// device and streams POCKET+-compressed output to stdout. The device can
// be named directly or discovered by USB vendor ID via udev.
package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jochenvg/go-udev"
	"github.com/pkg/term"
	"github.com/spf13/pflag"

	"github.com/tanagraspace/pocket-plus/bitvector"

	pocketplus "github.com/tanagraspace/pocket-plus"
)

var errNoDeviceFound = errors.New("pocket-serial: no matching serial device found")

// frameVector loads one raw frame into a BitVector of length bits.
func frameVector(bits int, raw []byte) (*bitvector.Vector, error) {
	v := bitvector.New(bits)
	if err := v.FromBytes(raw); err != nil {
		return nil, err
	}
	return v, nil
}

func main() {
	var (
		device         = pflag.StringP("device", "D", "", "serial device path, e.g. /dev/ttyUSB0 (skips udev discovery)")
		vendorID       = pflag.String("usb-vendor", "", "USB vendor ID to search for via udev, e.g. 0403 (used when -device is empty)")
		baud           = pflag.IntP("baud", "b", 115200, "serial baud rate")
		packetSizeBits = pflag.Int("packet-size-bits", 64, "frame length F in bits")
		robustnessFlag = pflag.Int("robustness", 1, "base robustness level R, 0-7")
		ptLimit        = pflag.Int("pt-limit", 10, "new-mask period, in frames")
		ftLimit        = pflag.Int("ft-limit", 20, "send-mask period, in frames")
		rtLimit        = pflag.Int("rt-limit", 50, "uncompressed period, in frames")
	)
	pflag.Parse()

	devicePath := *device
	if devicePath == "" {
		found, err := findSerialDevice(*vendorID)
		if err != nil {
			log.Fatal("udev discovery", "err", err)
		}
		devicePath = found
	}

	port, err := term.Open(devicePath, term.Speed(*baud), term.RawMode)
	if err != nil {
		log.Fatal("opening serial port", "device", devicePath, "err", err)
	}
	defer port.Close()

	driver, err := pocketplus.NewDriver(*packetSizeBits, *robustnessFlag, *ptLimit, *ftLimit, *rtLimit, nil)
	if err != nil {
		log.Fatal("configuring driver", "err", err)
	}

	frameBytes := (*packetSizeBits + 7) / 8
	buf := make([]byte, frameBytes)
	log.Info("capturing", "device", devicePath, "frame_bytes", frameBytes)

	for {
		if _, err := readFull(port, buf); err != nil {
			log.Info("stream ended", "err", err)
			return
		}

		vec, err := frameVector(*packetSizeBits, buf)
		if err != nil {
			log.Fatal("decoding frame", "err", err)
		}

		packet, err := driver.CompressFrame(vec)
		if err != nil {
			log.Fatal("compressing frame", "err", err)
		}
		if _, err := os.Stdout.Write(packet); err != nil {
			log.Fatal("writing stdout", "err", err)
		}
	}
}

// findSerialDevice searches udev's "tty" subsystem for a device matching
// vendorID, returning its /dev node.
func findSerialDevice(vendorID string) (string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("tty"); err != nil {
		return "", err
	}
	devices, err := e.Devices()
	if err != nil {
		return "", err
	}
	for _, d := range devices {
		if vendorID == "" || d.PropertyValue("ID_VENDOR_ID") == vendorID {
			if node := d.Devnode(); node != "" {
				return node, nil
			}
		}
	}
	return "", errNoDeviceFound
}

func readFull(r interface{ Read([]byte) (int, error) }, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
