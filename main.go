package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/nixxel-company-limited/escpos-ws-bridge/adapter"
	"github.com/nixxel-company-limited/escpos-ws-bridge/printer"
	"github.com/nixxel-company-limited/escpos-ws-bridge/session"
	"github.com/spf13/viper"
)

const defaultCooldown = 5 * time.Second

func main() {
	// Local .env takes effect before Viper snapshots the environment
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PRINTER_MODE", "mock")
	viper.SetDefault("PRINTER_PORT", 9100)
	viper.SetDefault("RETRY_COOLDOWN", defaultCooldown.String())

	url := viper.GetString("WS_URL")
	if url == "" {
		panic("WS_URL is required")
	}
	mode := viper.GetString("PRINTER_MODE")
	cooldown, err := parseCooldown(viper.GetString("RETRY_COOLDOWN"))
	if err != nil {
		panic(err)
	}
	log.Printf("Target WebSocket URL: %s", url)
	log.Printf("Printer mode: %s", mode)

	device, err := newAdapter(mode)
	if err != nil {
		panic(err)
	}
	defer device.Close()

	err = start(device, func(sink session.Sink) {
		session.New(url, sink, cooldown).Run()
	})
	if err != nil {
		panic(err)
	}
}

// start brings the printer up and hands it to runSession. The printer is
// a hard dependency: any failure here returns before a single connection
// attempt is made.
func start(device adapter.Adapter, runSession func(session.Sink)) error {
	if err := device.Open(); err != nil {
		return fmt.Errorf("failed to open printer: %w", err)
	}

	prn := printer.New(device)
	if err := prn.Init(); err != nil {
		return fmt.Errorf("failed to initialize printer: %w", err)
	}
	log.Println("Printer initialized")

	runSession(prn)
	return nil
}

// parseCooldown rejects values viper's GetDuration would silently turn
// into a zero-length sleep, which would leave the retry loop with no
// suspension at all.
func parseCooldown(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid RETRY_COOLDOWN %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid RETRY_COOLDOWN %q: must be positive", raw)
	}
	return d, nil
}

// newAdapter builds the printer transport for the configured mode.
func newAdapter(mode string) (adapter.Adapter, error) {
	switch mode {
	case "mock":
		return adapter.NewConsoleAdapter(), nil
	case "network":
		host := viper.GetString("PRINTER_HOST")
		if host == "" {
			return nil, fmt.Errorf("PRINTER_HOST is required in network mode")
		}
		return adapter.NewNetworkAdapter(host, viper.GetInt("PRINTER_PORT")), nil
	case "usb":
		vidStr := viper.GetString("PRINTER_VID")
		pidStr := viper.GetString("PRINTER_PID")
		if vidStr == "" || pidStr == "" {
			return adapter.NewUSBAdapterAuto()
		}
		vid, err := strconv.ParseUint(vidStr, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid PRINTER_VID %q: %w", vidStr, err)
		}
		pid, err := strconv.ParseUint(pidStr, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid PRINTER_PID %q: %w", pidStr, err)
		}
		return adapter.NewUSBAdapter(uint16(vid), uint16(pid))
	default:
		return nil, fmt.Errorf("unknown printer mode %q (expected mock, usb or network)", mode)
	}
}
