// Command badgerun runs a lasertag badge's Core against real
// hardware: GPIO lines via hwgpio, an SPI ADC front end via hwadc, and
// an optional PortAudio hit tone via hwaudio.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/physic"

	lasertag "github.com/kg7tag/lasertag-core/src"
	"github.com/kg7tag/lasertag-core/internal/hwadc"
	"github.com/kg7tag/lasertag-core/internal/hwaudio"
	"github.com/kg7tag/lasertag-core/internal/hwgpio"
)

func main() {
	var (
		configPath = pflag.StringP("config-file", "c", "", "Badge YAML config file. Empty uses built-in defaults.")
		gpioChip   = pflag.StringP("gpio-chip", "g", "/dev/gpiochip0", "GPIO character device to request pins from.")
		spiBus     = pflag.StringP("spi-bus", "s", "/dev/spidev0.0", "SPI bus the ADC front end is wired to.")
		adcChannel = pflag.IntP("adc-channel", "a", 0, "MCP3008 single-ended input the photodiode is wired to.")
		tone       = pflag.Float64P("tone-hz", "t", 1000, "Audible hit-indicator tone frequency, 0 to disable.")
		debug      = pflag.BoolP("debug", "d", false, "Enable debug logging.")
		help       = pflag.BoolP("help", "h", false, "Display help text.")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "badgerun runs a lasertag badge core against real GPIO/ADC/audio hardware.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}
	if *debug {
		lasertag.SetLogLevel(log.DebugLevel)
	}

	cfg := lasertag.DefaultConfig()
	if *configPath != "" {
		loaded, err := lasertag.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "badgerun: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	adc, err := hwadc.Open(*spiBus, 1*physic.MegaHertz, *adcChannel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "badgerun: %v\n", err)
		os.Exit(1)
	}

	transmitterPin, err := hwgpio.NewOutputPin(*gpioChip, cfg.TransmitterPin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "badgerun: %v\n", err)
		os.Exit(1)
	}
	defer transmitterPin.Close()

	hitLedPin, err := hwgpio.NewOutputPin(*gpioChip, cfg.HitLedPin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "badgerun: %v\n", err)
		os.Exit(1)
	}
	defer hitLedPin.Close()

	triggerPin, err := hwgpio.NewInputPin(*gpioChip, cfg.TriggerPin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "badgerun: %v\n", err)
		os.Exit(1)
	}
	defer triggerPin.Close()

	var sound lasertag.Sound = lasertag.NullSound{}
	if *tone > 0 {
		toneSound, err := hwaudio.NewToneSound(*tone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "badgerun: opening audio output: %v\n", err)
			os.Exit(1)
		}
		defer toneSound.Close()
		sound = toneSound
	}

	core := lasertag.NewCore(adc, transmitterPin, hitLedPin, triggerPin, sound)
	core.Init(cfg.IgnoreMask())
	core.Detector().SetMyFrequency(cfg.MyFrequency)
	core.Detector().SetIgnoreSelf(cfg.IgnoreSelf)
	core.Detector().SetFudgeFactor(cfg.FudgeFactor)
	core.Transmitter().SetFrequencyIndex(cfg.MyFrequency)
	core.Trigger().SetRemainingShots(cfg.StartingShots)

	if ts, ok := sound.(*hwaudio.ToneSound); ok {
		runToneBridge(core, ts)
	}
	runLoop(core)
}

// runToneBridge mirrors the hit-LED's on/off state onto the audio
// tone, since ToneSound.Tick is a no-op callback-driven sound source
// rather than a ticked state machine like HitLedTimer.
func runToneBridge(core *lasertag.Core, ts *hwaudio.ToneSound) {
	go func() {
		for range time.Tick(10 * time.Millisecond) {
			ts.SetActive(core.HitLed().Running())
		}
	}()
}

// runLoop drives the ISR/foreground split at the badge's 100 kHz tick
// rate from a single OS thread, standing in for the bare-metal timer
// interrupt the original firmware used.
func runLoop(core *lasertag.Core) {
	ticker := time.NewTicker(time.Second / lasertag.TickRateHz)
	defer ticker.Stop()

	var tickCount int64
	for range ticker.C {
		core.Tick()
		tickCount++
		if tickCount%lasertag.FirDecimationFactor == 0 {
			core.RunForeground(true)
		}
		if core.Detector().HitDetected() {
			log.Infof("hit detected on channel %d", core.Detector().LastHitChannel())
			core.Detector().ClearHit()
		}
	}
}
