// Command badgesim runs a badge's Core against a synthetic ADC
// source on the host CPU, for bench testing away from real hardware.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	lasertag "github.com/kg7tag/lasertag-core/src"
)

// toneADC synthesizes a noise-free sine wave at the given channel's
// carrier frequency, standing in for a real transmitter shining on
// the sensor - useful for exercising the detector end to end without
// hardware.
type toneADC struct {
	channel int
	tick    int
}

func (t *toneADC) Read() uint16 {
	period := float64(lasertag.FrequencyTicks(t.channel))
	phase := 2 * math.Pi * float64(t.tick%int(period)) / period
	t.tick++
	// Centered at mid-scale, swinging through the 12-bit ADC range.
	v := 2047.5 + 2000*math.Sin(phase)
	if v < 0 {
		v = 0
	}
	if v > 4095 {
		v = 4095
	}
	return uint16(v)
}

func main() {
	var (
		configPath      = pflag.StringP("config-file", "c", "", "Badge YAML config file. Empty uses built-in defaults.")
		channel         = pflag.IntP("channel", "f", 0, "Synthetic source channel to emit, [0, 9].")
		ticks           = pflag.Int64P("ticks", "n", 1_000_000, "Number of 100 kHz ticks to simulate.")
		debug           = pflag.BoolP("debug", "d", false, "Enable debug logging.")
		timestampFormat = pflag.StringP("timestamp-format", "T", "", "strftime format to precede each hit line with, e.g. %H:%M:%S.")
		help            = pflag.BoolP("help", "h", false, "Display help text.")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "badgesim runs a lasertag badge core against a synthetic ADC source.\n\n")
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

	var timestamper *strftime.Strftime
	if *timestampFormat != "" {
		f, err := strftime.New(*timestampFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "badgesim: bad timestamp format: %v\n", err)
			os.Exit(1)
		}
		timestamper = f
	}

	cfg := lasertag.DefaultConfig()
	if *configPath != "" {
		loaded, err := lasertag.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "badgesim: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	adc := &toneADC{channel: *channel}
	core := lasertag.NewCore(
		adc,
		lasertag.NewMemPin(false),
		lasertag.NewMemPin(false),
		lasertag.NewMemPin(false),
		lasertag.NullSound{},
	)
	core.Init(cfg.IgnoreMask())
	core.Detector().SetMyFrequency(cfg.MyFrequency)
	core.Detector().SetIgnoreSelf(cfg.IgnoreSelf)
	core.Detector().SetFudgeFactor(cfg.FudgeFactor)
	core.Transmitter().SetFrequencyIndex(cfg.MyFrequency)

	hadHit := false
	for i := int64(0); i < *ticks; i++ {
		core.Tick()
		if i%lasertag.FirDecimationFactor == 0 {
			core.RunForeground(true)
		}
		if core.Detector().HitDetected() && !hadHit {
			printHit(timestamper, core.Detector().LastHitChannel())
		}
		hadHit = core.Detector().HitDetected()
	}

	fmt.Printf("hit counts: %v\n", core.Detector().HitCounts())
}

func printHit(timestamper *strftime.Strftime, channel int) {
	prefix := ""
	if timestamper != nil {
		prefix = timestamper.FormatString(time.Now()) + " "
	}
	fmt.Printf("%shit detected on channel %d\n", prefix, channel)
}
