package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Wire-visible constants shared across the core.
 *
 *------------------------------------------------------------------*/

const (
	// NumChannels is the number of player frequencies / IIR channels.
	NumChannels = 10

	// TickRateHz is the ISR tick rate.
	TickRateHz = 100000

	// LockoutTicks is the lockout monostable duration (0.5 s).
	LockoutTicks = 50000

	// HitLedTicks is the hit-indicator monostable duration (0.5 s).
	HitLedTicks = 50000

	// DebounceTicks is the trigger debounce threshold (50 ms): a
	// state is confirmed once the counter exceeds this value.
	DebounceTicks = 5000

	// TransmitterPulseTicks is the non-continuous pulse duration (200 ms).
	TransmitterPulseTicks = 20000

	// FirDecimationFactor is how many raw samples feed one FIR epoch.
	FirDecimationFactor = 10

	// OutputQueueDepth is the power-estimation window length.
	OutputQueueDepth = 2000

	// DefaultFudgeFactor is the detector's default threshold multiplier.
	DefaultFudgeFactor = 3000

	// DriftRecomputeEpochs is how many epochs the incremental power
	// estimate is trusted before it is discarded and recomputed from
	// scratch, bounding the floating-point error a long run of
	// incremental subtract-oldest/add-newest updates can accumulate.
	DriftRecomputeEpochs = 10000

	// Pin assignments (hardware compatibility).
	TransmitterPin = 13
	HitLedPin      = 11
	TriggerPin     = 10

	// StartingShots is the trigger debouncer's initial shot count.
	StartingShots = 10
)
