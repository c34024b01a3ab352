package constants

const (
	// Curve anchors
	CurveBaseline    = 40.0
	CurvePeakBase    = 70.0
	CurvePeakSwing   = 30.0
	CurveRampSwing   = 30.0
	CurveDeclineSpan = 50.0
	CurveDisplayMin  = 10.0
	CurveDisplayMax  = 100.0
	CurveJitter      = 5.0

	// MaxQuizWeight is the top of the quiz weight scale; scores live in [0, MaxQuizWeight].
	MaxQuizWeight = 3.0

	// Slot scoring
	MediumEnergyTarget  = 60.0
	PriorityBonusHigh   = 20.0
	PriorityBonusMedium = 10.0
	PriorityBonusLow    = 0.0

	// SlotMinutes is the slot granularity.
	SlotMinutes = 60

	ReasonNoSlot = "No available time slot"

	// Zone boundaries (start hours)
	MorningStartHour   = 5
	AfternoonStartHour = 12
	EveningStartHour   = 18
)
