package matching

// Scoring policy. Every number the engine uses lives here.
const (
	// MinConfidence drops resume skills that are mentioned but not evidenced.
	MinConfidence = 0.6
	// LowConfidence flags matched critical skills with thin evidence.
	LowConfidence = 0.7

	CriticalWeight = 2.0
	OptionalWeight = 1.0

	// DeficitPenaltyGap: a gap below this many years is penalised.
	DeficitPenaltyGap = -1
	PenaltyFactor     = 0.85
	NoPenalty         = 1.0
	// SevereDeficitGap: a gap below this is reported as severe.
	SevereDeficitGap = -2

	SkillShare      = 0.7
	ExperienceShare = 0.3

	// MaxNamedMissing caps the names listed in the missing-critical flag.
	MaxNamedMissing = 3
)

// experienceScores maps a penalty factor to the experience component of the
// final score. Only NoPenalty and PenaltyFactor are produced today;
// partialPenaltyScore covers any other factor below NoPenalty.
var experienceScores = map[float64]float64{
	NoPenalty:     1.0,
	PenaltyFactor: 0.5,
}

const partialPenaltyScore = 0.8

const (
	StatusSufficient = "sufficient"
	StatusDeficit    = "deficit"
)
