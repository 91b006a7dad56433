package fixture

import (
	"strings"
	"time"
)

// Short status codes as reported by the upstream football API.
const (
	StatusNotStarted  = "NS"
	StatusToBeDefined = "TBD"

	StatusFirstHalf   = "1H"
	StatusHalfTime    = "HT"
	StatusSecondHalf  = "2H"
	StatusExtraTime   = "ET"
	StatusPenalties   = "P"
	StatusBreakTime   = "BT"
	StatusLive        = "LIVE"
	StatusSuspended   = "SUSP"
	StatusInterrupted = "INT"

	StatusFullTime       = "FT"
	StatusAfterExtraTime = "AET"
	StatusAfterPenalties = "PEN"

	StatusPostponed = "PST"
	StatusCancelled = "CANC"
	StatusAbandoned = "ABD"
	StatusAwarded   = "AWD"
	StatusWalkover  = "WO"
)

// Fixture is one scheduled or played match of the followed team.
type Fixture struct {
	ID           int64
	DateTime     time.Time
	StatusShort  string
	HomeTeamID   int64
	HomeTeamName string
	HomeTeamLogo string
	AwayTeamID   int64
	AwayTeamName string
	AwayTeamLogo string
	LeagueID     int64
	Round        string
	HomeScore    *int
	AwayScore    *int
	Processed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LiveState is the slice of a fixture the live updater is allowed to write.
type LiveState struct {
	StatusShort string
	HomeScore   *int
	AwayScore   *int
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusNotStarted
	}
	return status
}

// IsScheduled reports whether predictions are still open for the status.
func IsScheduled(status string) bool {
	switch NormalizeStatus(status) {
	case StatusNotStarted, StatusToBeDefined:
		return true
	default:
		return false
	}
}

func IsInProgress(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusExtraTime,
		StatusPenalties, StatusBreakTime, StatusLive, StatusSuspended, StatusInterrupted:
		return true
	default:
		return false
	}
}

func IsFinished(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFullTime, StatusAfterExtraTime, StatusAfterPenalties,
		StatusCancelled, StatusAbandoned, StatusAwarded, StatusWalkover:
		return true
	default:
		return false
	}
}

// InProgressStatuses lists the codes the live updater keeps polling. Stable order so
// the selection query stays identical between sweeps.
func InProgressStatuses() []string {
	return []string{
		StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusExtraTime,
		StatusPenalties, StatusBreakTime, StatusLive,
	}
}

// AllowsTransition reports whether the live updater may overwrite `from` with `to`.
// A fixture never returns to NS once it has left it and never leaves a finished
// status. Rescheduled matches re-enter through the sync job's full-row upsert instead.
func AllowsTransition(from, to string) bool {
	from = NormalizeStatus(from)
	to = NormalizeStatus(to)
	if from == to {
		return true
	}
	if IsFinished(from) {
		return false
	}
	if !IsScheduled(from) && IsScheduled(to) {
		return false
	}
	return true
}
