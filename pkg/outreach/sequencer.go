// Package outreach holds the per-client outreach state machine and the
// context assembly handed to text generation.
package outreach

import (
	"fmt"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// Stage identifies one step of the outreach sequence.
type Stage string

const (
	StageFirst          Stage = "first"
	StageFollowUp       Stage = "follow_up"
	StageSecondFollowUp Stage = "second_follow_up"

	// StageExhausted means all three messages were sent. Outreach is capped
	// at three messages per client; this is a fixed policy, not configurable.
	StageExhausted Stage = "exhausted"
)

// ParseStage converts the wire form of a stage into a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageFirst, StageFollowUp, StageSecondFollowUp:
		return Stage(s), nil
	default:
		return "", fmt.Errorf("unknown outreach stage %q", s)
	}
}

// NextStage returns the stage the client is eligible for next. It is a pure
// function of slot presence: the first empty slot in stage order wins, and a
// client with all three slots filled is exhausted.
func NextStage(client *models.Client) Stage {
	switch {
	case client.FirstMessage == nil:
		return StageFirst
	case client.FollowUpMessage == nil:
		return StageFollowUp
	case client.SecondFollowUpMessage == nil:
		return StageSecondFollowUp
	default:
		return StageExhausted
	}
}

// CheckTransition verifies that recording a send for stage is legal given the
// client's current slots. Sends must advance strictly in order, and nothing
// may be recorded once the sequence is exhausted. A mismatch means a
// double-send (or an out-of-order send) and is an error, never a silent
// overwrite.
func CheckTransition(client *models.Client, stage Stage) error {
	expected := NextStage(client)
	if expected == StageExhausted {
		return fmt.Errorf("client %d outreach exhausted: %w", client.ID, apperrors.ErrIllegalTransition)
	}
	if stage != expected {
		return fmt.Errorf("client %d expects stage %s, got %s: %w",
			client.ID, expected, stage, apperrors.ErrIllegalTransition)
	}
	return nil
}
