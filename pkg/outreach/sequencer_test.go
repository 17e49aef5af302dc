package outreach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchline-inc/pitchline-engine/pkg/apperrors"
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

func message(body string) *models.OutreachMessage {
	return &models.OutreachMessage{Subject: "s", Body: body, SentAt: time.Now()}
}

func TestParseStage(t *testing.T) {
	for _, valid := range []string{"first", "follow_up", "second_follow_up"} {
		stage, err := ParseStage(valid)
		require.NoError(t, err)
		assert.Equal(t, Stage(valid), stage)
	}

	for _, invalid := range []string{"", "exhausted", "First", "followup", "third"} {
		_, err := ParseStage(invalid)
		assert.Error(t, err, "stage %q should not parse", invalid)
	}
}

func TestNextStage_Progression(t *testing.T) {
	client := &models.Client{ID: 1}
	assert.Equal(t, StageFirst, NextStage(client))

	client.FirstMessage = message("first")
	assert.Equal(t, StageFollowUp, NextStage(client))

	client.FollowUpMessage = message("follow up")
	assert.Equal(t, StageSecondFollowUp, NextStage(client))

	client.SecondFollowUpMessage = message("second follow up")
	assert.Equal(t, StageExhausted, NextStage(client))
}

func TestCheckTransition_InOrder(t *testing.T) {
	client := &models.Client{ID: 1}
	assert.NoError(t, CheckTransition(client, StageFirst))

	client.FirstMessage = message("first")
	assert.NoError(t, CheckTransition(client, StageFollowUp))

	client.FollowUpMessage = message("follow up")
	assert.NoError(t, CheckTransition(client, StageSecondFollowUp))
}

func TestCheckTransition_RejectsDoubleSend(t *testing.T) {
	client := &models.Client{ID: 1, FirstMessage: message("first")}

	err := CheckTransition(client, StageFirst)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func TestCheckTransition_RejectsSkippedStage(t *testing.T) {
	client := &models.Client{ID: 1}

	err := CheckTransition(client, StageSecondFollowUp)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func TestCheckTransition_RejectsWhenExhausted(t *testing.T) {
	client := &models.Client{
		ID:                    1,
		FirstMessage:          message("first"),
		FollowUpMessage:       message("follow up"),
		SecondFollowUpMessage: message("second follow up"),
	}

	for _, stage := range []Stage{StageFirst, StageFollowUp, StageSecondFollowUp} {
		err := CheckTransition(client, stage)
		assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	}
}
