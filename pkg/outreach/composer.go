package outreach

import (
	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// BuildContext assembles the structured context handed to text generation.
// Pure data assembly: no network calls, no persistence. bestMatch must be the
// matching engine's first (cheapest) result; the composer never reorders.
//
// Prior message bodies are attached per stage so follow-ups can reference
// earlier emails without repeating them: the follow-up sees the first email,
// the second follow-up sees both.
func BuildContext(client *models.Client, bestMatch models.Property, nearbyPlaces []models.NearbyPlace, senderName string, stage Stage) models.PitchContext {
	pc := models.PitchContext{
		Client:       *client,
		BestMatch:    bestMatch,
		NearbyPlaces: nearbyPlaces,
		SenderName:   senderName,
	}

	switch stage {
	case StageFollowUp:
		if client.FirstMessage != nil {
			pc.FirstEmail = client.FirstMessage.Body
		}
	case StageSecondFollowUp:
		if client.FirstMessage != nil {
			pc.FirstEmail = client.FirstMessage.Body
		}
		if client.FollowUpMessage != nil {
			pc.FollowUpEmail = client.FollowUpMessage.Body
		}
	}

	return pc
}
