package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pitchline-inc/pitchline-engine/pkg/models"
)

// InitialPitchSystemPrompt drives the first-contact email.
const InitialPitchSystemPrompt = `You are a highly skilled real estate agent. Your task is to craft a personalized email to pitch a property to a potential client. You will be provided with the client's details and a list of nearby places that would be of interest to the client. Your goal is to create a compelling and persuasive email that highlights the property's features and the benefits of the nearby places, making the client eager to make a deal.
Use only those nearby places that firstly seem relevant to their type as defined in the nearby places json.

IMPORTANT INSTRUCTIONS:
1. Use the client's details to tailor the email specifically to their needs and preferences.
2. Highlight the property's key features and how they align with the client's requirements.
3. Emphasize the nearby places and explain why they would be valuable to the client.
4. Maintain a professional and persuasive tone throughout the email.
5. Ensure the email is concise, clear, and free of any hallucinations or assumptions beyond the provided data.

OUTPUT FORMAT:
Provide a single email message that includes an introductory greeting, a personalized pitch, and a courteous closing statement.
The email should be in JSON format with keys 'subject' and 'body'.`

// FollowUpPitchSystemPrompt drives follow-up and second follow-up emails.
const FollowUpPitchSystemPrompt = `You are a highly skilled real estate agent crafting a follow-up email. Your task is to create a personalized follow-up email that builds upon previous communications while highlighting new or emphasized property features and nearby amenities.

IMPORTANT INSTRUCTIONS:
1. Reference previous communications naturally but don't repeat the same points
2. Introduce new angles or benefits not previously emphasized
3. Show awareness of the client's specific needs and preferences
4. Maintain professional persistence without being pushy
5. Include a clear call to action
6. Focus on value propositions most relevant to the client's profile
7. Make strategic use of nearby amenities information

Use only verified information provided in the input. Do not make assumptions or include speculative details.

OUTPUT FORMAT:
Provide a JSON response with 'subject' and 'body' keys where:
- subject: A compelling email subject line
- body: The complete email message including greeting`

// BuildInitialPitchPrompt renders the full pitch context for the first email.
// Every field the prompt contract requires appears verbatim.
func BuildInitialPitchPrompt(pc models.PitchContext) string {
	var b strings.Builder
	writeSharedContext(&b, pc)
	fmt.Fprintf(&b, "\nEmail Sender Name: %s\n", pc.SenderName)
	return b.String()
}

// BuildFollowUpPitchPrompt renders the pitch context plus the exact prior
// message bodies, so the follow-up can reference them without repetition.
func BuildFollowUpPitchPrompt(pc models.PitchContext) string {
	var b strings.Builder
	writeSharedContext(&b, pc)
	fmt.Fprintf(&b, "\nPrevious Communications:\nFirst Email: %s\nFollow-up Email: %s\n", pc.FirstEmail, pc.FollowUpEmail)
	fmt.Fprintf(&b, "\nEmail Sender Name: %s\n", pc.SenderName)
	return b.String()
}

func writeSharedContext(b *strings.Builder, pc models.PitchContext) {
	c := pc.Client
	p := pc.BestMatch

	fmt.Fprintf(b, `Client Details:
Name: %s
Email: %s
Preferred Cities: %s
Number of Rooms: %d
Number of Garages: %d
Basement Needed: %t
Number of Kids Under 10: %d
Number of Kids Under 18: %d
Type of Home Preferred: %s
Race: %s
Maximum Budget: %.0f

Property Details:
City: %s
Number of Rooms: %d
Number of Garages: %d
Basement: %t
Type of Home: %s
Address: %s
Cost: %.0f

Nearby Places:
%s
`,
		c.Name,
		c.Email,
		strings.Join(c.PreferredCities, ", "),
		c.MinRooms,
		c.MinGarages,
		c.BasementNeeded,
		c.KidsUnder10,
		c.KidsUnder18,
		c.HomeType,
		c.Ethnicity,
		c.MaxBudget,
		p.City,
		p.Rooms,
		p.Garages,
		p.Basement,
		p.HomeType,
		p.Address,
		p.Cost,
		renderNearbyPlaces(pc.NearbyPlaces),
	)
}

// renderNearbyPlaces serializes the enrichment list as JSON so the model can
// key off the tag of each place.
func renderNearbyPlaces(places []models.NearbyPlace) string {
	if len(places) == 0 {
		return "[]"
	}
	data, err := json.Marshal(places)
	if err != nil {
		return "[]"
	}
	return string(data)
}
