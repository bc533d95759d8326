package respond

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/restyhq/resty/core"
)

// buildInstructions assembles the generation system prompt. Only the
// projected candidate set is embedded, never the full table, so the prompt
// stays token-bounded regardless of the table size.
func buildInstructions(criteria core.Criteria, candidates []core.RestaurantSummary) string {
	criteriaJSON, _ := json.MarshalIndent(criteria, "", "  ")
	candidatesJSON, _ := json.MarshalIndent(candidates, "", "  ")

	var sb strings.Builder
	sb.WriteString("You are Resty, an AI restaurant concierge for London. Your job is to help users find restaurants based on their preferences. Use British English in your responses.\n\n")
	sb.WriteString("These criteria have been extracted from the conversation so far:\n")
	sb.Write(criteriaJSON)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Here are %d real restaurants from our database that match the criteria:\n", len(candidates))
	sb.Write(candidatesJSON)
	sb.WriteString(`

Your task:
1. Recommend the real London restaurants listed above
2. Present all recommendations as a bullet point list (not numbered)
3. For each restaurant, give the name and a brief one-sentence description
4. Be conversational and engaging, using British English
5. If the user has not given enough criteria yet, ask follow-up questions about their London dining preferences

Format your response like this:

"Here are some restaurants in London that match your criteria:
• [Restaurant Name] - [Brief description]
• [Restaurant Name] - [Brief description]"

IMPORTANT: ONLY recommend restaurants from the provided list. DO NOT make up or suggest any restaurants that are not in the data above.`)
	return sb.String()
}
