package flags

import "strings"

const (
	choiceSeparatorConstant = "|"
	choiceQuoteConstant     = "`"
)

// FormatChoiceUsage renders usage text such as "`<debug|info|WARN|error>` Override the log level."
// The default choice is upper-cased. Blank and repeated choices are dropped, case-insensitively.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayedChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]bool, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if len(normalizedChoice) == 0 || seenChoices[normalizedChoice] {
			continue
		}
		seenChoices[normalizedChoice] = true

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		displayedChoices = append(displayedChoices, trimmedChoice)
	}

	var usageBuilder strings.Builder
	usageBuilder.WriteString(choiceQuoteConstant + "<")
	usageBuilder.WriteString(strings.Join(displayedChoices, choiceSeparatorConstant))
	usageBuilder.WriteString(">" + choiceQuoteConstant)
	if trimmedDescription := strings.TrimSpace(description); len(trimmedDescription) > 0 {
		usageBuilder.WriteString(" ")
		usageBuilder.WriteString(trimmedDescription)
	}
	return usageBuilder.String()
}
