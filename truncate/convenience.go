package truncate

// End truncates text from the end with an ellipsis.
func End(text string, maxLen int) string {
	result, _ := NewFromEnd().Truncate(text, maxLen)
	return result
}

// Middle truncates text from the middle with an ellipsis.
func Middle(text string, maxLen int) string {
	result, _ := NewFromMiddle().Truncate(text, maxLen)
	return result
}

// Start truncates text from the start with an ellipsis.
func Start(text string, maxLen int) string {
	result, _ := NewFromStart().Truncate(text, maxLen)
	return result
}
