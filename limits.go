package twconfig

// limitIssues applies max-issues-per-rule and max-same-issues constraints
func limitIssues(issues []Issue, config ValidateConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-rule
	if config.MaxIssuesPerRule > 0 {
		issues = limitPerRule(issues, config.MaxIssuesPerRule)
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	truncatedCount := originalCount - len(issues)
	return issues, truncatedCount
}

// limitPerRule keeps the first limit issues of every rule
func limitPerRule(issues []Issue, limit int) []Issue {
	ruleCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if ruleCounts[issue.FromRule] < limit {
			filtered = append(filtered, issue)
			ruleCounts[issue.FromRule]++
		}
	}

	return filtered
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
