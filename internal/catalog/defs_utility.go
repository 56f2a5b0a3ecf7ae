package catalog

func utilityOps() []Operation {
	return []Operation{
		{
			Name:        "get_current_time",
			Description: "Get the current local time. Use this when the user asks 'what time is it?' or similar.",
			Family:      FamilyUtility,
			Params:      map[string]Param{},
		},
		{
			Name:        "send_feature_request",
			Description: "Send a feature request or idea to the development team. Use when the user suggests a feature or agrees to submit an unfulfillable request as a suggestion.",
			Family:      FamilyUtility,
			Params: map[string]Param{
				"idea":     required(str("The feature idea or request. Be descriptive: what they want and why.")),
				"category": enum(str("Category of the request"), "new_feature", "improvement", "bug_report", "integration", "other"),
			},
		},
	}
}
