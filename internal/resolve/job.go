package resolve

import (
	"fmt"
	"strings"
)

// JobInfo is the slice of a job the resolver needs, in account creation order.
type JobInfo struct {
	ID        string
	Name      string
	IsDefault bool
}

// JobChoice is the resolver's outcome. NeedsClarification is a legitimate
// terminal result: the resolver asks rather than guesses.
type JobChoice struct {
	JobID              string
	NeedsClarification bool
	Prompt             string
}

// Job decides which job an operation refers to when the model omitted an
// explicit id. Tiers, first match wins:
//
//  1. explicit id, used verbatim (ownership is the operation's problem)
//  2. zero jobs: ask, inviting the user to create one
//  3. exactly one job: auto-select
//  4. literal name or derived role keyword found in the message text
//  5. the flagged default job
//  6. ask, enumerating all jobs
func Job(explicitID string, jobs []JobInfo, message string) JobChoice {
	if explicitID != "" {
		return JobChoice{JobID: explicitID}
	}

	if len(jobs) == 0 {
		return JobChoice{
			NeedsClarification: true,
			Prompt:             "You don't have any jobs set up yet. Would you like to create one?",
		}
	}

	if len(jobs) == 1 {
		return JobChoice{JobID: jobs[0].ID}
	}

	lowerMessage := strings.ToLower(message)
	for _, job := range jobs {
		jobName := strings.ToLower(job.Name)
		if strings.Contains(lowerMessage, jobName) {
			return JobChoice{JobID: job.ID}
		}
		for _, keyword := range roleKeywords(jobName) {
			if strings.Contains(lowerMessage, keyword) {
				return JobChoice{JobID: job.ID}
			}
		}
	}

	for _, job := range jobs {
		if job.IsDefault {
			return JobChoice{JobID: job.ID}
		}
	}

	var options strings.Builder
	for i, job := range jobs {
		fmt.Fprintf(&options, "%d. %s", i+1, job.Name)
		if job.IsDefault {
			options.WriteString(" (default)")
		}
		options.WriteString("\n")
	}
	return JobChoice{
		NeedsClarification: true,
		Prompt:             fmt.Sprintf("Which job was this for?\n\n%s\nPlease specify the job name or number.", options.String()),
	}
}

// roleKeywords derives colloquial variants a user might say instead of the
// literal job name ("bartending" for a job named "Bartender").
func roleKeywords(jobName string) []string {
	var keywords []string
	if strings.Contains(jobName, "bartend") {
		keywords = append(keywords, "bartend", "bartending", "bar")
	}
	if strings.Contains(jobName, "server") || strings.Contains(jobName, "wait") {
		keywords = append(keywords, "server", "serving", "waitress", "waiter")
	}
	if strings.Contains(jobName, "barber") {
		keywords = append(keywords, "barber", "barbering", "haircut")
	}
	if strings.Contains(jobName, "hair") {
		keywords = append(keywords, "hair", "hairstylist", "stylist")
	}
	if strings.Contains(jobName, "nail") {
		keywords = append(keywords, "nail", "nails", "manicure")
	}
	if strings.Contains(jobName, "event") {
		keywords = append(keywords, "event", "events", "catering")
	}
	return keywords
}
