package llm

import (
	"fmt"
	"strings"
	"time"

	"tasknest/backend/types"
)

// BuildScorePrompt embeds the candidate task and the user's current active
// tasks into a prompt that demands a bare {"score": n} object.
func BuildScorePrompt(candidate types.TaskInput, activeTasks []types.Task) string {
	existingTasks := "The user has no other active tasks."
	if len(activeTasks) > 0 {
		lines := make([]string, 0, len(activeTasks))
		for _, task := range activeTasks {
			lines = append(lines, fmt.Sprintf("- Title: %q, Priority: %s, Current Score: %d",
				task.Title, task.PriorityLabel, task.PriorityScore))
		}
		existingTasks = strings.Join(lines, "\n")
	}

	description := candidate.Description
	if description == "" {
		description = "No description."
	}
	priority := candidate.PriorityLabel
	if priority == "" {
		priority = "Not set."
	}
	deadline := "No deadline."
	if candidate.Deadline != nil && *candidate.Deadline != "" {
		deadline = *candidate.Deadline
	}

	return fmt.Sprintf(`Analyze the new task in the context of the user's existing tasks.

**Existing Tasks:**
%s

**New Task:**
- Title: %s
- Description: %s
- User-Assigned Priority: %s
- Deadline: %s

Based on this analysis, provide a numerical priority score from 1 to 100 for the new task.
Your response MUST be a JSON object containing a single key "score". Do not include any other text, explanation, or markdown.

Example response:
{"score": 92}

Ensure that the response is strictly a JSON object with no additional text.
If you cannot determine an appropriate score based on the provided information, respond with a score of 50 for medium priority tasks, 85 for high priority tasks, and 20 for low priority tasks.`,
		existingTasks, candidate.Title, description, priority, deadline)
}

// BuildSynthesisPrompt embeds the current date plus the serialized active
// tasks and recent contexts, with the deduplication and date-resolution
// rules the model must follow. The date anchors relative-date phrases like
// "this Saturday".
func BuildSynthesisPrompt(today time.Time, tasksJSON, contextsJSON string) string {
	return fmt.Sprintf(`You are a hyper-intelligent and meticulous task creation assistant. Your purpose is to analyze a user's unstructured notes and messages (Contexts) and compare them against their structured Existing Tasks to identify and create new, actionable tasks. You must be very careful to avoid creating duplicate or outdated tasks.

Today's Date: %s

**Primary Directive:**
Analyze the Contexts to Analyze section. For each context, decide if a new task should be created. A new task is ONLY created if it's a new, actionable item that is NOT already covered by an Existing Task (regardless of its status) and is NOT for an event that has already passed.

**Rules for Task Creation:**
1.  **Check for Duplicates (Crucial):** Before creating a task, meticulously check the Existing Tasks. If a task with a similar title or description already exists (even if 'Completed'), do NOT create a new one.
2.  **Analyze Dates Carefully:** Use "Today's Date" as a reference. Do not create tasks for events that are clearly in the past.
3.  **Infer All Fields:** For each new task, you must infer a title, description, category (e.g., Work, Personal, Health), priority_label ('High', 'Medium', or 'Low'), and a deadline.
4.  **Calculate Deadlines (Crucial):**
    -   If a relative date is mentioned (e.g., "next Friday", "tomorrow"), calculate the absolute date and format it as 'YYYY-MM-DDTHH:MM:SSZ'.
    -   **Day of the Week Logic:** When a day of the week (e.g., "Saturday", "Monday") is mentioned without the word "next", assume it refers to the **nearest upcoming** instance of that day.
    -   **Example:** If today is Friday, July 4th, a task for "Saturday" should have a deadline of Saturday, July 5th. A task for "next Friday" would be July 11th.
    -   If no time is mentioned, use a sensible default like '17:00:00'. If no deadline is implied, the deadline must be null.
5.  **Strict JSON Output:** Your entire response MUST be a single JSON array []. The array will contain zero or more task objects. Do NOT include any text, explanation, or markdown before or after the JSON array.

---
**Input Data:**

**Existing Tasks:**
`+"```json\n%s\n```"+`

**Contexts to Analyze:**
`+"```json\n%s\n```"+`

---
**Your JSON Response (must be only the array):**`,
		today.Format("Monday, 02/01/2006"), tasksJSON, contextsJSON)
}
