package ai

import (
	"fmt"
	"strings"

	"project-board-api/internal/models"
)

// createdLayout mirrors a short month/day/year date.
const createdLayout = "1/2/2006"

func summaryPrompt(project models.Project, tasks []models.Task, stats models.TaskStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project Name: %s\n", project.Name)
	fmt.Fprintf(&b, "Description: %s\n\n", project.Description)
	b.WriteString("Tasks Overview:\n")
	fmt.Fprintf(&b, "- Total: %d\n", stats.Total)
	fmt.Fprintf(&b, "- To Do: %d\n", stats.Todo)
	fmt.Fprintf(&b, "- In Progress: %d\n", stats.InProgress)
	fmt.Fprintf(&b, "- Done: %d\n\n", stats.Done)
	b.WriteString("Detailed Tasks:\n")
	for i, t := range tasks {
		fmt.Fprintf(&b, "%d. %s (%s) - %s\n", i+1, t.Title, t.Status, t.Description)
	}
	taskContext := strings.TrimSpace(b.String())

	return fmt.Sprintf(`You are an expert project management assistant.
Analyze the project below and provide a clear, professional summary.

%s

Please include:
1. Overall project progress and current health
2. Key completed milestones
3. Ongoing focus areas
4. Next actionable steps

Write it in 3-4 concise paragraphs.
`, taskContext)
}

func askPrompt(project models.Project, tasks []models.Task, question string) string {
	blocks := make([]string, 0, len(tasks))
	for i, t := range tasks {
		blocks = append(blocks, fmt.Sprintf("Task %d:\n- Title: %s\n- Description: %s\n- Status: %s\n- Created: %s\n",
			i+1, t.Title, t.Description, t.Status, t.CreatedAt.Format(createdLayout)))
	}

	return fmt.Sprintf(`You are a helpful AI project assistant.
Here's the project data:

Project: %s
Description: %s

%s
User question: "%s"

Answer accurately and concisely based on the above context.
If you don't have enough information, say so politely.
`, project.Name, project.Description, strings.Join(blocks, "\n"), question)
}
