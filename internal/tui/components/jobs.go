package components

import (
	"fmt"
	"strings"

	"github.com/yourusername/backtest-console/internal/models"
)

// RenderJobPanel renders the monitoring view for one watched job
func RenderJobPanel(jobID string, job *models.Job) string {
	var content strings.Builder

	content.WriteString("Job " + jobID + "\n\n")

	if job == nil {
		content.WriteString("Waiting for first status update...\n")
		return boxStyle.Render(content.String())
	}

	content.WriteString(fmt.Sprintf("%s  %s\n", labelStyle.Render("Status:  "), string(job.Status)))
	content.WriteString(fmt.Sprintf("%s  %s\n", labelStyle.Render("Progress:"), renderProgressBar(job.Progress, 30)))
	if job.Error != "" {
		content.WriteString(fmt.Sprintf("%s  %s\n", labelStyle.Render("Error:   "), job.Error))
	}
	if job.Status.IsTerminal() {
		content.WriteString("\nFinished. Press esc to review results.\n")
	}

	return boxStyle.Render(content.String())
}

func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]" +
		fmt.Sprintf(" %3.0f%%", progress*100)
}
