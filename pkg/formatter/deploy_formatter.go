package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"multicloud/pkg/provision"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// DeployFormatter renders deployment-related output for the terminal.
type DeployFormatter struct{}

func NewDeployFormatter() *DeployFormatter {
	return &DeployFormatter{}
}

// FormatTemplateMatrix renders all nine provider/type templates as a table.
func (f *DeployFormatter) FormatTemplateMatrix() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("PROVIDER", "TYPE", "KIND", "TEMPLATE")

	for _, tmpl := range provision.Templates() {
		t.Row(string(tmpl.Provider), tmpl.DeploymentType, string(tmpl.Kind), tmpl.ID)
	}

	return t.Render()
}

// FormatDeploySummary renders the outcome of a deployment pipeline run.
func (f *DeployFormatter) FormatDeploySummary(dc *provision.DeploymentConfig, tmpl provision.Template, manifestsApplied bool) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Deployed %s", dc.AppName)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Template:  %s\n", tmpl.ID))

	switch dc.Provider {
	case provision.AWS:
		sb.WriteString(fmt.Sprintf("  Region:    %s\n", dc.Region))
	case provision.Azure:
		sb.WriteString(fmt.Sprintf("  Location:  %s\n", dc.Location))
	case provision.GCP:
		sb.WriteString(fmt.Sprintf("  Project:   %s\n", dc.Project))
		sb.WriteString(fmt.Sprintf("  Region:    %s\n", dc.Region))
	}

	if manifestsApplied {
		sb.WriteString("  Manifests: workload and service applied\n")
	}

	return sb.String()
}

// FormatCheck renders a single doctor probe result.
func (f *DeployFormatter) FormatCheck(name string, ok bool, detail string) string {
	mark := successStyle.Render("ok")
	if !ok {
		mark = failureStyle.Render("failed")
	}
	line := fmt.Sprintf("%-24s %s", name, mark)
	if detail != "" {
		line += "  " + mutedStyle.Render(detail)
	}
	return line
}
