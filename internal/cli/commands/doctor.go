package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bemdeps/internal/cli/output"
	"github.com/leapstack-labs/bemdeps/internal/engine"
	"github.com/leapstack-labs/bemdeps/internal/levels"
)

// Check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
	statusSkip  = "skip"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project configuration for problems",
		Long: `Analyze the bemdeps project for configuration problems.

The doctor command checks that:
- the bemjson source can be read and parsed
- every configured level exists
- every referenced block is defined on at least one level
- every block directory carries its stylesheet

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  bemdeps doctor

  # Output as JSON
  bemdeps doctor -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains project-level statistics.
type ProjectSummary struct {
	Source      string `json:"source"`
	Levels      int    `json:"levels"`
	Components  int    `json:"components"`
	Dirs        int    `json:"dirs"`
	Stylesheets int    `json:"stylesheets"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error", "skip"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	out := diagnose(cmd.Context(), cc.Engine)

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, out)
	default:
		return renderDoctorText(r, out)
	}
}

// diagnose runs every check against the engine's project. Checks that depend
// on a readable source are skipped when the source check fails.
func diagnose(ctx context.Context, eng *engine.Engine) *DoctorOutput {
	baseDir := eng.BaseDir()
	summary := ProjectSummary{
		Source: relTo(baseDir, eng.SourcePath()),
		Levels: len(eng.LevelDirs()),
	}

	checks := []HealthCheck{checkLevels(baseDir, eng.LevelDirs())}

	source := HealthCheck{RuleID: "BD01", Name: "source-readable", Group: "source", Status: statusPass}
	components, err := eng.Components(ctx)
	if err != nil {
		source.Status = statusError
		source.IssueCount = 1
		source.Details = []string{err.Error()}
		checks = append(checks, source,
			HealthCheck{RuleID: "BD03", Name: "components-resolved", Group: "resolution", Status: statusSkip},
			HealthCheck{RuleID: "BD04", Name: "stylesheets-present", Group: "resolution", Status: statusSkip},
		)
		return finishDoctor(summary, checks)
	}
	checks = append(checks, source)
	summary.Components = len(components)

	result, err := eng.Resolve(ctx)
	if err != nil {
		checks = append(checks,
			HealthCheck{RuleID: "BD03", Name: "components-resolved", Group: "resolution", Status: statusError, IssueCount: 1, Details: []string{err.Error()}},
			HealthCheck{RuleID: "BD04", Name: "stylesheets-present", Group: "resolution", Status: statusSkip},
		)
		return finishDoctor(summary, checks)
	}
	summary.Dirs = len(result.Dirs)
	summary.Stylesheets = len(result.CSS)

	found := make(map[string]bool, len(result.Dirs))
	for _, d := range result.Dirs {
		found[filepath.Base(d)] = true
	}
	resolved := HealthCheck{RuleID: "BD03", Name: "components-resolved", Group: "resolution"}
	for _, c := range components {
		if !found[c] {
			resolved.Details = append(resolved.Details, fmt.Sprintf("block %q is not defined on any level", c))
		}
	}
	checks = append(checks, withIssues(resolved, statusWarn))

	sheets := make(map[string]bool, len(result.CSS))
	for _, c := range result.CSS {
		sheets[c] = true
	}
	styles := HealthCheck{RuleID: "BD04", Name: "stylesheets-present", Group: "resolution"}
	for _, d := range result.Dirs {
		if sheet := levels.StylesheetPath(d); !sheets[sheet] {
			styles.Details = append(styles.Details, fmt.Sprintf("%s has no %s", relTo(baseDir, d), filepath.Base(sheet)))
		}
	}
	checks = append(checks, withIssues(styles, statusWarn))

	return finishDoctor(summary, checks)
}

func checkLevels(baseDir string, dirs []string) HealthCheck {
	check := HealthCheck{RuleID: "BD02", Name: "levels-present", Group: "levels"}
	for _, d := range dirs {
		info, err := os.Stat(d)
		switch {
		case err != nil:
			check.Details = append(check.Details, fmt.Sprintf("level %s does not exist", relTo(baseDir, d)))
		case !info.IsDir():
			check.Details = append(check.Details, fmt.Sprintf("level %s is not a directory", relTo(baseDir, d)))
		}
	}
	return withIssues(check, statusWarn)
}

// withIssues sets the status from the collected details.
func withIssues(check HealthCheck, failStatus string) HealthCheck {
	check.IssueCount = len(check.Details)
	check.Status = statusPass
	if check.IssueCount > 0 {
		check.Status = failStatus
	}
	return check
}

func finishDoctor(summary ProjectSummary, checks []HealthCheck) *DoctorOutput {
	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}
	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    sortChecks(checks),
		Score:           calculateHealthScore(checks, summary.Components),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

// sortChecks orders checks by rule ID, which keeps each group together.
func sortChecks(checks []HealthCheck) []HealthCheck {
	out := slices.Clone(checks)
	slices.SortFunc(out, func(a, b HealthCheck) int {
		return strings.Compare(a.RuleID, b.RuleID)
	})
	return out
}

// calculateHealthScore computes a health score from 0-100.
// With more components, each individual issue has less impact.
func calculateHealthScore(checks []HealthCheck, componentCount int) int {
	score := 100.0

	basePenalty := 5.0
	if componentCount > 10 {
		basePenalty = 3.0
	}
	if componentCount > 50 {
		basePenalty = 2.0
	}
	if componentCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case statusError:
			score -= 50 // an unreadable source resolves nothing
		case statusWarn:
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	return int(max(0, min(100, score)))
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		if rec := getRecommendation(check.RuleID); rec != "" {
			recommendations = append(recommendations, rec)
		}
	}
	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "BD01":
		return "Fix the bemjson source path (bemjson_src or --src) or its syntax"
	case "BD02":
		return "Create the missing level directories or remove them from levels"
	case "BD03":
		return "Add a directory for each undefined block to one of the levels"
	case "BD04":
		return "Add a <block>.css stylesheet to block directories that need styles"
	default:
		return ""
	}
}

func relTo(baseDir, path string) string {
	if rel, err := filepath.Rel(baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("bemdeps Project Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   Source: %s\n", out.Summary.Source)
	r.Printf("   Levels: %d | Blocks: %d | Directories: %d | Stylesheets: %d\n",
		out.Summary.Levels, out.Summary.Components, out.Summary.Dirs, out.Summary.Stylesheets)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case statusWarn:
			icon = styles.Warning.Render("!")
		case statusError:
			icon = styles.StatusFailed.String()
		case statusSkip:
			icon = styles.StatusSkipped.String()
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# bemdeps Project Health Report")
	r.Println("")

	r.Println("## Project Summary")
	r.Println("")
	r.Println(output.FormatKeyValue("Source", output.FormatCode(out.Summary.Source)))
	r.Println(output.FormatKeyValue("Levels", fmt.Sprint(out.Summary.Levels)))
	r.Println(output.FormatKeyValue("Blocks", fmt.Sprint(out.Summary.Components)))
	r.Println(output.FormatKeyValue("Directories", fmt.Sprint(out.Summary.Dirs)))
	r.Println(output.FormatKeyValue("Stylesheets", fmt.Sprint(out.Summary.Stylesheets)))
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		r.Printf("- **[%s]** %s: %s", strings.ToUpper(check.Status), check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
