package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bemdeps/internal/cli/testutil"
	logutil "github.com/leapstack-labs/bemdeps/internal/testutil"
)

func checkByID(t *testing.T, out *DoctorOutput, id string) HealthCheck {
	t.Helper()
	for _, c := range out.HealthChecks {
		if c.RuleID == id {
			return c
		}
	}
	t.Fatalf("check %s not found", id)
	return HealthCheck{}
}

func TestDoctorCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	loadProject(t, dir, "json")

	out, err := execute(t, NewDoctorCommand())
	require.NoError(t, err)

	var got DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, ProjectSummary{
		Source:      filepath.Join("pages", "index", "index.bemjson.js"),
		Levels:      2,
		Components:  4,
		Dirs:        4,
		Stylesheets: 3,
	}, got.Summary)

	assert.Equal(t, statusPass, checkByID(t, &got, "BD01").Status)
	assert.Equal(t, statusPass, checkByID(t, &got, "BD02").Status)

	resolved := checkByID(t, &got, "BD03")
	assert.Equal(t, statusWarn, resolved.Status)
	assert.Equal(t, []string{`block "footer" is not defined on any level`}, resolved.Details)

	sheets := checkByID(t, &got, "BD04")
	assert.Equal(t, statusWarn, sheets.Status)
	assert.Equal(t, []string{filepath.Join("common.blocks", "link") + " has no link.css"}, sheets.Details)

	assert.Equal(t, 2, got.IssueCount)
	assert.Equal(t, 90, got.Score)
	assert.Len(t, got.Recommendations, 2)
}

func TestDiagnose_UnreadableSource(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", "index", "index.bemjson.js"), []byte("[{ block: "), 0o600))
	cfg := loadProject(t, dir, "json")

	eng, err := createEngine(cfg, logutil.NewTestLogger(t))
	require.NoError(t, err)

	out := diagnose(context.Background(), eng)

	source := checkByID(t, out, "BD01")
	assert.Equal(t, statusError, source.Status)
	require.Len(t, source.Details, 1)
	assert.Equal(t, statusSkip, checkByID(t, out, "BD03").Status)
	assert.Equal(t, statusSkip, checkByID(t, out, "BD04").Status)
	assert.Equal(t, 50, out.Score)
	assert.Zero(t, out.Summary.Components)
}

func TestDiagnose_MissingLevel(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfg := loadProject(t, dir, "json")
	cfg.Levels = append(cfg.Levels, "touch.blocks")

	eng, err := createEngine(cfg, nil)
	require.NoError(t, err)

	levels := checkByID(t, diagnose(context.Background(), eng), "BD02")
	assert.Equal(t, statusWarn, levels.Status)
	assert.Equal(t, []string{"level touch.blocks does not exist"}, levels.Details)
}

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name           string
		checks         []HealthCheck
		componentCount int
		want           int
	}{
		{name: "no checks returns 100", componentCount: 10, want: 100},
		{
			name:           "all passing returns 100",
			checks:         []HealthCheck{{RuleID: "BD01", Status: statusPass}, {RuleID: "BD02", Status: statusPass}},
			componentCount: 10,
			want:           100,
		},
		{
			name:           "warnings reduce score",
			checks:         []HealthCheck{{RuleID: "BD03", Status: statusWarn, IssueCount: 2}},
			componentCount: 10,
			want:           90,
		},
		{
			name:           "more components means less impact per issue",
			checks:         []HealthCheck{{RuleID: "BD04", Status: statusWarn, IssueCount: 5}},
			componentCount: 200,
			want:           95,
		},
		{
			name:           "error costs half",
			checks:         []HealthCheck{{RuleID: "BD01", Status: statusError, IssueCount: 1}},
			componentCount: 0,
			want:           50,
		},
		{
			name:           "clamped at zero",
			checks:         []HealthCheck{{RuleID: "BD03", Status: statusWarn, IssueCount: 40}},
			componentCount: 3,
			want:           0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateHealthScore(tt.checks, tt.componentCount))
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	for _, id := range []string{"BD01", "BD02", "BD03", "BD04"} {
		assert.NotEmpty(t, getRecommendation(id), "expected recommendation for %s", id)
	}
	assert.Empty(t, getRecommendation("UNKNOWN"))
}

func TestRenderDoctor(t *testing.T) {
	out := &DoctorOutput{
		Summary: ProjectSummary{Source: "index.bemjson.js", Levels: 2, Components: 3},
		HealthChecks: []HealthCheck{
			{RuleID: "BD01", Name: "source-readable", Group: "source", Status: statusPass},
			{RuleID: "BD03", Name: "components-resolved", Group: "resolution", Status: statusWarn, IssueCount: 1, Details: []string{"block x"}},
		},
		Score:           95,
		Recommendations: []string{getRecommendation("BD03")},
		IssueCount:      1,
	}

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		require.NoError(t, renderDoctorText(tr.Renderer, out))
		assert.Contains(t, tr.Output(), "Health Score: 95/100")
		assert.Contains(t, tr.Output(), "Resolution")
		assert.Contains(t, tr.Output(), "BD03: components-resolved (1 issues)")
	})

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, renderDoctorMarkdown(tr.Renderer, out))
		assert.Contains(t, tr.Output(), "### Source")
		assert.Contains(t, tr.Output(), "- **[WARN]** BD03: components-resolved (1 issues)")
		assert.Contains(t, tr.Output(), "**95/100**")
		testutil.AssertValidMarkdown(t, tr.Output())
		testutil.AssertNoANSI(t, tr.Output())
	})
}
