package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/forge-insights-tui/internal/version"
)

const shooterCSV = `event_type,session_id,user_id,client_ts,weapon_id,map_id,kills,deaths,session_length
session_start,s1,u1,100,,,,,
progression,s1,u1,110,rifle,dust,4,1,
progression,s1,u1,120,pistol,dust,2,2,
progression,s1,u1,130,rifle,port,0,1,
session_end,s1,u1,400,,,,,300
`

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FILE", "")
	t.Setenv("GOALS_PATH", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func dataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shooter.csv"), []byte(shooterCSV), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return dir
}

func TestVerticalsCmd(t *testing.T) {
	out, err := execute(t, "verticals", "--data-dir", dataDir(t))
	if err != nil {
		t.Fatalf("verticals failed: %v", err)
	}
	for _, want := range []string{"VERTICAL", "shooter", "csv", "No dataset for:", "puzzle"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestReportCmd(t *testing.T) {
	dir := dataDir(t)

	out, err := execute(t, "report", "-d", dir, "--plain", "--quiet", "shooter")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "Shooter dataset (5 rows") {
		t.Errorf("report should start with the dataset header, got:\n%s", out)
	}
	if !strings.Contains(out, "Goal:") {
		t.Errorf("report should list goals, got:\n%s", out)
	}

	all, err := execute(t, "report", "-d", dir, "-q")
	if err != nil {
		t.Fatalf("report without verticals failed: %v", err)
	}
	if !strings.Contains(all, "Shooter dataset") {
		t.Error("report without arguments should cover every dataset")
	}
}

func TestReportCmd_Errors(t *testing.T) {
	if _, err := execute(t, "report", "-d", t.TempDir(), "-q"); err == nil {
		t.Error("report on an empty directory should fail")
	}
	if _, err := execute(t, "report", "-d", dataDir(t), "-q", "racing"); err == nil {
		t.Error("report on a missing dataset should fail")
	}
}

func TestConvertCmd(t *testing.T) {
	src := filepath.Join(dataDir(t), "shooter.csv")
	dst := filepath.Join(t.TempDir(), "shooter.db")

	out, err := execute(t, "convert", src, dst)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "wrote 5 events") {
		t.Errorf("unexpected output %q", out)
	}

	listing, err := execute(t, "verticals", "-d", filepath.Dir(dst))
	if err != nil {
		t.Fatalf("verticals failed: %v", err)
	}
	if !strings.Contains(listing, "sqlite") {
		t.Errorf("converted dataset should be listed, got:\n%s", listing)
	}

	if _, err := execute(t, "convert", src, filepath.Join(t.TempDir(), "shooter.txt")); err == nil {
		t.Error("convert should reject a non-SQLite destination")
	}
	if _, err := execute(t, "convert", src); err == nil {
		t.Error("convert needs two arguments")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != version.Info() {
		t.Errorf("output = %q, want %q", out, version.Info())
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	if _, err := execute(t, "bogus"); err == nil {
		t.Error("unknown command should fail")
	}
}
