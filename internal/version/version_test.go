package version

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestFakeGitProcess stands in for git when re-executed by fakeGit.
func TestFakeGitProcess(t *testing.T) {
	if os.Getenv("FORGE_FAKE_GIT") != "1" {
		return
	}
	if d, err := time.ParseDuration(os.Getenv("FORGE_FAKE_GIT_SLEEP")); err == nil {
		time.Sleep(d)
	}

	args := strings.Join(os.Args, " ")
	var out string
	switch {
	case strings.Contains(args, "--tags"):
		out = os.Getenv("FORGE_FAKE_GIT_TAG")
	case strings.Contains(args, "--always"):
		out = os.Getenv("FORGE_FAKE_GIT_COMMIT")
	}
	if out == "" {
		os.Exit(128)
	}
	os.Stdout.WriteString(out + "\n")
	os.Exit(0)
}

// fakeGit routes git invocations to TestFakeGitProcess. Empty outputs make
// the matching git call fail.
func fakeGit(t *testing.T, tag, commit, sleep string) {
	t.Helper()
	orig := execCommand
	t.Cleanup(func() {
		execCommand = orig
		Reset()
	})
	Reset()

	execCommand = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestFakeGitProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"FORGE_FAKE_GIT=1",
			"FORGE_FAKE_GIT_TAG=" + tag,
			"FORGE_FAKE_GIT_COMMIT=" + commit,
			"FORGE_FAKE_GIT_SLEEP=" + sleep,
		}
		return cmd
	}
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name        string
		tag         string
		commit      string
		wantVersion string
		wantCommit  string
	}{
		{"tagged", "v1.4.0", "3f2a9c1-dirty", "1.4.0", "3f2a9c1-dirty"},
		{"tag without prefix", "0.9.2", "3f2a9c1", "0.9.2", "3f2a9c1"},
		{"no tags", "", "3f2a9c1", "dev", "3f2a9c1"},
		{"not a repository", "", "", "dev", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeGit(t, tt.tag, tt.commit, "")

			if got := GetVersion(); got != tt.wantVersion {
				t.Errorf("GetVersion() = %q, want %q", got, tt.wantVersion)
			}
			if got := GetCommit(); got != tt.wantCommit {
				t.Errorf("GetCommit() = %q, want %q", got, tt.wantCommit)
			}

			want := AppName + " " + tt.wantVersion + " (commit: " + tt.wantCommit + ", built: "
			if info := Info(); !strings.HasPrefix(info, want) {
				t.Errorf("Info() = %q, want prefix %q", info, want)
			}
		})
	}
}

func TestInfo_LinkerValuesWin(t *testing.T) {
	orig := execCommand
	t.Cleanup(func() {
		execCommand = orig
		Reset()
	})
	Reset()
	execCommand = func(context.Context, string, ...string) *exec.Cmd {
		t.Error("git should not run when build metadata is set")
		return exec.Command("false")
	}
	Version, Commit, Date = "2.0.0", "feedbee", "2026-01-02"

	if got := Info(); !strings.HasPrefix(got, "forge-insights 2.0.0 (commit: feedbee, built: 2026-01-02,") {
		t.Errorf("Info() = %q", got)
	}
}

func TestRunGit_Timeout(t *testing.T) {
	fakeGit(t, "v1.0.0", "abc", "10s")
	origTimeout := gitTimeout
	gitTimeout = 100 * time.Millisecond
	t.Cleanup(func() { gitTimeout = origTimeout })

	start := time.Now()
	if _, err := runGit("describe", "--tags", "--abbrev=0"); err == nil {
		t.Error("runGit should fail when git outlives the timeout")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("runGit took %v, the timeout did not stop git", elapsed)
	}
	if got := getGitVersion(); got != "dev" {
		t.Errorf("getGitVersion() = %q, want dev after a timeout", got)
	}
}

func TestGetDate(t *testing.T) {
	fakeGit(t, "", "", "")

	if _, err := time.Parse("2006-01-02", GetDate()); err != nil {
		t.Errorf("GetDate() = %q is not a date: %v", GetDate(), err)
	}
}
