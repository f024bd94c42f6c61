// Package vcs reads commit and tag facts from a local git checkout.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/alexanderramin/questgame/internal/engine"
)

// DefaultTimeout bounds each git invocation.
const DefaultTimeout = 10 * time.Second

// fallbackWindow is how many commits are read on the first sync.
const fallbackWindow = 10

var (
	// ErrNotRepository is returned when the working directory is not a git
	// checkout or git is not installed.
	ErrNotRepository = errors.New("not a git repository")

	// ErrUnknownLastSeen is returned when the remembered hash cannot be
	// resolved (rebase, new clone). Nothing is rewarded.
	ErrUnknownLastSeen = errors.New("last synced commit not found")
)

// Runner executes git with the given arguments and returns stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary in Dir.
type ExecRunner struct {
	Dir     string
	Timeout time.Duration
}

func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: git executable not found", ErrNotRepository)
		}
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, r.Dir)
		}
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
	}
	return stdout.Bytes(), nil
}

// Git reports commits since a given hash and whether HEAD carries a tag.
type Git struct {
	runner Runner
}

// NewGit creates a Git collaborator for the checkout at dir.
func NewGit(dir string) *Git {
	return &Git{runner: ExecRunner{Dir: dir}}
}

// NewGitWithRunner creates a Git collaborator backed by r.
func NewGitWithRunner(r Runner) *Git {
	return &Git{runner: r}
}

// Facts returns the commits after lastSeen (newest first) and whether a tag
// points at HEAD. An empty lastSeen reads the most recent commits; a
// lastSeen git cannot resolve fails with ErrUnknownLastSeen.
func (g *Git) Facts(ctx context.Context, lastSeen string) (engine.SyncFacts, error) {
	var facts engine.SyncFacts

	commits, err := g.commitsSince(ctx, lastSeen)
	if err != nil {
		return facts, err
	}
	facts.Commits = commits

	out, err := g.runner.Run(ctx, "tag", "--points-at", "HEAD")
	if err != nil {
		return facts, fmt.Errorf("reading tags at HEAD: %w", err)
	}
	facts.TagAtHead = strings.TrimSpace(string(out)) != ""
	return facts, nil
}

func (g *Git) commitsSince(ctx context.Context, lastSeen string) ([]engine.Commit, error) {
	const format = "--pretty=format:%H|%s"

	if lastSeen != "" {
		out, err := g.runner.Run(ctx, "log", lastSeen+"..HEAD", format)
		if err == nil {
			return ParseLog(out), nil
		}
		if errors.Is(err, ErrNotRepository) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownLastSeen, lastSeen, err)
	}

	out, err := g.runner.Run(ctx, "log", fmt.Sprintf("-%d", fallbackWindow), format)
	if err != nil {
		return nil, fmt.Errorf("reading git log: %w", err)
	}
	return ParseLog(out), nil
}

// ParseLog parses "hash|subject" lines. Blank and malformed lines are skipped.
func ParseLog(out []byte) []engine.Commit {
	var commits []engine.Commit
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, subject, _ := strings.Cut(line, "|")
		if hash == "" {
			continue
		}
		commits = append(commits, engine.Commit{Hash: hash, Subject: subject})
	}
	return commits
}
