package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/spf13/cobra"
)

var commitTypes = []string{"feat", "fix", "docs", "refactor", "test", "perf", "build", "ci", "chore"}

// commitScopes follow the package layout; changelog sections are grouped by them.
var commitScopes = []string{"driver", "i2c", "adapter", "sim", "config", "cli", "dev"}

var subjectPattern = regexp.MustCompile(`^([a-z]+)(?:\(([a-z0-9]+)\))?!?: \S`)

var errBadSubject = errors.New("not a conventional commit subject")

// checkSubject validates the first line of a commit message.
func checkSubject(subject string) error {
	m := subjectPattern.FindStringSubmatch(subject)
	if m == nil {
		return fmt.Errorf("%w: %q", errBadSubject, subject)
	}
	if !slices.Contains(commitTypes, m[1]) {
		return fmt.Errorf("%w: unknown type %q", errBadSubject, m[1])
	}
	if m[2] != "" && !slices.Contains(commitScopes, m[2]) {
		return fmt.Errorf("%w: unknown scope %q, expected one of %v", errBadSubject, m[2], commitScopes)
	}
	return nil
}

// checkHistory validates the subjects of the last n commits reachable from HEAD.
func checkHistory(path string, n int) ([]error, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("could not open git repo: %w", err)
	}
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("could not read git log: %w", err)
	}
	defer iter.Close()
	var problems []error
	seen := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if seen == n {
			return storer.ErrStop
		}
		seen++
		subject, _, _ := strings.Cut(c.Message, "\n")
		if err := checkSubject(subject); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", c.Hash.String()[:7], err))
		}
		return nil
	})
	return problems, err
}

func ChangelogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Generate or update CHANGELOG.md from git history",
		Long: fmt.Sprintf(`Generate CHANGELOG.md using git-chglog based on conventional commits.

This command requires git-chglog to be installed:
  go install github.com/git-chglog/git-chglog/cmd/git-chglog@latest

Commits should follow the format:
  <type>[(scope)]: <description>

Types:  %s
Scopes: %s

Examples:
  # Check the last 50 commit subjects without generating anything
  dev changelog --check 50

  # Generate for next version
  dev changelog --next v1.2.0`, strings.Join(commitTypes, ", "), strings.Join(commitScopes, ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := cmd.Flags().GetInt("check")
			if err != nil {
				return fmt.Errorf("could not get check flag: %w", err)
			}
			if check > 0 {
				problems, err := checkHistory(".", check)
				if err != nil {
					return err
				}
				for _, p := range problems {
					slog.Warn("commit subject", "problem", p)
				}
				if len(problems) > 0 {
					return fmt.Errorf("%d of the last %d commits would be left out of the changelog", len(problems), check)
				}
				slog.Info("commit subjects ok", "commits", check)
				return nil
			}

			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("could not get output flag: %w", err)
			}
			nextVersion, err := cmd.Flags().GetString("next")
			if err != nil {
				return fmt.Errorf("could not get next flag: %w", err)
			}
			tag, err := cmd.Flags().GetString("tag")
			if err != nil {
				return fmt.Errorf("could not get tag flag: %w", err)
			}

			if _, err := exec.LookPath("git-chglog"); err != nil {
				return fmt.Errorf("git-chglog not installed: %w", err)
			}
			chglogArgs := []string{"--output", output}
			if nextVersion != "" {
				chglogArgs = append(chglogArgs, "--next-tag", nextVersion)
			}
			if tag != "" {
				chglogArgs = append(chglogArgs, tag)
			}
			slog.Info("running git-chglog", "args", chglogArgs)
			gitChglog := exec.Command("git-chglog", chglogArgs...)
			gitChglog.Stdout = os.Stdout
			gitChglog.Stderr = os.Stderr
			if err := gitChglog.Run(); err != nil {
				return fmt.Errorf("failed to generate changelog: %w", err)
			}
			slog.Info("changelog generated", "output", output)
			return nil
		},
	}

	cmd.Flags().String("next", "", "Next version tag (e.g., v1.2.0)")
	cmd.Flags().String("output", "CHANGELOG.md", "Output file path")
	cmd.Flags().String("tag", "", "Generate changelog for specific tag")
	cmd.Flags().Int("check", 0, "only validate the subjects of the last N commits")

	return cmd
}
