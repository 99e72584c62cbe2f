package cmd

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSubject(t *testing.T) {
	tests := []struct {
		subject string
		valid   bool
	}{
		{"fix(driver): stop retrying after the last read", true},
		{"feat(adapter): repeated start reads", true},
		{"feat(cli)!: drop the -v alias", true},
		{"docs: datasheet link", true},
		{"fix(firmware): something", false},
		{"update stuff", false},
		{"wip(driver): heater", false},
		{"fix(driver):missing space", false},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			err := checkSubject(tt.subject)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errBadSubject)
			}
		})
	}
}

func TestCheckHistory(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	for _, msg := range []string{"oops", "feat(sim): fault injection\n\nbody", "fix(i2c): short reads"} {
		_, err := wt.Commit(msg, &git.CommitOptions{
			AllowEmptyCommits: true,
			Author:            &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
		})
		require.NoError(t, err)
	}

	problems, err := checkHistory(dir, 2)
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = checkHistory(dir, 10)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.ErrorIs(t, problems[0], errBadSubject)
}
