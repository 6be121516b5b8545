package oozie

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"ooz/internal/logging"
)

// StageResult records the outcome of one file upload.
type StageResult struct {
	LocalPath  string
	RemotePath string
	Err        error
}

type StageResults []StageResult

// Err aggregates the per-file failures, or nil if every upload succeeded.
func (rs StageResults) Err() error {
	var merr *multierror.Error
	for _, r := range rs {
		if r.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.LocalPath, r.Err))
		}
	}
	return merr.ErrorOrNil()
}

// StageFiles uploads every attached file to {projectRoot}/{basename} with
// overwrite, in attachment order. One file's failure does not stop the
// rest; callers inspect the results (or Err) for the outcome. No retries,
// no rollback.
func (c *Client) StageFiles() StageResults {
	if len(c.files) == 0 {
		return nil
	}
	if c.projectRoot == "" {
		logging.L().Warn("project root is not set; staging to malformed remote paths")
	}

	results := make(StageResults, 0, len(c.files))
	for _, local := range c.files {
		remote := c.projectRoot + "/" + filepath.Base(local)
		result := StageResult{LocalPath: local, RemotePath: remote}

		if c.gw == nil {
			result.Err = ErrNoGateway
		} else if content, err := os.ReadFile(local); err != nil {
			result.Err = fmt.Errorf("cannot read file: %w", err)
		} else if err := c.gw.WriteFile(remote, content, true); err != nil {
			result.Err = err
		}

		if result.Err != nil {
			logging.L().Warn("failed to stage file",
				zap.String("local", local),
				zap.String("remote", remote),
				zap.Error(result.Err))
		}
		results = append(results, result)
	}
	return results
}
