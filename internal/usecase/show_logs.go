package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/taskgraph/internal/domain"
)

// ShowLogsInput contains the parameters for showing build logs.
type ShowLogsInput struct {
	TaskID  domain.TaskID // Task whose log to show (0 = global log)
	Lines   int           // Number of lines to display from the end (0 = all)
	LastRun bool          // Keep only the section written by the most recent run
}

// ShowLogsOutput contains the result of showing build logs.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the logs written by previous builds.
type ShowLogs struct {
	logDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(logDir string) *ShowLogs {
	return &ShowLogs{
		logDir: logDir,
	}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	if uc.logDir == "" {
		return nil, domain.ErrLoggingDisabled
	}

	logPath := domain.GlobalLogPath(uc.logDir)
	if in.TaskID > 0 {
		logPath = domain.TaskLogPath(uc.logDir, in.TaskID)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoLogFile, logPath)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	result := string(content)
	if in.LastRun {
		result = lastRun(result)
	}

	// If lines is specified, get only the last N lines
	if in.Lines > 0 {
		lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n") + "\n"
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}

// lastRun returns content from the last run separator on.
func lastRun(content string) string {
	if i := strings.LastIndex(content, "\n"+domain.RunSeparatorPrefix); i >= 0 {
		return content[i+1:]
	}
	return content
}
