package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// TaskLogPath returns the path to the log file of one task.
func TaskLogPath(logDir string, taskID TaskID) string {
	return filepath.Join(logDir, fmt.Sprintf("task-%d.log", taskID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, "taskgraph.log")
}

// RunSeparatorPrefix starts the line a process writes when it first opens a
// log file. Ids restart at 1 in every process, so a task log holds one section
// per run.
const RunSeparatorPrefix = "===== run "

// RunSeparator returns the separator line for a run started at t by pid.
func RunSeparator(t time.Time, pid int) string {
	return fmt.Sprintf("%s%s pid %d =====\n", RunSeparatorPrefix, t.Format("2006-01-02 15:04:05"), pid)
}
