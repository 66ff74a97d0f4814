package task

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TaskType distinguishes map and reduce attempts.
type TaskType string

const (
	TaskTypeMap    TaskType = "m"
	TaskTypeReduce TaskType = "r"
)

// AttemptID identifies one execution of one task of a job.
type AttemptID struct {
	JobID     string
	Type      TaskType
	Partition int
	Attempt   int
}

// NewAttemptID creates an AttemptID.
func NewAttemptID(jobID string, taskType TaskType, partition int, attempt int) AttemptID {
	return AttemptID{
		JobID:     jobID,
		Type:      taskType,
		Partition: partition,
		Attempt:   attempt,
	}
}

// NewJobID returns a fresh random job identifier.
func NewJobID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// String renders the attempt as attempt_<job>_<type>_<partition>_<attempt>.
func (a AttemptID) String() string {
	return fmt.Sprintf("attempt_%s_%s_%06d_%d", a.JobID, a.Type, a.Partition, a.Attempt)
}

// UniqueFileName returns the leaf name reserved for the attempt's partition,
// e.g. "part-m-00003.txt" for name "part" and ext ".txt".
// Every attempt of the same partition gets the same name; attempts are kept
// apart by their committer work paths.
func UniqueFileName(id AttemptID, name string, ext string) string {
	return fmt.Sprintf("%s-%s-%05d%s", name, id.Type, id.Partition, ext)
}
