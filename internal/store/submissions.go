package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Submission is the outcome of one contact form attempt.
type Submission struct {
	Email      string
	Status     string
	FailedStep string
	Simulated  bool
}

// RecordSubmission stores an outcome and returns its id. Only a hash of the
// sender's address is kept.
func (s *Store) RecordSubmission(ctx context.Context, sub Submission) (string, error) {
	id := uuid.NewString()
	simulated := 0
	if sub.Simulated {
		simulated = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, hashed_email, status, failed_step, simulated, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, s.Hash(strings.ToLower(strings.TrimSpace(sub.Email))), sub.Status, sub.FailedStep, simulated, s.timestamp())
	if err != nil {
		return "", fmt.Errorf("recording submission: %w", err)
	}
	return id, nil
}
