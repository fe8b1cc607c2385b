package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	Service
	gotRetention int
	err          error
}

func (s *recordingService) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	s.gotRetention = retentionDays
	return 7, s.err
}

func TestCleanupJob_Process(t *testing.T) {
	svc := &recordingService{}
	job := NewCleanupJob(svc, 30)

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, 30, svc.gotRetention)
}

func TestCleanupJob_DefaultsRetention(t *testing.T) {
	svc := &recordingService{}
	job := NewCleanupJob(svc, 0)

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, DefaultRetentionDays, svc.gotRetention)
}

func TestCleanupJob_PropagatesError(t *testing.T) {
	svc := &recordingService{err: errors.New("db gone")}
	job := NewCleanupJob(svc, 30)

	assert.Error(t, job.Process(context.Background()))
}
