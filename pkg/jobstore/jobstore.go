// Package jobstore keeps kickoff results in memory until they expire.
package jobstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/source"
)

// Job is one kickoff: where the inputs came from and what the analysis
// produced.
type Job struct {
	ID            string               `json:"kickoff_id"`
	XMLURL        string               `json:"xml_url,omitempty"`
	ImageURL      string               `json:"image_url,omitempty"`
	Summary       *analyzer.Summary    `json:"summary,omitempty"`
	ImageAnalysis source.ImageAnalysis `json:"image_analysis"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// Store persists jobs by id.
type Store interface {
	Put(job *Job)
	Get(id string) (*Job, error)
	Len() int
}

// Generator produces unique job ids.
type Generator func() string

// UUIDv7 returns a Generator producing time-sortable RFC 9562 UUIDs.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// MemoryStore is a thread-safe in-memory Store with TTL eviction.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore creates a MemoryStore. ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put stores a copy of job, stamping CreatedAt/UpdatedAt.
func (s *MemoryStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *job
	now := s.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.jobs[stored.ID] = &stored
}

// Get returns a copy of the job, or core.ErrJobNotFound if it is unknown
// or expired.
func (s *MemoryStore) Get(id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || s.expired(job) {
		return nil, core.ErrJobNotFound
	}
	out := *job
	return &out, nil
}

// Len returns the number of stored jobs, expired ones included until the
// next Cleanup.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs and returns how many were removed.
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, job := range s.jobs {
		if s.expired(job) {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

func (s *MemoryStore) expired(job *Job) bool {
	return s.ttl > 0 && s.now().Sub(job.UpdatedAt) > s.ttl
}
