package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/jobs"
	"github.com/noah-isme/courseconnect-api/pkg/llm"
)

var seedTime = time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)

func newSeededStore() *repository.Store {
	return repository.NewStore(repository.DefaultSeed(seedTime))
}

func stateFor(store *repository.Store, userID string, view models.ViewState) models.AppState {
	user, _ := models.FindUser(store.Users(), userID)
	return models.AppState{User: user, View: view}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if evt, ok := payload.(models.DomainEvent); ok && topic == DomainEventsTopic {
		p.events = append(p.events, evt)
	}
	return nil
}

func (p *recordingPublisher) types() []models.DomainEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.DomainEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type memCacheRepo struct {
	mu          sync.Mutex
	store       map[string][]byte
	getErr      error
	invalidated []string
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{store: map[string][]byte{}}
}

func (m *memCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = raw
	return nil
}

func (m *memCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, pattern)
	m.store = map[string][]byte{}
	return nil
}

type stubGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	prompts  []string
	requests []llm.ChatRequest
	block    chan struct{}
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.text, g.err
}

func (g *stubGenerator) Chat(_ context.Context, req llm.ChatRequest) (string, error) {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	return g.text, g.err
}

type captureDispatcher struct {
	jobs []jobs.Job
	err  error
}

func (d *captureDispatcher) Submit(job jobs.Job) (jobs.Job, error) {
	if d.err != nil {
		return job, d.err
	}
	d.jobs = append(d.jobs, job)
	return job, nil
}
