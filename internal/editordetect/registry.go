package editordetect

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Detector
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		byID:  map[string]Detector{},
		order: []string{},
	}
}

// EditorDetectorRegistry is the process-wide registry builtin detectors
// register into.
var EditorDetectorRegistry = NewRegistry()

func (r *Registry) Register(detector Detector) error {
	if r == nil {
		return errors.New("registry is nil")
	}
	if detector == nil {
		return errors.New("detector is nil")
	}
	id := strings.TrimSpace(detector.EditorID())
	if id == "" {
		return errors.New("editor id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("detector %q already registered", id)
	}
	r.byID[id] = detector
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) MustRegister(detector Detector) {
	if err := r.Register(detector); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(editorID string) (Detector, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	detector, ok := r.byID[strings.TrimSpace(editorID)]
	return detector, ok
}

// Detect returns the first registered detector matching the env.
// Registration order decides precedence.
func (r *Registry) Detect(env Env) (Detector, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if d := r.byID[id]; d != nil && d.Detect(env) {
			return d, true
		}
	}
	return nil, false
}
