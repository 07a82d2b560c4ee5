package remote

import "sync"

// Store holds the latest decoded player snapshot.
//
// The snapshot is replaced wholesale on each valid inbound state message
// and is otherwise inert. Readers only ever see copies; the presentation
// layer never mutates session state through the store.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Store struct {
	mu       sync.RWMutex
	model    PlayerModel
	onUpdate func(PlayerModel)

	logger Logger
}

// NewStore creates a store seeded with the default snapshot.
func NewStore(logger Logger) *Store {
	return &Store{
		model:  DefaultModel(),
		logger: logger,
	}
}

// Snapshot returns a copy of the current player model.
func (s *Store) Snapshot() PlayerModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyModelLocked()
}

// IndexOf resolves the current queue offset of a track by id. Offsets
// must be resolved at call time because the queue is reordered
// concurrently by other commands and by the agent itself.
func (s *Store) IndexOf(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, entry := range s.model.Queue {
		if entry.ID == id {
			return i, true
		}
	}
	return 0, false
}

// SetOnUpdate registers a callback invoked with a copy of the model after
// each replacement. Used by the presentation layer and telemetry.
func (s *Store) SetOnUpdate(callback func(PlayerModel)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// HandleMessage decodes an inbound state broadcast and replaces the
// stored snapshot. It is registered as the state-topic MessageHandler.
//
// Empty bodies are ignored: the client is subscribed to the same topic it
// publishes the bootstrap poke on. Decode failures are logged and the
// previous snapshot is retained unchanged.
func (s *Store) HandleMessage(payload []byte) {
	if len(payload) == 0 {
		return
	}

	model, err := decodeModel(payload)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding state broadcast", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.model = model
	callback := s.onUpdate
	snapshot := s.copyModelLocked()
	s.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// copyModelLocked returns a defensive copy of the model. Callers must
// hold at least a read lock.
func (s *Store) copyModelLocked() PlayerModel {
	model := s.model
	if s.model.Queue != nil {
		model.Queue = make([]QueueEntry, len(s.model.Queue))
		copy(model.Queue, s.model.Queue)
	}
	if s.model.Current != nil {
		current := *s.model.Current
		model.Current = &current
	}
	return model
}
