package payment

import (
	"PixGen-Backend/domain"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultIntentTTL = 15 * time.Minute

type (
	// IntentStore holds pending purchase intents between payment
	// initiation and the gateway callback, keyed by a server-issued
	// opaque token. Entries expire lazily on read.
	IntentStore interface {
		Put(intent domain.PurchaseIntent) string
		Get(token string) (*domain.PurchaseIntent, bool)
		Delete(token string)
	}

	memoryIntentStore struct {
		mu      sync.Mutex
		ttl     time.Duration
		intents map[string]domain.PurchaseIntent
	}
)

func NewIntentStore(ttl time.Duration) IntentStore {
	if ttl <= 0 {
		ttl = DefaultIntentTTL
	}
	return &memoryIntentStore{
		ttl:     ttl,
		intents: make(map[string]domain.PurchaseIntent),
	}
}

func (s *memoryIntentStore) Put(intent domain.PurchaseIntent) string {
	token := uuid.NewString()
	intent.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[token] = intent
	return token
}

func (s *memoryIntentStore) Get(token string) (*domain.PurchaseIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[token]
	if !ok {
		return nil, false
	}
	if time.Since(intent.CreatedAt) > s.ttl {
		delete(s.intents, token)
		return nil, false
	}
	return &intent, true
}

func (s *memoryIntentStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.intents, token)
}
