package checkout

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/cart"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

// Estados de la sesión de cobro: Draft → Committing → {Committed, Failed}.
// Committed vuelve a Draft con carrito vacío (nueva venta); Failed es terminal
// para la sesión: la cabecera huérfana exige conciliación manual.
const (
	StateDraft      = "draft"
	StateCommitting = "committing"
	StateFailed     = "failed"
)

// Session una sesión de venta: posee su carrito y el estado del protocolo de
// cobro. Las mutaciones se aplican en el orden recibido y solo en Draft, lo
// que serializa el cobro respecto a las mutaciones.
type Session struct {
	ID string

	mu    sync.Mutex
	state string
	cart  *cart.Cart
}

func newSession() *Session {
	return &Session{
		ID:    uuid.New().String(),
		state: StateDraft,
		cart:  cart.New(),
	}
}

// Add agrega quantity unidades del producto al carrito.
func (s *Session) Add(good entity.Good, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireDraft(); err != nil {
		return err
	}
	return s.cart.Add(good, quantity)
}

// Remove elimina la línea del producto; no-op si no existe.
func (s *Session) Remove(goodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.cart.Remove(goodID)
	return nil
}

// SetQuantity reemplaza la cantidad de una línea existente.
func (s *Session) SetQuantity(goodID string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireDraft(); err != nil {
		return err
	}
	return s.cart.SetQuantity(goodID, quantity)
}

// Clear vacía el carrito.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.cart.Clear()
	return nil
}

// Snapshot devuelve una copia de las líneas y el total actual.
func (s *Session) Snapshot() ([]cart.Line, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.Total()
}

// State devuelve el estado actual del protocolo de cobro.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) requireDraft() error {
	switch s.state {
	case StateCommitting:
		return domain.ErrCommitInProgress
	case StateFailed:
		return domain.ErrSessionFailed
	}
	return nil
}

// Registry mantiene las sesiones de venta activas, una por caja/checkout.
// El estado pertenece a la sesión, no a un singleton global.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry construye el registro de sesiones.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create abre una sesión nueva con carrito vacío.
func (r *Registry) Create() *Session {
	s := newSession()
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get devuelve la sesión o ErrSessionNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Remove descarta una sesión (cierre de caja).
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
