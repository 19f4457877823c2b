package memory

import (
	"sync"

	"github.com/decortina/ventas-api/internal/application/pipeline"
	"github.com/decortina/ventas-api/internal/domain/entity"
)

var _ pipeline.ProspectCache = (*ProspectCache)(nil)

// ProspectCache copia en memoria de los prospectos, respaldo de la
// actualización optimista del tablero. Guarda copias, nunca referencias
// compartidas con el caller.
type ProspectCache struct {
	mu    sync.RWMutex
	items map[string]entity.Prospect
}

// NewProspectCache construye la caché vacía.
func NewProspectCache() *ProspectCache {
	return &ProspectCache{items: make(map[string]entity.Prospect)}
}

// Put guarda (o reemplaza) la copia del prospecto.
func (c *ProspectCache) Put(p *entity.Prospect) {
	if p == nil {
		return
	}
	cp := *p
	cp.StageHistory = append([]entity.StageChange{}, p.StageHistory...)
	c.mu.Lock()
	c.items[cp.ID] = cp
	c.mu.Unlock()
}

// Get devuelve una copia del prospecto si está en caché.
func (c *ProspectCache) Get(id string) (*entity.Prospect, bool) {
	c.mu.RLock()
	cached, ok := c.items[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	cp := cached
	cp.StageHistory = append([]entity.StageChange{}, cached.StageHistory...)
	return &cp, true
}

// Invalidate elimina la entrada del prospecto.
func (c *ProspectCache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}
