package cache

import (
	"math/rand/v2"
	"sync"
	"time"
)

// localIDSuffix cantidad de valores posibles del sufijo aleatorio (1..999).
const localIDSuffix = 1000

// LocalIDGenerator genera ids numéricos para entidades creadas localmente:
// milisegundos unix × 1000 + sufijo aleatorio en [1, 999]. Hoy produce 16 dígitos,
// siempre más que los ids secuenciales de la API demo. Es unicidad probabilística;
// dentro del mismo proceso se garantiza además que los ids sean crecientes.
type LocalIDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	rand func(n int) int
	last int64
}

// NewLocalIDGenerator construye el generador con reloj y aleatoriedad reales.
func NewLocalIDGenerator() *LocalIDGenerator {
	return &LocalIDGenerator{now: time.Now, rand: rand.IntN}
}

// NewLocalIDGeneratorWith permite inyectar reloj y fuente aleatoria (tests).
func NewLocalIDGeneratorWith(now func() time.Time, rnd func(n int) int) *LocalIDGenerator {
	return &LocalIDGenerator{now: now, rand: rnd}
}

// Next devuelve un nuevo id local.
func (g *LocalIDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()*localIDSuffix + int64(g.rand(localIDSuffix-1)+1)
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
