// Package behavior implementa el motor de agregacion de señales conductuales
// y clasificacion de arquetipos de viaje. Es puro: no hace I/O, no guarda
// estado entre llamadas y puede evaluarse concurrentemente sin coordinacion.
package behavior

import (
	"math"
	"sort"
	"strings"
	"time"

	"travel-persona/internal/domain"
)

// Counter acumula conteos por categoria preservando el orden de primera aparicion.
// Ese orden es el desempate de Argmax: ante empate gana la categoria vista primero.
type Counter struct {
	counts map[string]int
	order  []string
	total  int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add suma una ocurrencia de la categoria.
func (c *Counter) Add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
	c.total++
}

// Total devuelve la cantidad de ocurrencias acumuladas.
func (c *Counter) Total() int { return c.total }

// Argmax devuelve la categoria con conteo estrictamente mayor.
// Empates se resuelven por orden de insercion; vacio devuelve "".
func (c *Counter) Argmax() string {
	best := ""
	bestCount := -1
	for _, label := range c.order {
		if c.counts[label] > bestCount {
			best = label
			bestCount = c.counts[label]
		}
	}
	return best
}

// Distribution materializa conteos y porcentajes sobre el total.
// Con total cero devuelve una distribucion vacia, nunca divide por cero.
// Los porcentajes se reparten por mayor residuo: una distribucion no vacia
// suma exactamente 100 sin importar cuantas categorias tenga.
func (c *Counter) Distribution() domain.Distribution {
	dist := make(domain.Distribution, len(c.order))
	if c.total == 0 {
		return dist
	}
	values := make(map[string]float64, len(c.order))
	for _, label := range c.order {
		values[label] = float64(c.counts[label])
	}
	shares := roundedShares(c.order, values, float64(c.total))
	for _, label := range c.order {
		dist[label] = domain.DistributionEntry{
			Count:      c.counts[label],
			Percentage: shares[label],
		}
	}
	return dist
}

// roundedShares reparte porcentajes a un decimal con el metodo de mayor residuo:
// cada parte se trunca a decimas y las decimas sobrantes van a las categorias
// con mayor resto, desempatando por orden de primera aparicion.
func roundedShares(order []string, values map[string]float64, total float64) map[string]float64 {
	shares := make(map[string]float64, len(order))
	if total == 0 {
		return shares
	}

	tenths := make(map[string]int, len(order))
	remainders := make(map[string]float64, len(order))
	allocated := 0
	for _, label := range order {
		exact := values[label] / total * 1000
		base := int(math.Floor(exact))
		tenths[label] = base
		remainders[label] = exact - float64(base)
		allocated += base
	}

	pending := 1000 - allocated
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return remainders[ranked[i]] > remainders[ranked[j]]
	})
	for i := 0; i < pending && i < len(ranked); i++ {
		tenths[ranked[i]]++
	}

	for _, label := range order {
		shares[label] = float64(tenths[label]) / 10
	}
	return shares
}

// Term es un sumando (valor, peso) de un puntaje lineal ponderado.
// Todos los valores se expresan en escala 0-100 antes de ponderar.
type Term struct {
	Value  float64
	Weight float64
}

// WeightedScore calcula clamp(Σ valor*peso, 0, 100) sin redondear.
// El redondeo a entero ocurre recien al armar el reporte.
func WeightedScore(terms ...Term) float64 {
	var sum float64
	for _, t := range terms {
		sum += t.Value * t.Weight
	}
	return clamp(sum, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// percent devuelve part/total*100 redondeado a un decimal; 0 si total es 0.
func percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTimestamp intenta los formatos de ingesta conocidos.
// Un timestamp ilegible descarta solo ese registro, no el agregado (ver taxonomia de errores).
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
