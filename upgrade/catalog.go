package upgrade

import (
	"math/rand/v2"
)

// Catalog is an ordered, id-indexed upgrade set
type Catalog struct {
	items []Upgrade
	byID  map[string]int
}

// NewCatalog indexes the given upgrades; nil or empty uses Defaults
func NewCatalog(items []Upgrade) *Catalog {
	if len(items) == 0 {
		items = Defaults()
	}
	c := &Catalog{items: items, byID: make(map[string]int, len(items))}
	for i, u := range items {
		c.byID[u.ID] = i
	}
	return c
}

func (c *Catalog) Get(id string) (Upgrade, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Upgrade{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// GetRandomUpgrades draws up to n distinct upgrades uniformly
// Weapon unlocks are excluded once heldWeapons reaches maxWeapons
func (c *Catalog) GetRandomUpgrades(n, heldWeapons, maxWeapons int, rng *rand.Rand) []Upgrade {
	pool := make([]Upgrade, 0, len(c.items))
	for _, u := range c.items {
		if u.Category == CategoryUnlock && heldWeapons >= maxWeapons {
			continue
		}
		pool = append(pool, u)
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n < len(pool) {
		pool = pool[:n]
	}
	return pool
}
