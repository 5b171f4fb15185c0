package service

import (
	"sync"

	"github.com/guttosm/packaging-service/internal/domain/model"
)

// workingInventory holds per-call stock counters indexed by catalog position.
// It is built from a catalog snapshot and never writes back to the catalog.
type workingInventory struct {
	stock []int
}

// inventoryPool provides reusable counter slices to reduce GC pressure on hot estimate paths.
var inventoryPool = sync.Pool{
	New: func() interface{} {
		return &workingInventory{stock: make([]int, 0, 32)}
	},
}

// newWorkingInventory snapshots the catalog's stock, clamping negative quantities to zero.
// Callers must release the inventory when the packing call ends.
func newWorkingInventory(catalog []model.PackageDimension) *workingInventory {
	inv, _ := inventoryPool.Get().(*workingInventory)
	if inv == nil {
		inv = &workingInventory{}
	}

	if cap(inv.stock) < len(catalog) {
		inv.stock = make([]int, len(catalog))
	} else {
		inv.stock = inv.stock[:len(catalog)]
	}

	for i, pkg := range catalog {
		inv.stock[i] = max(pkg.AvailableQuantity, 0)
	}
	return inv
}

// release returns the inventory to the pool.
func (inv *workingInventory) release() {
	if cap(inv.stock) > 4096 {
		inv.stock = make([]int, 0, 32)
	}
	inventoryPool.Put(inv)
}

// available returns the remaining stock of the catalog entry at idx.
func (inv *workingInventory) available(idx int) int {
	return inv.stock[idx]
}

// take removes up to n units from the entry at idx and returns how many were removed.
func (inv *workingInventory) take(idx, n int) int {
	taken := min(n, inv.stock[idx])
	if taken <= 0 {
		return 0
	}
	inv.stock[idx] -= taken
	return taken
}
