package checkout

import (
	"sync"
)

// InvoiceCache ties an order to the invoice currently considered active
// for it, so checkout-page reloads do not mint duplicate invoices. It is
// ephemeral by design: losing it costs at worst one extra invoice.
type InvoiceCache interface {
	Get(orderID uint) (string, bool)
	Put(orderID uint, invoiceURL string)
	Invalidate(orderID uint)
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[uint]string
}

func NewMemoryCache() InvoiceCache {
	return &memoryCache{entries: make(map[uint]string)}
}

func (c *memoryCache) Get(orderID uint) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	url, ok := c.entries[orderID]
	return url, ok
}

func (c *memoryCache) Put(orderID uint, invoiceURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[orderID] = invoiceURL
}

func (c *memoryCache) Invalidate(orderID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, orderID)
}
