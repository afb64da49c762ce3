package store

import (
	"errors"

	"github.com/charmbracelet/log"
)

// BuyResult is the outcome of a store purchase attempt.
type BuyResult int

const (
	// BuySuccess means the price was paid and the item granted.
	BuySuccess BuyResult = iota
	// BuyInsufficientFunds means the ledger was left unchanged.
	BuyInsufficientFunds
	// BuyNotPurchasable means the item is not sold (free defaults or unknown).
	BuyNotPurchasable
)

// String returns the player-facing message for the result.
func (r BuyResult) String() string {
	switch r {
	case BuySuccess:
		return "success"
	case BuyInsufficientFunds:
		return "not enough coins"
	case BuyNotPurchasable:
		return "not purchaseable"
	default:
		return "unknown"
	}
}

// Item and skin catalogs. Weapons and Skins are index-addressed because the
// equipped selection is stored as an index in the settings file.
var (
	Weapons   = []string{"Default", "Gun"}
	Skins     = []string{"Default", "Red"}
	SkinPaths = []string{"default", "red"}
)

// Prices is the fixed price table. Items absent from the table are not
// purchasable; "Default" entries are unconditionally owned.
var Prices = map[string]int{
	"Gun":  100,
	"Ammo": 30,
	"Red":  75,
}

// bundleSizes maps an item to the quantity one purchase grants.
// Everything not listed grants exactly one.
var bundleSizes = map[string]int{
	"Ammo": 25,
}

const collectablesFile = "collectables.json"

// ledgerRecord is the on-disk shape. Field names are part of the save
// format and must not change.
type ledgerRecord struct {
	CoinCount int            `json:"coin_count"`
	Gun       bool           `json:"gun"`
	Ammo      int            `json:"ammo"`
	Items     map[string]int `json:"items"`
}

// Collectables tracks the persistent currency and item ledger. Every
// mutation persists immediately (write-through), so a crash after a
// purchase never loses the transaction.
type Collectables struct {
	store *JSONStore
	log   *log.Logger

	Coins int
	Ammo  int
	Gun   bool
	Items map[string]int

	dirty bool
}

// LoadCollectables reads the ledger, falling back to zeroed defaults with a
// warning when the file is missing or corrupt.
func LoadCollectables(s *JSONStore, logger *log.Logger) *Collectables {
	c := &Collectables{
		store: s,
		log:   logger,
		Items: map[string]int{"Default": 1},
	}

	var rec ledgerRecord
	err := s.Load(collectablesFile, &rec)
	switch {
	case err == nil:
		c.Coins = rec.CoinCount
		c.Gun = rec.Gun
		c.Ammo = rec.Ammo
		for name, n := range rec.Items {
			c.Items[name] = n
		}
		c.Items["Default"] = 1
	case errors.Is(err, ErrNotFound):
		// First run; nothing to report.
	default:
		logger.Warn("corrupt collectables file, starting from zero", "err", err)
	}
	return c
}

// IsPurchasable reports whether the item appears in the price table.
func (c *Collectables) IsPurchasable(name string) bool {
	_, ok := Prices[name]
	return ok
}

// Amount returns the owned quantity for an item.
func (c *Collectables) Amount(name string) int {
	return c.Items[name]
}

// Buy attempts to purchase one bundle of the named item. On success the
// ledger is persisted before returning.
func (c *Collectables) Buy(name string) BuyResult {
	price, ok := Prices[name]
	if !ok {
		return BuyNotPurchasable
	}
	if c.Coins < price {
		return BuyInsufficientFunds
	}

	c.Coins -= price
	bundle := bundleSizes[name]
	if bundle == 0 {
		bundle = 1
	}
	c.Items[name] += bundle
	switch name {
	case "Gun":
		c.Gun = true
	case "Ammo":
		c.Ammo += bundle
	}
	c.Flush()
	return BuySuccess
}

// AddCoins credits picked-up coins and persists.
func (c *Collectables) AddCoins(n int) {
	c.Coins += n
	c.Flush()
}

// SpendAmmo consumes one round, reporting whether one was available.
func (c *Collectables) SpendAmmo() bool {
	if c.Ammo <= 0 {
		return false
	}
	c.Ammo--
	c.dirty = true
	return true
}

// Flush persists the ledger. A write failure is logged and leaves the
// in-memory ledger authoritative; the dirty flag stays set so the next
// flush retries the pending state.
func (c *Collectables) Flush() {
	c.dirty = true
	rec := ledgerRecord{
		CoinCount: c.Coins,
		Gun:       c.Gun,
		Ammo:      c.Ammo,
		Items:     c.Items,
	}
	if err := c.store.Save(collectablesFile, rec); err != nil {
		c.log.Error("failed to save collectables", "err", err)
		return
	}
	c.dirty = false
}

// Dirty reports whether there are unpersisted changes.
func (c *Collectables) Dirty() bool { return c.dirty }
