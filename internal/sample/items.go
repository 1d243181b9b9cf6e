// Package sample holds the demo catalog.
package sample

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
)

//go:embed items.toml
var itemsTOML []byte

var ErrNotFound = errors.New("item not found")

type Stats struct {
	Progress int `toml:"progress"`
	Total    int `toml:"total"`
}

type Item struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Subtitle    string `toml:"subtitle"`
	Description string `toml:"description"`
	Image       string `toml:"image"`
	Stats       *Stats `toml:"stats"`
}

type catalog struct {
	Items []Item `toml:"items"`
}

var items = mustParse(itemsTOML)

// Parse decodes a catalog document.
func Parse(data []byte) ([]Item, error) {
	var c catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return c.Items, nil
}

func mustParse(data []byte) []Item {
	parsed, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return parsed
}

// All returns a copy of every item in display order.
func All() []Item {
	return append([]Item(nil), items...)
}

// ByID looks an item up by id.
func ByID(id string) (Item, error) {
	item, ok := lo.Find(items, func(it Item) bool { return it.ID == id })
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return item, nil
}

// Images returns the image URL of every item.
func Images() []string {
	return lo.Map(items, func(it Item, _ int) string { return it.Image })
}
