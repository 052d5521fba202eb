package main

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	recycler "github.com/grindlemire/go-recycler"
)

const (
	typeHeader recycler.LayoutType = "header"
	typeEntry  recycler.LayoutType = "entry"

	sectionSize = 10
)

type item struct {
	ID    string
	Title string
	Type  recycler.LayoutType
}

// generateItems returns n items numbered from start. Every tenth item heads
// a section. IDs hash the title so they survive reordering.
func generateItems(start, n int) []item {
	items := make([]item, 0, n)
	for i := start; i < start+n; i++ {
		it := item{Type: typeEntry, Title: "Item " + strconv.Itoa(i)}
		if i%sectionSize == 0 {
			it.Type = typeHeader
			it.Title = fmt.Sprintf("Section %d", i/sectionSize)
		}
		it.ID = strconv.FormatUint(xxhash.Sum64String(it.Title), 16)
		items = append(items, it)
	}
	return items
}

func itemChanged(a, b item) bool {
	return a != b
}

func newFeed(items []item) *recycler.DataProvider[item] {
	dp := recycler.NewDataProvider(itemChanged, recycler.WithStableID(func(it item) string {
		return it.ID
	}))
	return dp.CloneWithRows(items)
}

func lineHeight(t recycler.LayoutType) float64 {
	if t == typeHeader {
		return 2
	}
	return 1
}

// feedLayouts builds the list and grid layout providers over the items
// returned by current.
func feedLayouts(current func() []item, columns int) (list, grid recycler.LayoutProvider) {
	typeFn := func(index int) recycler.LayoutType {
		items := current()
		if index < 0 || index >= len(items) {
			return typeEntry
		}
		return items[index].Type
	}

	// Rows ask for any width; the layout manager clamps them to the window.
	list = recycler.NewLayoutProvider(typeFn, func(t recycler.LayoutType, _ int) recycler.Dimension {
		return recycler.Dimension{Width: 1 << 16, Height: lineHeight(t)}
	})

	grid = recycler.NewGridLayoutProvider(columns, typeFn,
		func(index int) int {
			if typeFn(index) == typeHeader {
				return columns
			}
			return 1
		},
		func(index int) float64 {
			return lineHeight(typeFn(index))
		},
	)
	return list, grid
}
