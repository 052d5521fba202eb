// Package virtual assigns reusable render slots to the data indexes a
// viewability tracker reports as engaged.
//
// A slot is identified by an opaque key. The render stack maps every live
// key to the data index it currently renders. Keys are handed out per
// stable identity, recycled per layout type once their index disengages,
// and reconciled against a replacement data set so that an item keeps its
// slot across inserts, deletes and reorders.
package virtual
