// Package partition decides which node runs which test.
package partition

import "github.com/cespare/xxhash/v2"

// Slot maps identifier to a node in [1, nodeCount]. The mapping depends only
// on the identifier bytes, so every node computes the same partition.
func Slot(identifier string, nodeCount int) int {
	if nodeCount < 1 {
		nodeCount = 1
	}
	return int(xxhash.Sum64String(identifier)%uint64(nodeCount)) + 1
}
