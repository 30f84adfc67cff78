// Package integrity builds a per-file Merkle root over a chunk-code
// sequence, so two runs (or two files) can be compared for exact
// chunk-sequence equality without diffing full dedup reports.
package integrity

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/cbergoon/merkletree"

	"github.com/cdctools/chunkscope/pkg/chunk"
)

// codeLeaf adapts a single chunk.Code to merkletree.Content.
type codeLeaf struct {
	code chunk.Code
}

func (l codeLeaf) CalculateHash() ([]byte, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(l.code))
	h := sha256.Sum256(buf[:])
	return h[:], nil
}

func (l codeLeaf) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(codeLeaf)
	if !ok {
		return false, fmt.Errorf("integrity: type mismatch comparing chunk leaves")
	}
	return l.code == o.code, nil
}

// RootForChunks builds a Merkle tree over codes, in order, and returns its
// root hash. An empty chunk list has no root and returns nil.
func RootForChunks(codes []chunk.Code) ([]byte, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	leaves := make([]merkletree.Content, len(codes))
	for i, c := range codes {
		leaves[i] = codeLeaf{code: c}
	}

	tree, err := merkletree.NewTree(leaves)
	if err != nil {
		return nil, fmt.Errorf("integrity: building merkle tree: %w", err)
	}
	return tree.MerkleRoot(), nil
}
