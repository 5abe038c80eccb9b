package pipeline

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// admitBasicTier decides whether a basic-tier run gets asset
// generation. Admission is rationed by a stable hash of the document id
// against the configured percentage, so the same document always gets
// the same answer and the admitted share converges on ratio/100 across
// documents.
func admitBasicTier(documentID uuid.UUID, ratioPct int) bool {
	if ratioPct <= 0 {
		return false
	}
	if ratioPct >= 100 {
		return true
	}

	h := fnv.New32a()
	h.Write(documentID[:])
	return int(h.Sum32()%100) < ratioPct
}
