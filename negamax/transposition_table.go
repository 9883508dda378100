package negamax

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/Greg1415/Connect4-bot/board"
)

// SlotHash picks how a key is mapped to a slot.
type SlotHash string

const (
	// SlotModulo uses key mod capacity.
	SlotModulo SlotHash = "modulo"
	// SlotXXHash mixes the key with xxhash first. Useful when the capacity is
	// a power of two and the low key bits cluster.
	SlotXXHash SlotHash = "xxhash"
)

const (
	DefaultCapacity = 1 << 24
	MinCapacity     = 1 << 16
)

const entrySize = 16

// 16 bytes (entrySize). Keys never use more than 72 bits, so the top part
// fits in a byte.
type tableEntry struct {
	keyLo   uint64
	keyHi   uint8
	score   int8
	present bool
}

func (e tableEntry) matches(key board.Key) bool {
	return e.present && e.keyLo == key.Lo && uint64(e.keyHi) == key.Hi
}

// TableStats are counters kept by a TranspositionTable since its last
// Reset.
type TableStats struct {
	Lookups uint64
	Hits    uint64
	Stores  uint64
	// Collisions counts lookups that found a slot holding some other key.
	Collisions uint64
}

// TranspositionTable is a direct-mapped cache from canonical position keys
// to upper bounds on the negamax score. A store always overwrites its slot.
// It is not safe for concurrent use.
type TranspositionTable struct {
	table    []tableEntry
	slotHash SlotHash
	stats    TableStats
}

// NewTranspositionTable allocates every slot up front.
func NewTranspositionTable(capacity int, slotHash SlotHash) (*TranspositionTable, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: table capacity %d", ErrInvalidParams, capacity)
	}
	switch slotHash {
	case SlotModulo, SlotXXHash:
	default:
		return nil, fmt.Errorf("%w: unknown slot hash %q", ErrInvalidParams, slotHash)
	}
	log.Debug().Int("capacity", capacity).
		Int("estimated-total-memory-bytes", capacity*entrySize).
		Str("slot-hash", string(slotHash)).
		Msg("transposition-table-size")
	return &TranspositionTable{
		table:    make([]tableEntry, capacity),
		slotHash: slotHash,
	}, nil
}

// CapacityForMemory returns the largest power of two number of entries
// that fits in the given fraction of system memory, clamped to at least
// MinCapacity.
func CapacityForMemory(fraction float64) int {
	totalMem := memory.TotalMemory()
	desired := uint64(fraction * float64(totalMem) / entrySize)
	if desired < MinCapacity {
		return MinCapacity
	}
	return 1 << (bits.Len64(desired) - 1)
}

func (t *TranspositionTable) slot(key board.Key) uint64 {
	n := uint64(len(t.table))
	if t.slotHash == SlotXXHash {
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[:8], key.Lo)
		binary.LittleEndian.PutUint64(buf[8:], key.Hi)
		return xxhash.Sum64(buf[:]) % n
	}
	return key.Mod64(n)
}

// Put stores value under key, evicting whatever shared its slot.
func (t *TranspositionTable) Put(key board.Key, value int8) {
	t.table[t.slot(key)] = tableEntry{
		keyLo:   key.Lo,
		keyHi:   uint8(key.Hi),
		score:   value,
		present: true,
	}
	t.stats.Stores++
}

// Get returns the value stored under exactly this key.
func (t *TranspositionTable) Get(key board.Key) (int8, bool) {
	t.stats.Lookups++
	e := t.table[t.slot(key)]
	if !e.matches(key) {
		if e.present {
			t.stats.Collisions++
		}
		return 0, false
	}
	t.stats.Hits++
	return e.score, true
}

// Reset empties every slot and zeroes the counters.
func (t *TranspositionTable) Reset() {
	clear(t.table)
	t.stats = TableStats{}
}

func (t *TranspositionTable) Capacity() int {
	return len(t.table)
}

func (t *TranspositionTable) Stats() TableStats {
	return t.stats
}
