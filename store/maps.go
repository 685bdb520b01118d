package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"consenc/crypto"
	"consenc/cwire"
	"consenc/psbt"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	mapsPrefix     = Prefixer("maps")
	mapInfoPrefix  = Prefixer(string(mapsPrefix("info")))
	mapPairsPrefix = Prefixer(string(mapsPrefix("pairs")))
)

// MapInfo describes a set of maps imported under one name.
type MapInfo struct {
	Name       string      `json:"name"`
	MapCount   int         `json:"map_count"`
	PairCount  int         `json:"pair_count"`
	Hash       crypto.Hash `json:"hash"`
	ImportedAt time.Time   `json:"imported_at"`
}

// StoredPair is a pair along with its position in the imported input.
type StoredPair struct {
	MapIndex  int
	PairIndex int
	Pair      psbt.Pair
}

func validateName(name string) error {
	if name == "" {
		return errors.New("map set name must not be empty")
	}
	if strings.Contains(name, "/") {
		return errors.Errorf("map set name %q must not contain '/'", name)
	}
	return nil
}

func pairKey(name string, mapIdx int, pairIdx int) []byte {
	return mapPairsPrefix(name, fmt.Sprintf("%010d", mapIdx), fmt.Sprintf("%010d", pairIdx))
}

func parsePairKey(name string, key []byte) (int, int, error) {
	suffix := strings.TrimPrefix(string(key), string(mapPairsPrefix(name, "")))
	parts := strings.Split(suffix, "/")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("malformed pair key %q", key)
	}
	mapIdx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "malformed pair key %q", key)
	}
	pairIdx, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "malformed pair key %q", key)
	}
	return mapIdx, pairIdx, nil
}

func pairsRange(name string) *util.Range {
	return mapPairsPrefix.Children(name)
}

func hashMaps(maps [][]psbt.Pair) crypto.Hash {
	encs := make([]cwire.Encoder, len(maps))
	for i, pairs := range maps {
		encs[i] = psbt.MapEncoder(pairs)
	}
	return crypto.HashEncoder(cwire.Concat(encs...))
}

// PutMap stores maps under name, replacing anything previously stored there.
func PutMap(db *leveldb.DB, name string, maps [][]psbt.Pair) (*MapInfo, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	info := &MapInfo{
		Name:       name,
		MapCount:   len(maps),
		Hash:       hashMaps(maps),
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		if err := deletePairsTx(tx, name); err != nil {
			return err
		}
		for i, pairs := range maps {
			for j, pair := range pairs {
				if err := tx.Put(pairKey(name, i, j), pair.Serialize(), nil); err != nil {
					return errors.Wrap(err, "error writing pair")
				}
				info.PairCount++
			}
		}
		if err := tx.Put(mapInfoPrefix(name), mustMarshalJSON(info), nil); err != nil {
			return errors.Wrap(err, "error writing map info")
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "error storing maps")
	}
	logger.Debug("stored maps", "name", name, "maps", info.MapCount, "pairs", info.PairCount)
	return info, nil
}

func GetMapInfo(db *leveldb.DB, name string) (*MapInfo, error) {
	data, err := db.Get(mapInfoPrefix(name), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error getting map info")
	}
	info := new(MapInfo)
	mustUnmarshalJSON(data, info)
	return info, nil
}

func ListMaps(db *leveldb.DB) ([]*MapInfo, error) {
	iter := db.NewIterator(mapInfoPrefix.Children(), nil)
	defer iter.Release()

	var out []*MapInfo
	for iter.Next() {
		info := new(MapInfo)
		mustUnmarshalJSON(iter.Value(), info)
		out = append(out, info)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "error iterating map info")
	}
	return out, nil
}

// DeleteMaps removes the named map sets. Names that do not exist are ignored.
func DeleteMaps(db *leveldb.DB, names ...string) error {
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		for _, name := range names {
			if err := validateName(name); err != nil {
				return err
			}
			if err := deletePairsTx(tx, name); err != nil {
				return err
			}
			if err := tx.Delete(mapInfoPrefix(name), nil); err != nil {
				return errors.Wrap(err, "error deleting map info")
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "error deleting maps")
	}
	return nil
}

func deletePairsTx(tx *leveldb.Transaction, name string) error {
	iter := tx.NewIterator(pairsRange(name), nil)
	defer iter.Release()
	for iter.Next() {
		if err := tx.Delete(iter.Key(), nil); err != nil {
			return errors.Wrap(err, "error deleting pair")
		}
	}
	return errors.Wrap(iter.Error(), "error iterating pairs")
}

type PairStream struct {
	iter iterator.Iterator
	name string
}

// Next returns the next stored pair, or nil once the stream is exhausted.
func (ps *PairStream) Next() (*StoredPair, error) {
	if !ps.iter.Next() {
		return nil, nil
	}

	mapIdx, pairIdx, err := parsePairKey(ps.name, ps.iter.Key())
	if err != nil {
		return nil, err
	}
	pair, err := psbt.DecodePair(ps.iter.Value())
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding stored pair %d/%d", mapIdx, pairIdx)
	}
	return &StoredPair{
		MapIndex:  mapIdx,
		PairIndex: pairIdx,
		Pair:      pair,
	}, nil
}

func (ps *PairStream) Close() error {
	ps.iter.Release()
	return ps.iter.Error()
}

// StreamPairs iterates the pairs stored under name in input order.
func StreamPairs(db *leveldb.DB, name string) (*PairStream, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	has, err := db.Has(mapInfoPrefix(name), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error checking map info")
	}
	if !has {
		return nil, errors.Wrapf(leveldb.ErrNotFound, "no maps named %q", name)
	}
	return &PairStream{
		iter: db.NewIterator(pairsRange(name), nil),
		name: name,
	}, nil
}

// LoadMaps reassembles the maps stored under name.
func LoadMaps(db *leveldb.DB, name string) ([][]psbt.Pair, error) {
	info, err := GetMapInfo(db, name)
	if err != nil {
		return nil, err
	}
	stream, err := StreamPairs(db, name)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	maps := make([][]psbt.Pair, info.MapCount)
	for {
		sp, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if sp == nil {
			break
		}
		if sp.MapIndex >= len(maps) {
			return nil, errors.Errorf("stored pair references map %d of %d", sp.MapIndex, len(maps))
		}
		maps[sp.MapIndex] = append(maps[sp.MapIndex], sp.Pair)
	}
	return maps, nil
}

func mustMarshalJSON(in interface{}) []byte {
	out, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	return out
}

func mustUnmarshalJSON(data []byte, in interface{}) {
	if err := json.Unmarshal(data, in); err != nil {
		panic(err)
	}
}
