package repositories

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix = "post:"
	ConfigKey     = "config"

	// Sequence keys for the id counters
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

// postKey zero-pads the id so that Badger's lexicographic order matches id order.
func postKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", PostKeyPrefix, id))
}

func encodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeUint64(val []byte) (uint64, error) {
	if len(val) != 8 {
		return 0, fmt.Errorf("invalid sequence value length %d", len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

func parsePostKey(key []byte) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(string(key), PostKeyPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post key %q: %w", key, err)
	}
	return id, nil
}
