package domain

import (
	"bytes"
	"encoding/json"
	"sort"
)

// appendExtras splices extra key/value pairs into a marshaled JSON object,
// after the canonical keys. Keys are emitted in sorted order so output is
// deterministic.
func appendExtras(obj []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj = bytes.TrimSpace(obj)
	var buf bytes.Buffer
	buf.Write(obj[:len(obj)-1]) // drop closing brace, re-added below
	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
