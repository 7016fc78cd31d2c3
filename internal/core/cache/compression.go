package cache

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"

	json "github.com/goccy/go-json"
)

// Compressed is the columnar form of a homogeneous record array:
// field names are stored once and every row keeps only its values.
type Compressed struct {
	Compressed   bool                `json:"compressed"`
	Keys         []string            `json:"keys"`
	Values       [][]json.RawMessage `json:"values"`
	OriginalSize int                 `json:"original_size"`

	sourceType reflect.Type
}

// errLossyRestore marks payloads whose columnar form would not restore to an equal value
var errLossyRestore = stderrors.New("columnar form does not restore the original value")

// compact restructures data when it is a slice of uniformly shaped records
// whose serialized form exceeds threshold. The second result is false when
// data should be stored as is. Payloads carrying anything JSON cannot
// round-trip (json:"-" or unexported fields, interface values such as int)
// fail with errLossyRestore.
func compact(data interface{}, threshold int) (*Compressed, bool, error) {
	if data == nil {
		return nil, false, nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false, nil
	}
	if rv.Len() == 0 {
		return nil, false, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("serialize payload: %w", err)
	}
	if len(raw) <= threshold {
		return nil, false, nil
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		// Elements are not objects, nothing to restructure.
		return nil, false, nil
	}

	keys := recordKeys(records[0])
	if len(keys) == 0 {
		return nil, false, nil
	}

	values := make([][]json.RawMessage, 0, len(records))
	for _, record := range records {
		if len(record) != len(keys) {
			return nil, false, nil
		}
		row := make([]json.RawMessage, len(keys))
		for i, k := range keys {
			v, ok := record[k]
			if !ok {
				return nil, false, nil
			}
			row[i] = v
		}
		values = append(values, row)
	}

	compressed := &Compressed{
		Compressed:   true,
		Keys:         keys,
		Values:       values,
		OriginalSize: len(raw),
		sourceType:   rv.Type(),
	}

	restored, err := compressed.expand()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", errLossyRestore, err)
	}
	if !reflect.DeepEqual(restored, data) {
		return nil, false, errLossyRestore
	}
	return compressed, true, nil
}

// expand rebuilds a value of the original type from the columnar form
func (c *Compressed) expand() (interface{}, error) {
	if c.sourceType == nil {
		return nil, fmt.Errorf("compressed payload has no source type")
	}

	records := make([]map[string]json.RawMessage, 0, len(c.Values))
	for _, row := range c.Values {
		if len(row) != len(c.Keys) {
			return nil, fmt.Errorf("row has %d values for %d keys", len(row), len(c.Keys))
		}
		record := make(map[string]json.RawMessage, len(c.Keys))
		for i, k := range c.Keys {
			record[k] = row[i]
		}
		records = append(records, record)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("serialize records: %w", err)
	}

	target := reflect.New(c.sourceType)
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		return nil, fmt.Errorf("restore %s: %w", c.sourceType, err)
	}
	return target.Elem().Interface(), nil
}

// compactedSize is the serialized size of the columnar form
func (c *Compressed) compactedSize() int {
	raw, err := json.Marshal(c)
	if err != nil {
		return 0
	}
	return len(raw)
}

func recordKeys(record map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
