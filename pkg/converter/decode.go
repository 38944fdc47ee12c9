package converter

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const snippetLimit = 256

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// decode maps a loosely typed JSON value onto a provider struct.
// Field names match json tags case-insensitively and scalars are coerced
// (numeric strings to ints, numbers to strings).
func decode(raw interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "build decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return errors.Wrap(err, "decode raw flight")
	}
	return nil
}

// envelope walks nested objects along path and returns the list found there.
// A missing key yields an empty list; a non-list value is an error.
func envelope(payload map[string]interface{}, path ...string) ([]interface{}, error) {
	var cur interface{} = payload
	for i, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("%s is not an object", strings.Join(path[:i], "."))
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, nil
		}
	}
	list, ok := cur.([]interface{})
	if !ok {
		return nil, errors.Errorf("%s is not a list", strings.Join(path, "."))
	}
	return list, nil
}

// snippet renders a raw flight for skip reports, truncated
func snippet(raw interface{}) string {
	b, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	if len(b) <= snippetLimit {
		return string(b)
	}
	return string(b[:snippetLimit]) + "..."
}

// looseNumber reads the first number out of values like 20, "20", "20KG" or "70%".
func looseNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		m := leadingNumber.FindString(n)
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		return f, err == nil
	}
	return 0, false
}

// looseInt is looseNumber rounded, nil when nothing numeric is present
func looseInt(v interface{}) *int {
	f, ok := looseNumber(v)
	if !ok {
		return nil
	}
	i := int(math.Round(f))
	return &i
}

// positiveInt drops zero and negative readings, matching "0 means unknown" feeds
func positiveInt(v interface{}) *int {
	i := looseInt(v)
	if i == nil || *i <= 0 {
		return nil
	}
	return i
}
