package codec

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/promagg/promagg"
)

const (
	fieldName   = "name"
	fieldValue  = "value"
	fieldLabels = "labels"
)

// JSONEncoder writes observations as compact JSON objects with the keys name, value and labels.
type JSONEncoder struct{}

var _ Encoder = JSONEncoder{}

// Encode implements Encoder. Strings that are not valid UTF-8 are rejected.
func (JSONEncoder) Encode(o *promagg.Observation) ([]byte, error) {
	if err := checkUTF8(o); err != nil {
		return nil, err
	}
	buf := buffers.Get()
	stream := jsonConfig.BorrowStream(buf)
	defer jsonConfig.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField(fieldName)
	stream.WriteString(o.Name)
	stream.WriteMore()
	stream.WriteObjectField(fieldValue)
	if err := writeValue(stream, o.Value); err != nil {
		buffers.Put(buf)
		return nil, err
	}
	stream.WriteMore()
	stream.WriteObjectField(fieldLabels)
	writeLabels(stream, o.Labels)
	stream.WriteObjectEnd()

	if err := stream.Flush(); err != nil {
		buffers.Put(buf)
		return nil, fmt.Errorf("error encoding observation %q: %v", o.Name, err)
	}
	return buffers.Detach(buf), nil
}

func checkUTF8(o *promagg.Observation) error {
	if !utf8.ValidString(o.Name) {
		return fmt.Errorf("name %q is not valid UTF-8", o.Name)
	}
	if s, ok := o.Value.(promagg.String); ok && !utf8.ValidString(string(s)) {
		return fmt.Errorf("value %q of %q is not valid UTF-8", string(s), o.Name)
	}
	for k, v := range o.Labels {
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			return fmt.Errorf("label %q=%q of %q is not valid UTF-8", k, v, o.Name)
		}
	}
	return nil
}

func writeValue(stream *jsoniter.Stream, v promagg.Value) error {
	switch v := v.(type) {
	case promagg.Int:
		stream.WriteInt64(int64(v))
	case promagg.Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("unsupported value %v: not representable in JSON", f)
		}
		stream.WriteRaw(formatFloat(f))
	case promagg.String:
		stream.WriteString(string(v))
	case nil:
		return errors.New("value is missing")
	default:
		// Unreachable while Value is sealed.
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

// formatFloat keeps a fraction or exponent on every float so the receiver can tell it from an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// writeLabels sorts keys so identical observations always produce identical payloads.
func writeLabels(stream *jsoniter.Stream, labels promagg.Labels) {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stream.WriteObjectStart()
	for i, k := range keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteString(labels[k])
	}
	stream.WriteObjectEnd()
}
