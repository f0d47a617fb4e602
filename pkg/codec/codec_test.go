package codec

import (
	"bytes"
	"io/ioutil"
	"math"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promagg/promagg"
)

func TestEncode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		o        *promagg.Observation
		expected string
	}{
		{
			name:     "float",
			o:        promagg.NewObservation("cpu.load", promagg.Float(0.42), promagg.Labels{"host": "a"}),
			expected: `{"name":"cpu.load","value":0.42,"labels":{"host":"a"}}`,
		},
		{
			name:     "integral float keeps fraction",
			o:        promagg.NewObservation("x", promagg.Float(2), nil),
			expected: `{"name":"x","value":2.0,"labels":{}}`,
		},
		{
			name:     "int",
			o:        promagg.NewObservation("x", promagg.Int(1), nil),
			expected: `{"name":"x","value":1,"labels":{}}`,
		},
		{
			name:     "string",
			o:        promagg.NewObservation("state", promagg.String("up"), nil),
			expected: `{"name":"state","value":"up","labels":{}}`,
		},
		{
			name:     "nil labels",
			o:        &promagg.Observation{Name: "x", Value: promagg.Int(1)},
			expected: `{"name":"x","value":1,"labels":{}}`,
		},
		{
			name:     "labels are sorted",
			o:        promagg.NewObservation("x", promagg.Int(-3), promagg.Labels{"b": "2", "a": "1"}),
			expected: `{"name":"x","value":-3,"labels":{"a":"1","b":"2"}}`,
		},
		{
			name:     "no html escaping",
			o:        promagg.NewObservation("a<b>", promagg.String("&"), nil),
			expected: `{"name":"a<b>","value":"&","labels":{}}`,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			data, err := JSONEncoder{}.Encode(tc.o)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(data))
		})
	}
}

func TestEncodeRejectsUnrepresentableValues(t *testing.T) {
	t.Parallel()
	for _, v := range []promagg.Value{
		nil,
		promagg.Float(math.NaN()),
		promagg.Float(math.Inf(1)),
		promagg.Float(math.Inf(-1)),
	} {
		_, err := JSONEncoder{}.Encode(promagg.NewObservation("x", v, nil))
		assert.Error(t, err, "value %v", v)
	}
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()
	for _, o := range []*promagg.Observation{
		promagg.NewObservation("a\xffb", promagg.Int(1), nil),
		promagg.NewObservation("x", promagg.String("\xfe"), nil),
		promagg.NewObservation("x", promagg.Int(1), promagg.Labels{"k\xff": "v"}),
		promagg.NewObservation("x", promagg.Int(1), promagg.Labels{"k": "v\xc3"}),
	} {
		data, err := JSONEncoder{}.Encode(o)
		assert.Error(t, err, "observation %+v", o)
		assert.Nil(t, data)
	}
}

func TestEncodeLabelOrderIsStable(t *testing.T) {
	t.Parallel()
	labels := promagg.Labels{}
	for _, k := range []string{"zone", "host", "az", "env", "b", "a"} {
		labels[k] = k
	}
	first, err := JSONEncoder{}.Encode(promagg.NewObservation("x", promagg.Int(1), labels))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		data, err := JSONEncoder{}.Encode(promagg.NewObservation("x", promagg.Int(1), labels.Copy()))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(data))
	}
}

func TestCompress(t *testing.T) {
	t.Parallel()
	raw := []byte(`{"name":"cpu.load","value":0.42,"labels":{"host":"a"}}`)
	for level := 1; level <= 9; level++ {
		data, err := GzipCompressor{}.Compress(raw, level)
		require.NoError(t, err)
		require.True(t, IsCompressed(data))

		r, err := gzip.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		decompressed, err := ioutil.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, raw, decompressed, "level %d", level)
	}
}

func TestCompressInvalidLevel(t *testing.T) {
	t.Parallel()
	_, err := GzipCompressor{}.Compress([]byte("x"), 42)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	observations := []*promagg.Observation{
		promagg.NewObservation("cpu.load", promagg.Float(0.42), promagg.Labels{"host": "a"}),
		promagg.NewObservation("requests", promagg.Int(math.MaxInt64), promagg.Labels{"a": "b", "c": "d:e"}),
		promagg.NewObservation("big", promagg.Float(1e300), nil),
		promagg.NewObservation("tiny", promagg.Float(-1e-9), nil),
		promagg.NewObservation("whole", promagg.Float(3), nil),
		promagg.NewObservation("state", promagg.String("degraded \"quoted\" ☃"), promagg.Labels{"": ""}),
	}
	for _, o := range observations {
		data, err := JSONEncoder{}.Encode(o)
		require.NoError(t, err)

		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, o, decoded)

		compressed, err := GzipCompressor{}.Compress(data, 5)
		require.NoError(t, err)
		decoded, err = Decode(compressed)
		require.NoError(t, err)
		assert.Equal(t, o, decoded)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		payload  string
		expected *promagg.Observation
	}{
		{
			name:     "key order is irrelevant",
			payload:  `{"labels":{"host":"a"},"value":0.42,"name":"cpu.load"}`,
			expected: promagg.NewObservation("cpu.load", promagg.Float(0.42), promagg.Labels{"host": "a"}),
		},
		{
			name:     "whitespace",
			payload:  `{ "name": "x", "value": 1, "labels": { } }`,
			expected: promagg.NewObservation("x", promagg.Int(1), nil),
		},
		{
			name:     "missing labels",
			payload:  `{"name":"x","value":"v"}`,
			expected: promagg.NewObservation("x", promagg.String("v"), nil),
		},
		{
			name:     "null labels",
			payload:  `{"name":"x","value":1,"labels":null}`,
			expected: promagg.NewObservation("x", promagg.Int(1), nil),
		},
		{
			name:     "unknown keys are skipped",
			payload:  `{"name":"x","value":1,"ts":[1,2,{"a":3}]}`,
			expected: promagg.NewObservation("x", promagg.Int(1), nil),
		},
		{
			name:     "integer overflow falls back to float",
			payload:  `{"name":"x","value":18446744073709551616}`,
			expected: promagg.NewObservation("x", promagg.Float(18446744073709551616), nil),
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o, err := Decode([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, o)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	for _, payload := range []string{
		``,
		`[]`,
		`{"name":"x"}`,
		`{"value":1}`,
		`{"name":"x","value":true}`,
		`{"name":"x","value":1,"labels":{"a":1}}`,
		`{"name":"x","value":1`,
		"\x1f\x8bnot really gzip",
	} {
		_, err := Decode([]byte(payload))
		assert.Error(t, err, "payload %q", payload)
	}
}
