package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"

	"github.com/promagg/promagg"
)

var gzipMagic = []byte{0x1f, 0x8b}

// IsCompressed reports whether payload starts with the gzip header.
func IsCompressed(payload []byte) bool {
	return bytes.HasPrefix(payload, gzipMagic)
}

// Decode parses a datagram payload as produced by the client. A gzip payload is
// decompressed first. Numbers with a fraction or exponent decode as promagg.Float,
// other numbers as promagg.Int.
func Decode(payload []byte) (*promagg.Observation, error) {
	if IsCompressed(payload) {
		r, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("error reading gzip header: %v", err)
		}
		payload, err = ioutil.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error decompressing payload: %v", err)
		}
	}

	iter := jsonConfig.BorrowIterator(payload)
	defer jsonConfig.ReturnIterator(iter)

	o := &promagg.Observation{}
	var seenName, seenValue bool
	iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
		switch field {
		case fieldName:
			o.Name = iter.ReadString()
			seenName = true
		case fieldValue:
			o.Value = readValue(iter)
			seenValue = true
		case fieldLabels:
			o.Labels = readLabels(iter)
		default:
			iter.Skip()
		}
		return iter.Error == nil
	})
	if iter.Error != nil {
		return nil, fmt.Errorf("error decoding observation: %v", iter.Error)
	}
	if !seenName {
		return nil, errors.New("observation has no name")
	}
	if !seenValue {
		return nil, errors.New("observation has no value")
	}
	if o.Labels == nil {
		o.Labels = promagg.Labels{}
	}
	return o, nil
}

func readValue(iter *jsoniter.Iterator) promagg.Value {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return promagg.String(iter.ReadString())
	case jsoniter.NumberValue:
		n := string(iter.ReadNumber())
		if !strings.ContainsAny(n, ".eE") {
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return promagg.Int(i)
			}
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			iter.ReportError("readValue", "invalid number "+n)
			return nil
		}
		return promagg.Float(f)
	default:
		iter.ReportError("readValue", "value must be a number or a string")
		return nil
	}
}

func readLabels(iter *jsoniter.Iterator) promagg.Labels {
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		return promagg.Labels{}
	}
	labels := promagg.Labels{}
	iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
		if iter.WhatIsNext() != jsoniter.StringValue {
			iter.ReportError("readLabels", "label "+key+" must be a string")
			return false
		}
		labels[key] = iter.ReadString()
		return true
	})
	return labels
}
