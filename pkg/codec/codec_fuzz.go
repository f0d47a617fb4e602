// +build gofuzz

package codec

import (
	"fmt"
	"reflect"
)

func Fuzz(data []byte) int {
	o, err := Decode(data)
	if err != nil {
		return 0
	}
	payload, err := JSONEncoder{}.Encode(o)
	if err != nil {
		// Decoded floats are always finite, so re-encoding can't fail.
		panic(fmt.Errorf("observation %+v: %v", o, err))
	}
	o2, err := Decode(payload)
	if err != nil {
		panic(fmt.Errorf("payload %q: %v", payload, err))
	}
	if !reflect.DeepEqual(o, o2) {
		panic(fmt.Errorf("round trip mismatch:\n%+v\n%+v", o, o2))
	}
	return 1
}
