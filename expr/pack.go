package expr

import (
	"time"

	"github.com/google/uuid"
	"github.com/ugorji/go/codec"
)

var handle = new(codec.CborHandle)

// toNative lowers a Value into the plain interface{} shape ugorji/go/codec
// knows how to encode, grounded on teacher's util/pack wrapping the same
// library over util/data.Doc's already-plain interface{} documents.
func toNative(v Value) interface{} {
	switch v.Kind {
	case KindNone, KindNull:
		return nil
	case KindBool:
		return v.Bool()
	case KindNumber:
		if v.Number().IsFloat() {
			return v.Number().Float()
		}
		return v.Number().Int()
	case KindString:
		return v.Str()
	case KindBytes:
		return v.Bytes()
	case KindDatetime:
		return v.Time()
	case KindDuration:
		return v.Dur()
	case KindUuid:
		return v.UUID().String()
	case KindArray:
		out := make([]interface{}, len(v.Arr()))
		for i, e := range v.Arr() {
			out[i] = toNative(e)
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, v.Obj().Len())
		for _, k := range v.Obj().Keys() {
			e, _ := v.Obj().Get(k)
			out[k] = toNative(e)
		}
		return out
	case KindThing:
		return v.Thing().String()
	default:
		return nil
	}
}

func fromNative(n interface{}) Value {
	switch t := n.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int64:
		return Int(t)
	case uint64:
		return Int(int64(t))
	case int:
		return Int(int64(t))
	case float64:
		return Float(t)
	case string:
		return Str(t)
	case []byte:
		return Bytes(t)
	case time.Time:
		return Datetime(t)
	case time.Duration:
		return Duration(t)
	case []interface{}:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = fromNative(e)
		}
		return Array(out)
	case map[string]interface{}:
		obj := NewObject()
		for k, e := range t {
			obj.Set(k, fromNative(e))
		}
		return ObjectOf(obj)
	case map[interface{}]interface{}:
		obj := NewObject()
		for k, e := range t {
			if ks, ok := k.(string); ok {
				obj.Set(ks, fromNative(e))
			}
		}
		return ObjectOf(obj)
	default:
		return None()
	}
}

// Encode serializes v to wire bytes using a CBOR-ish codec, matching
// teacher's util/pack role over ugorji/go/codec.
func Encode(v Value) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, handle)
	if err := enc.Encode(toNative(v)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decode deserializes wire bytes produced by Encode back into a Value.
func Decode(b []byte) (Value, error) {
	if len(b) == 0 {
		return None(), nil
	}
	var out interface{}
	dec := codec.NewDecoderBytes(b, handle)
	if err := dec.Decode(&out); err != nil {
		return Value{}, err
	}
	return fromNative(out), nil
}

// NewUUID generates a random v4 UUID value, used by the Uuid value kind.
func NewUUID() Value {
	return Uuid(uuid.New())
}
