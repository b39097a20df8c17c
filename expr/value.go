// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expr implements the recursive tagged value that flows through
// the query execution core, and the path primitives (pick/inc/put) used
// to read and write it.
package expr

import (
	"time"

	"github.com/google/uuid"
)

// Kind tags the variant a Value currently holds. Value is a closed sum
// type: dispatch on Kind with a switch, never with an interface method
// set, matching how the rest of this module's enums behave.
type Kind int

const (
	KindNone Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindBytes
	KindDatetime
	KindDuration
	KindUuid
	KindArray
	KindObject
	KindThing
	KindEdges
	KindRange
	KindGeometry
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDatetime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindUuid:
		return "uuid"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindThing:
		return "thing"
	case KindEdges:
		return "edges"
	case KindRange:
		return "range"
	case KindGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// Value is the single recursive value type used throughout pick/inc/put,
// the iterator pipeline, and document processing. Only the fields for
// the current Kind are meaningful; the rest are left zero.
type Value struct {
	Kind Kind

	boolv    bool
	num      Number
	str      string
	bytes    []byte
	datetime time.Time
	duration time.Duration
	uid      uuid.UUID
	array    []Value
	object   *Object
	thing    *Thing
	edges    *Edges
	rng      *Range
	geo      *Geometry
}

// None represents an absent value (distinct from SQL NULL), matching the
// distinction spec.md draws between "no value present" and "explicit null".
func None() Value { return Value{Kind: KindNone} }

// Null constructs an explicit null value.
func Null() Value { return Value{Kind: KindNull} }

func Bool(b bool) Value { return Value{Kind: KindBool, boolv: b} }

func Int(i int64) Value { return Value{Kind: KindNumber, num: Number{i: i}} }

func Float(f float64) Value { return Value{Kind: KindNumber, num: Number{isFloat: true, f: f}} }

func Num(n Number) Value { return Value{Kind: KindNumber, num: n} }

func Str(s string) Value { return Value{Kind: KindString, str: s} }

func Bytes(b []byte) Value { return Value{Kind: KindBytes, bytes: b} }

func Datetime(t time.Time) Value { return Value{Kind: KindDatetime, datetime: t} }

func Duration(d time.Duration) Value { return Value{Kind: KindDuration, duration: d} }

func Uuid(u uuid.UUID) Value { return Value{Kind: KindUuid, uid: u} }

func Array(vs []Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{Kind: KindArray, array: vs}
}

func ObjectOf(o *Object) Value { return Value{Kind: KindObject, object: o} }

func ThingOf(t *Thing) Value { return Value{Kind: KindThing, thing: t} }

func EdgesOf(e *Edges) Value { return Value{Kind: KindEdges, edges: e} }

func RangeOf(r *Range) Value { return Value{Kind: KindRange, rng: r} }

func GeometryOf(g *Geometry) Value { return Value{Kind: KindGeometry, geo: g} }

// IsNone reports whether v is the absent-value variant.
func (v Value) IsNone() bool { return v.Kind == KindNone }

// IsNullOrNone reports whether v carries no meaningful data at all, the
// condition pick.rs treats as "nothing found" throughout.
func (v Value) IsNullOrNone() bool { return v.Kind == KindNone || v.Kind == KindNull }

func (v Value) Bool() bool { return v.boolv }

func (v Value) Number() Number { return v.num }

func (v Value) Str() string { return v.str }

func (v Value) Bytes() []byte { return v.bytes }

func (v Value) Time() time.Time { return v.datetime }

func (v Value) Dur() time.Duration { return v.duration }

func (v Value) UUID() uuid.UUID { return v.uid }

// Arr returns the backing array slice. Mutating it mutates v's storage;
// callers that need a copy should clone first.
func (v Value) Arr() []Value { return v.array }

func (v Value) Obj() *Object { return v.object }

func (v Value) Thing() *Thing { return v.thing }

func (v Value) EdgesVal() *Edges { return v.edges }

func (v Value) RangeVal() *Range { return v.rng }

func (v Value) Geo() *Geometry { return v.geo }

// Clone makes a deep copy so callers can mutate the result without
// aliasing the source document, matching the copy-on-write posture
// teacher's util/data.Doc.Copy uses before handing data to a new document.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindArray:
		cp := make([]Value, len(v.array))
		for i, e := range v.array {
			cp[i] = e.Clone()
		}
		return Array(cp)
	case KindObject:
		return ObjectOf(v.object.Clone())
	default:
		return v
	}
}

// Equal performs a structural comparison, the only comparison this
// package supports (no operator-overload comparisons, matching the
// "variant match, not dynamic dispatch" design for this sum type).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNone, KindNull:
		return true
	case KindBool:
		return v.boolv == o.boolv
	case KindNumber:
		return v.num.Equal(o.num)
	case KindString:
		return v.str == o.str
	case KindBytes:
		return string(v.bytes) == string(o.bytes)
	case KindDatetime:
		return v.datetime.Equal(o.datetime)
	case KindDuration:
		return v.duration == o.duration
	case KindUuid:
		return v.uid == o.uid
	case KindArray:
		if len(v.array) != len(o.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(o.array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.object.Equal(o.object)
	case KindThing:
		return v.thing.Equal(o.thing)
	case KindEdges:
		return v.edges.Equal(o.edges)
	case KindRange:
		return v.rng.Equal(o.rng)
	case KindGeometry:
		return v.geo.Equal(o.geo)
	}
	return false
}
