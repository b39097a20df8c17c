package expr

import "testing"

func TestPickNone(t *testing.T) {
	got := Pick(None(), Path{Field("test")})
	if !got.IsNone() {
		t.Fatalf("expected None, got %v", got.Kind)
	}
}

func TestPickBasic(t *testing.T) {
	obj := NewObject()
	obj.Set("test", Str("value"))
	v := ObjectOf(obj)

	got := Pick(v, Path{Field("test")})
	if got.Kind != KindString || got.Str() != "value" {
		t.Fatalf("expected string 'value', got %#v", got)
	}

	got = Pick(v, Path{Field("missing")})
	if !got.IsNone() {
		t.Fatalf("expected None for missing field, got %v", got.Kind)
	}
}

func TestPickThing(t *testing.T) {
	th := NewThing("person", Str("tobie"))
	v := ThingOf(th)

	if got := Pick(v, Path{Field("tb")}); got.Str() != "person" {
		t.Fatalf("expected tb 'person', got %#v", got)
	}
	if got := Pick(v, Path{Field("id")}); got.Str() != "tobie" {
		t.Fatalf("expected id 'tobie', got %#v", got)
	}
}

func TestPickArray(t *testing.T) {
	v := Array([]Value{Int(1), Int(2), Int(3)})

	if got := Pick(v, Path{First()}); got.Number().Int() != 1 {
		t.Fatalf("expected first 1, got %#v", got)
	}
	if got := Pick(v, Path{Last()}); got.Number().Int() != 3 {
		t.Fatalf("expected last 3, got %#v", got)
	}
	if got := Pick(v, Path{Index(1)}); got.Number().Int() != 2 {
		t.Fatalf("expected index 1 -> 2, got %#v", got)
	}
	if got := Pick(v, Path{Index(9)}); !got.IsNone() {
		t.Fatalf("expected None for out-of-range index, got %v", got.Kind)
	}
}

func TestPickArrayThing(t *testing.T) {
	th := NewThing("person", Str("tobie"))
	v := Array([]Value{ThingOf(th)})

	got := Pick(v, Path{Index(0), Field("tb")})
	if got.Str() != "person" {
		t.Fatalf("expected 'person', got %#v", got)
	}
}

func TestPickArrayField(t *testing.T) {
	a := NewObject()
	a.Set("age", Int(30))
	b := NewObject()
	b.Set("age", Int(40))
	v := Array([]Value{ObjectOf(a), ObjectOf(b)})

	got := Pick(v, Path{Field("age")})
	if got.Kind != KindArray || len(got.Arr()) != 2 {
		t.Fatalf("expected array of 2, got %#v", got)
	}
	if got.Arr()[0].Number().Int() != 30 || got.Arr()[1].Number().Int() != 40 {
		t.Fatalf("unexpected values: %#v", got)
	}
}

func TestPickArrayFields(t *testing.T) {
	mkPerson := func(name string, age int64) Value {
		o := NewObject()
		o.Set("name", Str(name))
		o.Set("age", Int(age))
		return ObjectOf(o)
	}
	v := Array([]Value{mkPerson("tobie", 30), mkPerson("jaime", 40)})

	names := Pick(v, Path{Field("name")})
	if names.Arr()[0].Str() != "tobie" || names.Arr()[1].Str() != "jaime" {
		t.Fatalf("unexpected names: %#v", names)
	}
}

func TestPickArrayFieldsFlat(t *testing.T) {
	// An array of arrays: picking "age" across them should re-apply the
	// same unconsumed path to each nested array, matching pick.rs's
	// map(|v| v.pick(path)) arm, not pick(rest).
	inner1 := NewObject()
	inner1.Set("age", Int(1))
	inner2 := NewObject()
	inner2.Set("age", Int(2))

	v := Array([]Value{
		Array([]Value{ObjectOf(inner1)}),
		Array([]Value{ObjectOf(inner2)}),
	})

	got := Pick(v, Path{Field("age")})
	if got.Kind != KindArray || len(got.Arr()) != 2 {
		t.Fatalf("expected outer array of 2, got %#v", got)
	}
	inner0 := got.Arr()[0]
	if inner0.Kind != KindArray || inner0.Arr()[0].Number().Int() != 1 {
		t.Fatalf("unexpected nested result: %#v", got)
	}
}
