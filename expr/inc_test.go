package expr

import "testing"

func TestIncrementNone(t *testing.T) {
	obj := NewObject()
	v := ObjectOf(obj)

	Inc(&v, Path{Field("test")}, Int(10))

	got := Pick(v, Path{Field("test")})
	if got.Number().Int() != 10 {
		t.Fatalf("expected 10, got %#v", got)
	}
}

func TestIncrementNumber(t *testing.T) {
	obj := NewObject()
	obj.Set("test", Int(10))
	v := ObjectOf(obj)

	Inc(&v, Path{Field("test")}, Int(10))

	got := Pick(v, Path{Field("test")})
	if got.Number().Int() != 20 {
		t.Fatalf("expected 20, got %#v", got)
	}
}

func TestIncrementArrayNumber(t *testing.T) {
	obj := NewObject()
	obj.Set("test", Array([]Value{Int(1), Int(2)}))
	v := ObjectOf(obj)

	Inc(&v, Path{Field("test")}, Int(3))

	got := Pick(v, Path{Field("test")})
	if len(got.Arr()) != 3 || got.Arr()[2].Number().Int() != 3 {
		t.Fatalf("expected [1,2,3], got %#v", got)
	}
}

func TestIncrementArrayValue(t *testing.T) {
	obj := NewObject()
	obj.Set("test", Array([]Value{Str("one")}))
	v := ObjectOf(obj)

	Inc(&v, Path{Field("test")}, Str("two"))
	Inc(&v, Path{Field("test")}, Str("one")) // append is unconditional, duplicates included

	got := Pick(v, Path{Field("test")})
	if len(got.Arr()) != 3 {
		t.Fatalf("expected 3 elements, got %#v", got)
	}
	if got.Arr()[0].Str() != "one" || got.Arr()[1].Str() != "two" || got.Arr()[2].Str() != "one" {
		t.Fatalf("unexpected content: %#v", got)
	}
}

func TestIncrementArrayArray(t *testing.T) {
	obj := NewObject()
	obj.Set("test", Array([]Value{Str("one")}))
	v := ObjectOf(obj)

	Inc(&v, Path{Field("test")}, Array([]Value{Str("one"), Str("two")}))

	got := Pick(v, Path{Field("test")})
	if len(got.Arr()) != 3 {
		t.Fatalf("expected ['one','one','two'], got %#v", got)
	}
	if got.Arr()[0].Str() != "one" || got.Arr()[1].Str() != "one" || got.Arr()[2].Str() != "two" {
		t.Fatalf("unexpected content: %#v", got)
	}
}
