package expr

// Put writes val at path inside *root, creating intermediate Objects and
// Arrays as needed. Grounded on teacher's util/data.Doc.Set, reworked to
// operate over the typed Value/Path shape instead of dot-strings.
func Put(root *Value, path Path, val Value) {
	if len(path) == 0 {
		*root = val
		return
	}

	part, rest := path[0], path[1:]

	switch part.Kind {

	case PartField:
		if root.Kind != KindObject {
			*root = ObjectOf(NewObject())
		}
		obj := root.Obj()
		child, ok := obj.Get(part.Field)
		if !ok {
			child = None()
		}
		Put(&child, rest, val)
		obj.Set(part.Field, child)

	case PartIndex:
		if root.Kind != KindArray {
			*root = Array(nil)
		}
		arr := root.array
		for len(arr) <= part.Index {
			arr = append(arr, None())
		}
		child := arr[part.Index]
		Put(&child, rest, val)
		arr[part.Index] = child
		root.array = arr

	case PartFirst:
		if root.Kind != KindArray {
			*root = Array(nil)
		}
		if len(root.array) == 0 {
			root.array = append(root.array, None())
		}
		child := root.array[0]
		Put(&child, rest, val)
		root.array[0] = child

	case PartLast:
		if root.Kind != KindArray {
			*root = Array(nil)
		}
		if len(root.array) == 0 {
			root.array = append(root.array, None())
		}
		last := len(root.array) - 1
		child := root.array[last]
		Put(&child, rest, val)
		root.array[last] = child

	case PartAll:
		if root.Kind != KindArray {
			*root = Array(nil)
		}
		for i := range root.array {
			child := root.array[i]
			Put(&child, rest, val)
			root.array[i] = child
		}
	}
}
