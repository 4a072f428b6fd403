package tupledict_test

import (
	"errors"
	"fmt"

	"github.com/locker/tarantool/namehash"
	"github.com/locker/tarantool/tupledict"
)

func Example() {
	d, err := tupledict.New([]string{"id", "name", "age"})
	if err != nil {
		panic(err)
	}
	defer d.Unref()

	h := d.NameHash()
	no, ok := d.FieldNo("name", h("name"))
	fmt.Println(no, ok)

	_, ok = d.FieldNo("missing", h("missing"))
	fmt.Println(ok)
	// Output:
	// 1 true
	// false
}

func ExampleNew_duplicate() {
	_, err := tupledict.New([]string{"id", "id"})
	fmt.Println(err)
	fmt.Println(errors.Is(err, tupledict.ErrDuplicateField))
	// Output:
	// space field 'id' is duplicate
	// true
}

func ExampleSwap() {
	// A format and an index share one dictionary.
	shared, _ := tupledict.New([]string{"id", "name"})
	shared.Ref()

	// ALTER builds the new names and swaps them in.
	fresh, _ := tupledict.New([]string{"id", "name", "email"})
	tupledict.Swap(shared, fresh)
	fresh.Unref()

	fmt.Println(shared, shared.Refs())

	shared.Unref()
	shared.Unref()
	// Output:
	// {id, name, email} 2
}

func ExampleDictionary_HashProcess() {
	d, _ := tupledict.New([]string{"id", "name"})
	defer d.Unref()

	st := namehash.NewState(namehash.DefaultSeed)
	size := d.HashProcess(&st)
	fmt.Println(size, st.Sum(size) == namehash.Sum32(namehash.DefaultSeed, []byte("idname")))
	// Output:
	// 6 true
}
