package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveEquals(t *testing.T) {
	assert.True(t, Equals(TInt, TInt))
	assert.False(t, Equals(TInt, TFloat))
	assert.True(t, Equals(Array{Elem: TInt}, Array{Elem: TInt}))
	assert.False(t, Equals(Array{Elem: TInt}, Array{Elem: TFloat}))
}

func TestClassEqualsByName(t *testing.T) {
	a := &Class{Name: "Animal"}
	b := &Class{Name: "Animal"}
	c := &Class{Name: "Plant"}

	assert.True(t, Equals(a, b))
	assert.False(t, Equals(a, c))
}

func classLookup(classes map[string]*Class) func(string) (*Class, bool) {
	return func(name string) (*Class, bool) {
		c, ok := classes[name]
		return c, ok
	}
}

func TestAssignable(t *testing.T) {
	animal := &Class{Name: "Animal"}
	dog := &Class{Name: "Dog", Parent: "Animal"}
	classes := map[string]*Class{"Animal": animal, "Dog": dog}
	lookup := classLookup(classes)

	assert.True(t, Assignable(TInt, TFloat, lookup))
	assert.False(t, Assignable(TFloat, TInt, lookup))
	assert.True(t, Assignable(TNull, Array{Elem: TInt}, lookup))
	assert.False(t, Assignable(TNull, TInt, lookup))
	assert.True(t, Assignable(dog, animal, lookup))
	assert.False(t, Assignable(animal, dog, lookup))
	assert.True(t, Assignable(dog, dog, lookup))

	// An empty array literal's sentinel element type (Null) must be
	// assignable to any concretely-elemented array type, but arrays are
	// otherwise invariant in their element type.
	assert.True(t, Assignable(Array{Elem: TNull}, Array{Elem: TInt}, lookup))
	assert.True(t, Assignable(Array{Elem: TNull}, Array{Elem: dog}, lookup))
	assert.False(t, Assignable(Array{Elem: TInt}, Array{Elem: TFloat}, lookup))
}

func TestPromoteBinary(t *testing.T) {
	_, result, err := PromoteBinary(TInt, TInt, "+")
	assert.NoError(t, err)
	assert.Equal(t, TInt, result)

	_, result, err = PromoteBinary(TInt, TFloat, "*")
	assert.NoError(t, err)
	assert.Equal(t, TFloat, result)

	_, result, err = PromoteBinary(TString, TInt, "+")
	assert.NoError(t, err)
	assert.Equal(t, TString, result)

	_, _, err = PromoteBinary(TBool, TInt, "*")
	assert.Error(t, err)
}

func TestUnifyRelational(t *testing.T) {
	res, err := UnifyRelational(TInt, TFloat)
	assert.NoError(t, err)
	assert.Equal(t, TBool, res)

	_, err = UnifyRelational(TString, TInt)
	assert.Error(t, err)

	res, err = UnifyRelational(TString, TString)
	assert.NoError(t, err)
	assert.Equal(t, TBool, res)
}

func TestMemberLookupWalksParentChain(t *testing.T) {
	animal := &Class{
		Name:    "Animal",
		Fields:  []Field{{Name: "name", Type: TString}},
		Methods: map[string]FuncSig{"speak": {Return: TVoid}},
	}
	dog := &Class{Name: "Dog", Parent: "Animal", Methods: map[string]FuncSig{}}
	classes := map[string]*Class{"Animal": animal, "Dog": dog}
	lookup := classLookup(classes)

	typ, ok := MemberLookup(dog, "name", lookup)
	assert.True(t, ok)
	assert.Equal(t, TString, typ)

	_, ok = MemberLookup(dog, "nonexistent", lookup)
	assert.False(t, ok)
}

func TestJoin(t *testing.T) {
	lookup := classLookup(map[string]*Class{})

	res, err := Join(TInt, TFloat, lookup)
	assert.NoError(t, err)
	assert.Equal(t, TFloat, res)

	_, err = Join(TBool, TString, lookup)
	assert.Error(t, err)
}
