package metadata

import (
	"math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"string match", String("ml"), String("ml"), true},
		{"string case sensitive", String("ML"), String("ml"), false},
		{"int match", Int(10), Int(10), true},
		{"int float coercion", Int(2024), Float(2024), true},
		{"float int coercion", Float(2.5), Int(2), false},
		{"bool match", Bool(true), Bool(true), true},
		{"bool vs int", Bool(true), Int(1), false},
		{"string vs int", String("1"), Int(1), false},
		{"null null", Null(), Null(), true},
		{"null vs string", Null(), String(""), false},
		{"array match", Array([]Value{Int(1), String("a")}), Array([]Value{Float(1), String("a")}), true},
		{"array length", Array([]Value{Int(1)}), Array([]Value{Int(1), Int(2)}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "symmetric")
		})
	}
}

func TestCompareNumbers(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Value
		cmp    int
		wantOK bool
	}{
		{"int less", Int(80), Int(100), -1, true},
		{"int greater", Int(150), Int(100), 1, true},
		{"int equal", Int(100), Int(100), 0, true},
		{"float vs int", Float(100.5), Int(100), 1, true},
		{"int vs float equal", Int(3), Float(3), 0, true},
		{"large ints stay exact", Int(math.MaxInt64), Int(math.MaxInt64 - 1), 1, true},
		{"string", String("100"), Int(100), 0, false},
		{"bool", Bool(true), Int(0), 0, false},
		{"nan", Float(math.NaN()), Float(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok := CompareNumbers(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.cmp, cmp)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name             string
		haystack, needle Value
		want             bool
	}{
		{"substring", String("This is a vector database"), String("vector"), true},
		{"substring missing", String("This is a search engine"), String("database"), false},
		{"substring case sensitive", String("Vector"), String("vector"), false},
		{"string vs int needle", String("2024"), Int(2024), false},
		{"array member", Array([]Value{String("ml"), String("ai")}), String("ai"), true},
		{"array numeric member", Array([]Value{Int(1), Int(2)}), Float(2), true},
		{"array missing", Array([]Value{String("ml")}), String("quantum"), false},
		{"int haystack", Int(10), Int(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.haystack, tt.needle))
		})
	}
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, Int(3).Key(), Float(3).Key())
	assert.NotEqual(t, Float(3.5).Key(), Int(3).Key())
	assert.NotEqual(t, String("3").Key(), Int(3).Key())
	assert.NotEqual(t, Bool(true).Key(), Bool(false).Key())
	assert.Equal(t, "a:s:x\x1fn:1", Array([]Value{String("x"), Int(1)}).Key())
}

func TestDocumentClone(t *testing.T) {
	orig := Document{
		"tags": Array([]Value{String("a")}),
		"n":    Int(1),
	}
	clone := orig.Clone()
	clone["tags"].A[0] = String("b")
	clone["n"] = Int(2)

	tags, _ := orig["tags"].AsArray()
	assert.Equal(t, String("a"), tags[0])
	assert.Equal(t, Int(1), orig["n"])

	var nilDoc Document
	assert.Nil(t, nilDoc.Clone())
}

func TestValueMarshalJSON(t *testing.T) {
	b, err := sonic.Marshal(map[string]any{
		"a": String("ml"),
		"b": Int(2024),
		"c": Array([]Value{Bool(true), Float(1.5)}),
		"d": Null(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"ml","b":2024,"c":[true,1.5],"d":null}`, string(b))
}
