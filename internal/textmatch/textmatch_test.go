package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains_WordBoundary(t *testing.T) {
	assert.True(t, Contains("experience with go and rust", "go"))
	assert.False(t, Contains("we use google docs", "go"))
	assert.True(t, Contains("machine learning engineer", "machine learning"))
	assert.False(t, Contains("analyze datasets", "data"))
	assert.False(t, Contains("anything", ""))
}

func TestContains_PlainTermBeforeSymbol(t *testing.T) {
	assert.False(t, Contains("c++ developer", "c"))
	assert.False(t, Contains("c# developer", "c"))
	assert.True(t, Contains("c++ and c", "c"))
	assert.Equal(t, 8, Index("c++ and c", "c"))
}

func TestContains_SymbolTerms(t *testing.T) {
	assert.True(t, Contains("c++ and c# developer", "c++"))
	assert.True(t, Contains("c++ and c# developer", "c#"))
	assert.True(t, Contains("skills: node.js, react", "node.js"))
	assert.True(t, Contains("(asp.net)", "asp.net"))
	assert.True(t, Contains("frameworks/.net core", ".net core"))
	assert.False(t, Contains("myc++lib", "c++"))
	assert.False(t, Contains("node.jsx", "node.js"))
}

func TestContains_SymbolTermBeforePunctuation(t *testing.T) {
	assert.True(t, Contains("we love c++!", "c++"))
	assert.True(t, Contains("node.js's event loop", "node.js"))
	assert.True(t, Contains("built with node.js.", "node.js"))
	assert.True(t, Contains("\"c#\" required", "c#"))
	assert.False(t, Contains("c+++ dialect", "c++"))
	assert.False(t, Contains("objc++ bridge", "c++"))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 4, Index("use c++ daily", "c++"))
	assert.Equal(t, 0, Index("python, go", "python"))
	assert.Equal(t, 8, Index("python, go", "go"))
	assert.Equal(t, -1, Index("python", "java"))
	assert.Equal(t, -1, Index("python", ""))
}

func TestIndexAll(t *testing.T) {
	assert.Equal(t, []int{0, 11}, IndexAll("python and python", "python"))
	assert.Equal(t, []int{0, 9}, IndexAll("node.js, node.js", "node.js"))
	assert.Empty(t, IndexAll("java", "python"))
	assert.Equal(t, []int{5}, IndexAll("c++, c", "c"))
	assert.Equal(t, []int{0, 4}, IndexAll("c++ c++", "c++"))
	assert.Equal(t, []int{0, 3}, IndexAll("c# c#", "c#"))
	assert.Nil(t, IndexAll("java", ""))
}

func TestPattern_Cached(t *testing.T) {
	assert.Same(t, Pattern("kubernetes"), Pattern("kubernetes"))
}

func TestHasSymbols(t *testing.T) {
	assert.True(t, HasSymbols("c#"))
	assert.True(t, HasSymbols("vue.js"))
	assert.False(t, HasSymbols("tcp/ip"))
	assert.False(t, HasSymbols("spring boot"))
}
