package knn

import (
	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/index/bruteforce"
	"github.com/viant/knn-digits/index/vptree"
)

// IndexFactory resolves an index kind, as parsed by index.ParseKind, to its
// implementation.
func IndexFactory(kind index.Kind) index.Factory {
	if kind == index.KindVPTree {
		return vptree.New
	}
	return bruteforce.New
}
