// Package wikigit records converted pages in the destination wiki's git
// working copy. It only commits; pushing is left to the operator.
package wikigit
