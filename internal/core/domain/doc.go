// Package domain contains the core types of the quill writing engine:
// persisted content blocks, the section view-model projected from them,
// and the zoom range describing a focused subtree.
//
// The package has no infrastructure imports. Blocks are the durable source
// of truth for order and heading level; sections are a disposable cache
// owned by the synchronization coordinator and rebuilt from blocks after
// any store-mutating operation.
package domain
