// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// Conversion runs in stages:
//   - Markdown preprocessing (line ending normalization)
//   - Block parsing: lines to a tree of ast.Block values
//   - HTML rendering: a depth-first walk of the block tree that runs the
//     inline parser over each text-bearing block and emits an HTML fragment
//
// The block parser never calls the inline parser. Paragraph and header text is
// kept raw in the tree and resolved at render time, so the tree stays a pure
// description of document structure.
//
// Neither parser reports syntax errors. Every construct that cannot be
// completed degrades to a lower-priority rule, ultimately a paragraph or plain
// text. The only reported condition is nesting beyond Config.MaxDepth, which
// is passed to Config.Warn as an error wrapping ErrNestingTooDeep.
package pipeline
