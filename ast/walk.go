package ast

// Walk visits blocks depth-first in document order. If fn returns false the
// children of that block are skipped. List items are visited as blocks.
func Walk(blocks []Block, fn func(Block) bool) {
	for _, b := range blocks {
		walk(b, fn)
	}
}

func walk(b Block, fn func(Block) bool) {
	if !fn(b) {
		return
	}
	switch n := b.(type) {
	case *Blockquote:
		Walk(n.Children, fn)
	case *UnorderedList:
		for _, item := range n.Items {
			walk(item, fn)
		}
	case *OrderedList:
		for _, item := range n.Items {
			walk(item, fn)
		}
	case *ListItem:
		Walk(n.Children, fn)
	}
}

// FirstHeader returns the text of the first header of the given level found
// by Walk, or "" if there is none. Level 0 matches any level.
func FirstHeader(blocks []Block, level int) string {
	var found string
	Walk(blocks, func(b Block) bool {
		if found != "" {
			return false
		}
		if h, ok := b.(*Header); ok && (level == 0 || h.Level == level) {
			found = h.Text
			return false
		}
		return true
	})
	return found
}
