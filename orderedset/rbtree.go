package orderedset

// The tree half of the set: a standard red-black tree (Cormen, Leiserson,
// Rivest & Stein) addressed by the stable ids allocated in
// orderedset.go, rather than raw pointers. invalidIndex stands in for
// the CLRS sentinel T.nil; isRed/setRed treat it as an immutable black
// leaf.

func (s *Set[V]) isRed(id int) bool {
	return id != invalidIndex && s.nodes[id].red
}

func (s *Set[V]) setRed(id int, red bool) {
	if id != invalidIndex {
		s.nodes[id].red = red
	}
}

func (s *Set[V]) rotateLeft(x int) {
	y := s.nodes[x].right
	s.nodes[x].right = s.nodes[y].left
	if s.nodes[y].left != invalidIndex {
		s.nodes[s.nodes[y].left].parent = x
	}
	s.nodes[y].parent = s.nodes[x].parent
	if s.nodes[x].parent == invalidIndex {
		s.root = y
	} else if x == s.nodes[s.nodes[x].parent].left {
		s.nodes[s.nodes[x].parent].left = y
	} else {
		s.nodes[s.nodes[x].parent].right = y
	}
	s.nodes[y].left = x
	s.nodes[x].parent = y
}

func (s *Set[V]) rotateRight(x int) {
	y := s.nodes[x].left
	s.nodes[x].left = s.nodes[y].right
	if s.nodes[y].right != invalidIndex {
		s.nodes[s.nodes[y].right].parent = x
	}
	s.nodes[y].parent = s.nodes[x].parent
	if s.nodes[x].parent == invalidIndex {
		s.root = y
	} else if x == s.nodes[s.nodes[x].parent].left {
		s.nodes[s.nodes[x].parent].left = y
	} else {
		s.nodes[s.nodes[x].parent].right = y
	}
	s.nodes[y].right = x
	s.nodes[x].parent = y
}

func (s *Set[V]) treeInsert(id int) {
	v := s.values[id]
	parent := invalidIndex
	cursor := s.root
	for cursor != invalidIndex {
		parent = cursor
		if v < s.values[cursor] {
			cursor = s.nodes[cursor].left
		} else {
			cursor = s.nodes[cursor].right
		}
	}

	s.nodes[id] = rbNode{parent: parent, left: invalidIndex, right: invalidIndex, red: true}
	if parent == invalidIndex {
		s.root = id
	} else if v < s.values[parent] {
		s.nodes[parent].left = id
	} else {
		s.nodes[parent].right = id
	}

	s.insertFixup(id)
}

func (s *Set[V]) insertFixup(z int) {
	for s.nodes[z].parent != invalidIndex && s.isRed(s.nodes[z].parent) {
		p := s.nodes[z].parent
		g := s.nodes[p].parent
		if p == s.nodes[g].left {
			u := s.nodes[g].right
			if s.isRed(u) {
				s.setRed(p, false)
				s.setRed(u, false)
				s.setRed(g, true)
				z = g
			} else {
				if z == s.nodes[p].right {
					z = p
					s.rotateLeft(z)
					p = s.nodes[z].parent
					g = s.nodes[p].parent
				}
				s.setRed(p, false)
				s.setRed(g, true)
				s.rotateRight(g)
			}
		} else {
			u := s.nodes[g].left
			if s.isRed(u) {
				s.setRed(p, false)
				s.setRed(u, false)
				s.setRed(g, true)
				z = g
			} else {
				if z == s.nodes[p].left {
					z = p
					s.rotateRight(z)
					p = s.nodes[z].parent
					g = s.nodes[p].parent
				}
				s.setRed(p, false)
				s.setRed(g, true)
				s.rotateLeft(g)
			}
		}
	}
	s.setRed(s.root, false)
}

func (s *Set[V]) transplant(u, v int) {
	pu := s.nodes[u].parent
	if pu == invalidIndex {
		s.root = v
	} else if u == s.nodes[pu].left {
		s.nodes[pu].left = v
	} else {
		s.nodes[pu].right = v
	}
	if v != invalidIndex {
		s.nodes[v].parent = pu
	}
}

func (s *Set[V]) treeMinimum(x int) int {
	for s.nodes[x].left != invalidIndex {
		x = s.nodes[x].left
	}
	return x
}

func (s *Set[V]) treeDelete(z int) {
	y := z
	yOriginalRed := s.isRed(y)
	var x, xParent int

	switch {
	case s.nodes[z].left == invalidIndex:
		x = s.nodes[z].right
		xParent = s.nodes[z].parent
		s.transplant(z, x)
	case s.nodes[z].right == invalidIndex:
		x = s.nodes[z].left
		xParent = s.nodes[z].parent
		s.transplant(z, x)
	default:
		y = s.treeMinimum(s.nodes[z].right)
		yOriginalRed = s.isRed(y)
		x = s.nodes[y].right
		if s.nodes[y].parent == z {
			xParent = y
		} else {
			xParent = s.nodes[y].parent
			s.transplant(y, x)
			s.nodes[y].right = s.nodes[z].right
			s.nodes[s.nodes[y].right].parent = y
		}
		s.transplant(z, y)
		s.nodes[y].left = s.nodes[z].left
		s.nodes[s.nodes[y].left].parent = y
		s.nodes[y].red = s.nodes[z].red
	}

	if !yOriginalRed {
		s.deleteFixup(x, xParent)
	}
}

func (s *Set[V]) deleteFixup(x, xParent int) {
	for x != s.root && !s.isRed(x) {
		if xParent == invalidIndex {
			break
		}
		if x == s.nodes[xParent].left {
			w := s.nodes[xParent].right
			if s.isRed(w) {
				s.setRed(w, false)
				s.setRed(xParent, true)
				s.rotateLeft(xParent)
				w = s.nodes[xParent].right
			}
			if !s.isRed(s.nodes[w].left) && !s.isRed(s.nodes[w].right) {
				s.setRed(w, true)
				x = xParent
				xParent = s.nodes[x].parent
			} else {
				if !s.isRed(s.nodes[w].right) {
					s.setRed(s.nodes[w].left, false)
					s.setRed(w, true)
					s.rotateRight(w)
					w = s.nodes[xParent].right
				}
				s.setRed(w, s.isRed(xParent))
				s.setRed(xParent, false)
				s.setRed(s.nodes[w].right, false)
				s.rotateLeft(xParent)
				x = s.root
				xParent = invalidIndex
			}
		} else {
			w := s.nodes[xParent].left
			if s.isRed(w) {
				s.setRed(w, false)
				s.setRed(xParent, true)
				s.rotateRight(xParent)
				w = s.nodes[xParent].left
			}
			if !s.isRed(s.nodes[w].left) && !s.isRed(s.nodes[w].right) {
				s.setRed(w, true)
				x = xParent
				xParent = s.nodes[x].parent
			} else {
				if !s.isRed(s.nodes[w].left) {
					s.setRed(s.nodes[w].right, false)
					s.setRed(w, true)
					s.rotateLeft(w)
					w = s.nodes[xParent].left
				}
				s.setRed(w, s.isRed(xParent))
				s.setRed(xParent, false)
				s.setRed(s.nodes[w].left, false)
				s.rotateRight(xParent)
				x = s.root
				xParent = invalidIndex
			}
		}
	}
	s.setRed(x, false)
}
