// Package dictionary implements the k-ary dictionary tree shared by the
// MultiMMC and LZ78Y predictors: a trie of adaptive hash "pages", each an
// entry table over (symbol, count, child) triples, backed by a pool
// allocator so repeated insert/lookup along common prefixes never touches
// the general-purpose heap.
package dictionary

import "github.com/larkspur-labs/minentropy/pkg/pool"

// maxAlphabet is the largest alphabet size the battery ever operates on
// (k <= 256). Every page's backing entry array is allocated at
// this fixed size and used only up to the page's current modulus; this
// lets one pool of [maxAlphabet]entry blocks serve every page regardless
// of modulus, trading a little memory headroom (at most 256 entries per
// page, each a handful of words) for not needing eight separately-typed
// pools per power-of-two modulus.
const maxAlphabet = 256

type entry struct {
	occupied bool
	symbol   int
	count    int
	child    *page
}

type page struct {
	modulus     int
	backing     *[maxAlphabet]entry
	table       []entry // table = backing[:modulus]
	prefixFound bool
	maxSymbol   int
	maxCount    int
}

// Tree is the dictionary tree root. It owns every page reachable from it;
// there is no shared ownership — parent pages own children, and deletion
// is a post-order traversal returning pool blocks.
type Tree struct {
	k       int
	moduli  []int
	headers *pool.Pool[page]
	tables  *pool.Pool[[maxAlphabet]entry]
	root    *page
}

// New creates an empty dictionary tree over an alphabet of size k.
func New(k int) *Tree {
	t := &Tree{
		k:       k,
		moduli:  moduliSequence(k),
		headers: pool.New[page](),
		tables:  pool.New[[maxAlphabet]entry](),
	}
	t.root = t.newPage()
	return t
}

// moduliSequence builds the fixed increasing sequence of table sizes a
// page's modulus grows through: successive powers of two, capped at and
// always ending exactly at k so the final enlargement is always a direct
// map.
func moduliSequence(k int) []int {
	if k <= 1 {
		return []int{1}
	}
	seq := make([]int, 0, 9)
	m := 2
	for m < k {
		seq = append(seq, m)
		m *= 2
	}
	seq = append(seq, k)
	return seq
}

func (t *Tree) newPage() *page {
	p := t.headers.Get()
	p.backing = t.tables.Get()
	p.modulus = t.moduli[0]
	p.table = p.backing[:p.modulus]
	p.maxSymbol = -1
	p.maxCount = 0
	return p
}

func (t *Tree) freePage(p *page) {
	for i := range p.table {
		if p.table[i].child != nil {
			t.freePage(p.table[i].child)
		}
	}
	t.tables.Put(p.backing)
	t.headers.Put(p)
}

// Close releases every page in the tree back to the pool allocators
// via a post-order traversal.
func (t *Tree) Close() {
	if t.root != nil {
		t.freePage(t.root)
		t.root = nil
	}
}

// slotFor returns the direct-mapped slot index for symbol in a page of
// the given modulus: no probing — collisions are resolved purely by
// growing the table, never by searching past symbol%modulus.
func slotFor(symbol, modulus int) int {
	return symbol % modulus
}

// nextModulus returns the next larger modulus in the sequence after cur,
// or cur itself if cur is already the largest (== k, fully direct-mapped,
// so no further growth is possible or needed).
func (t *Tree) nextModulus(cur int) int {
	for i, m := range t.moduli {
		if m == cur && i+1 < len(t.moduli) {
			return t.moduli[i+1]
		}
	}
	return cur
}

// growPage enlarges p to the next modulus and rehashes its existing
// entries.
func (t *Tree) growPage(p *page) {
	next := t.nextModulus(p.modulus)
	if next == p.modulus {
		return // already at k, maximally direct-mapped
	}
	old := append([]entry(nil), p.table...)
	p.modulus = next
	p.table = p.backing[:p.modulus]
	for i := range p.table {
		p.table[i] = entry{}
	}
	for _, e := range old {
		if e.occupied {
			idx := slotFor(e.symbol, p.modulus)
			p.table[idx] = e
		}
	}
}

// insertOrUpdate finds (or creates) the entry for symbol in p, growing p
// as many times as needed to resolve collisions: if collisions persist at
// the current modulus, the page is promoted to the next modulus in the
// sequence, iterating until modulus == k (fully direct-mapped).
func (t *Tree) insertOrUpdate(p *page, symbol int, create bool) *entry {
	for {
		idx := slotFor(symbol, p.modulus)
		e := &p.table[idx]
		if !e.occupied {
			if !create {
				return nil
			}
			e.occupied = true
			e.symbol = symbol
			e.count = 0
			return e
		}
		if e.symbol == symbol {
			return e
		}
		if p.modulus == t.k {
			// direct-mapped: slotFor is injective, so this branch is
			// unreachable for symbol < k, but guard against growth loops.
			return nil
		}
		t.growPage(p)
	}
}

func (t *Tree) lookup(p *page, symbol int) *entry {
	idx := slotFor(symbol, p.modulus)
	e := &p.table[idx]
	if e.occupied && e.symbol == symbol {
		return e
	}
	return nil
}

func (p *page) updateMax(e *entry) {
	// ties broken by largest symbol value.
	if e.count > p.maxCount || (e.count == p.maxCount && e.symbol >= p.maxSymbol) {
		p.maxCount = e.count
		p.maxSymbol = e.symbol
	}
}

// Increment walks to the page corresponding to prior[0:pLen), creating
// intermediate pages iff createBranches, then increments the entry for
// newSymbol at the leaf page (creating it iff createBranches ||
// !countLeaves), updating maxEntry. It returns whether a new branch page
// had to be created along the walk.
func (t *Tree) Increment(prior []int, pLen int, newSymbol int, createBranches, countLeaves bool) (branched bool) {
	p := t.root
	for i := 0; i < pLen; i++ {
		sym := prior[i]
		e := t.insertOrUpdate(p, sym, createBranches)
		if e == nil {
			return branched
		}
		if e.child == nil {
			if !createBranches {
				return branched
			}
			e.child = t.newPage()
			branched = true
		}
		p = e.child
	}

	create := createBranches || !countLeaves
	e := t.insertOrUpdate(p, newSymbol, create)
	if e == nil {
		return branched
	}
	e.count++
	p.updateMax(e)
	p.prefixFound = true
	return branched
}

// Predict walks to the page for prior[0:pLen) and returns the most
// frequent observed successor there.
func (t *Tree) Predict(prior []int, pLen int) (found bool, maxSymbol int, count int) {
	p := t.root
	for i := 0; i < pLen; i++ {
		e := t.lookup(p, prior[i])
		if e == nil || e.child == nil {
			return false, 0, 0
		}
		p = e.child
	}
	if p.maxSymbol < 0 {
		return false, 0, 0
	}
	return true, p.maxSymbol, p.maxCount
}
