package node

import "reflect"

// StructPair is an ordered (source, target) struct type combination.
type StructPair struct{ Src, Dst reflect.Type }

// Dealer is a worklist of struct pairs that still need resolving. A pair is
// handed out at most once; pairs come out in the order they were first
// requested.
type Dealer struct {
	queue []StructPair
	seen  map[StructPair]struct{}
}

// NextNeeds pops the next pending pair.
func (d *Dealer) NextNeeds() (src, dst reflect.Type, ok bool) {
	if len(d.queue) == 0 {
		return
	}

	pair := d.queue[0]
	d.queue = d.queue[1:]

	return pair.Src, pair.Dst, true
}

// Needs schedules a pair unless it was already scheduled or marked done.
func (d *Dealer) Needs(src, dst reflect.Type) {
	pair := StructPair{Src: src, Dst: dst}
	if d.Done(src, dst) {
		d.queue = append(d.queue, pair)
	}
}

// Done marks a pair as handled and reports whether it was new.
func (d *Dealer) Done(src, dst reflect.Type) bool {
	if d.seen == nil {
		d.seen = make(map[StructPair]struct{})
	}

	pair := StructPair{Src: src, Dst: dst}
	if _, exists := d.seen[pair]; exists {
		return false
	}

	d.seen[pair] = struct{}{}

	return true
}

// Pending returns the number of pairs waiting in the queue.
func (d *Dealer) Pending() int {
	return len(d.queue)
}
