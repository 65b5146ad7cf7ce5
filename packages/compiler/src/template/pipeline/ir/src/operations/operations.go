package ir_operation

import (
	"fmt"
	"iter"
	"sync/atomic"

	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
)

// XrefId is a branded type for a cross-reference ID
type XrefId int

// ConstIndex is a branded type for a constant index
type ConstIndex int

// Op is the base interface for semantic operations being performed within a template.
// The set of ops is closed: only types embedding OpBase implement it.
type Op interface {
	GetKind() ir.OpKind
	GetPrev() Op
	SetPrev(op Op)
	GetNext() Op
	SetNext(op Op)
	GetDebugListId() *int
	SetDebugListId(id *int)
	isOp()
}

// CreateOp is an operation of a create list that names an entity
type CreateOp interface {
	Op
	GetXref() XrefId
}

// UpdateOp is an operation of an update list that names an entity
type UpdateOp interface {
	Op
	GetXref() XrefId
}

// OpBase holds the list membership of an operation
type OpBase struct {
	prev        Op
	next        Op
	debugListId *int
}

// NewOpBase creates a new OpBase
func NewOpBase() OpBase {
	return OpBase{}
}

func (o *OpBase) isOp() {}

// GetPrev returns the previous operation
func (o *OpBase) GetPrev() Op {
	return o.prev
}

// SetPrev sets the previous operation
func (o *OpBase) SetPrev(op Op) {
	o.prev = op
}

// GetNext returns the next operation
func (o *OpBase) GetNext() Op {
	return o.next
}

// SetNext sets the next operation
func (o *OpBase) SetNext(op Op) {
	o.next = op
}

// GetDebugListId returns the id of the owning list, or nil when unowned
func (o *OpBase) GetDebugListId() *int {
	return o.debugListId
}

// SetDebugListId sets the id of the owning list
func (o *OpBase) SetDebugListId(id *int) {
	o.debugListId = id
}

// ListEndOp is the sentinel used for the head and tail of a list
type ListEndOp struct {
	OpBase
}

// GetKind returns the operation kind
func (l *ListEndOp) GetKind() ir.OpKind {
	return ir.OpKindListEnd
}

var nextListId atomic.Int64

// OpList is a doubly linked list of operations with sentinel head and tail nodes.
//
// Node-relative mutations (InsertBefore, InsertAfter, Remove, Replace,
// ReplaceWithMany) are O(1). Positional forms walk to the index first.
type OpList struct {
	debugListId int
	head        *ListEndOp
	tail        *ListEndOp
}

// NewOpList creates a new, empty OpList
func NewOpList() *OpList {
	listId := int(nextListId.Add(1))
	list := &OpList{
		debugListId: listId,
		head:        &ListEndOp{},
		tail:        &ListEndOp{},
	}
	list.head.debugListId = &list.debugListId
	list.tail.debugListId = &list.debugListId
	list.head.next = list.tail
	list.tail.prev = list.head
	return list
}

// Head returns the sentinel before the first operation
func (l *OpList) Head() Op {
	return l.head
}

// Tail returns the sentinel after the last operation
func (l *OpList) Tail() Op {
	return l.tail
}

// First returns the first operation, or nil if the list is empty
func (l *OpList) First() Op {
	if l.head.next == Op(l.tail) {
		return nil
	}
	return l.head.next
}

// Last returns the last operation, or nil if the list is empty
func (l *OpList) Last() Op {
	if l.tail.prev == Op(l.head) {
		return nil
	}
	return l.tail.prev
}

func (l *OpList) assertIsUnowned(op Op) {
	if op.GetKind() == ir.OpKindListEnd {
		panic("AssertionError: cannot insert a list end node")
	}
	if op.GetDebugListId() != nil {
		panic(fmt.Sprintf("AssertionError: %s op is already owned by list %d", op.GetKind(), *op.GetDebugListId()))
	}
}

func (l *OpList) assertIsOwned(op Op, allowListEnd bool) {
	if !allowListEnd && op.GetKind() == ir.OpKindListEnd {
		panic("AssertionError: cannot mutate a list end node")
	}
	if op.GetDebugListId() == nil || *op.GetDebugListId() != l.debugListId {
		panic(fmt.Sprintf("AssertionError: %s op is not owned by list %d", op.GetKind(), l.debugListId))
	}
}

func (l *OpList) link(op, prev, next Op) {
	op.SetDebugListId(&l.debugListId)
	prev.SetNext(op)
	op.SetPrev(prev)
	op.SetNext(next)
	next.SetPrev(op)
}

func unlink(op Op) {
	prev := op.GetPrev()
	next := op.GetNext()
	prev.SetNext(next)
	next.SetPrev(prev)
	op.SetPrev(nil)
	op.SetNext(nil)
	op.SetDebugListId(nil)
}

// Push adds an operation to the tail of the list
func (l *OpList) Push(op Op) {
	l.assertIsUnowned(op)
	l.link(op, l.tail.prev, l.tail)
}

// Prepend inserts ops, in order, at the head of the list
func (l *OpList) Prepend(ops []Op) {
	for i := len(ops) - 1; i >= 0; i-- {
		l.assertIsUnowned(ops[i])
		l.link(ops[i], l.head, l.head.next)
	}
}

// InsertBefore inserts op directly before the owned op `before`. `before` may be the tail.
func (l *OpList) InsertBefore(op Op, before Op) {
	l.assertIsOwned(before, before == Op(l.tail))
	l.assertIsUnowned(op)
	l.link(op, before.GetPrev(), before)
}

// InsertAfter inserts op directly after the owned op `after`. `after` may be the head.
func (l *OpList) InsertAfter(op Op, after Op) {
	l.assertIsOwned(after, after == Op(l.head))
	l.assertIsUnowned(op)
	l.link(op, after, after.GetNext())
}

// Remove unlinks op from the list
func (l *OpList) Remove(op Op) {
	l.assertIsOwned(op, false)
	unlink(op)
}

// Replace puts newOp in the position of oldOp
func (l *OpList) Replace(oldOp Op, newOp Op) {
	l.assertIsOwned(oldOp, false)
	l.assertIsUnowned(newOp)
	prev, next := oldOp.GetPrev(), oldOp.GetNext()
	unlink(oldOp)
	l.link(newOp, prev, next)
}

// ReplaceWithMany puts newOps, in order, in the position of oldOp. An empty
// slice removes oldOp.
func (l *OpList) ReplaceWithMany(oldOp Op, newOps []Op) {
	l.assertIsOwned(oldOp, false)
	for _, op := range newOps {
		l.assertIsUnowned(op)
	}
	prev, next := oldOp.GetPrev(), oldOp.GetNext()
	unlink(oldOp)
	for _, op := range newOps {
		l.link(op, prev, next)
		prev = op
	}
}

// nodeAt walks to position i. Position Len() yields the tail sentinel.
func (l *OpList) nodeAt(i int) Op {
	if i < 0 {
		panic(fmt.Sprintf("AssertionError: index %d out of range", i))
	}
	var node Op = l.head.next
	for idx := 0; idx < i; idx++ {
		if node == Op(l.tail) {
			panic(fmt.Sprintf("AssertionError: index %d out of range", i))
		}
		node = node.GetNext()
	}
	return node
}

func (l *OpList) opAt(i int) Op {
	node := l.nodeAt(i)
	if node == Op(l.tail) {
		panic(fmt.Sprintf("AssertionError: index %d out of range", i))
	}
	return node
}

// InsertAt inserts op so that it ends up at position i. i == Len() appends.
func (l *OpList) InsertAt(i int, op Op) {
	node := l.nodeAt(i)
	l.assertIsUnowned(op)
	l.link(op, node.GetPrev(), node)
}

// RemoveAt removes and returns the op at position i
func (l *OpList) RemoveAt(i int) Op {
	op := l.opAt(i)
	unlink(op)
	return op
}

// ReplaceAt replaces the op at position i and returns the replaced op
func (l *OpList) ReplaceAt(i int, op Op) Op {
	old := l.opAt(i)
	l.Replace(old, op)
	return old
}

// ReplaceAtWithMany replaces the op at position i with ops and returns the replaced op
func (l *OpList) ReplaceAtWithMany(i int, ops []Op) Op {
	old := l.opAt(i)
	l.ReplaceWithMany(old, ops)
	return old
}

// Get returns the op at position i. Ops are pointers, so the result can be mutated in place.
func (l *OpList) Get(i int) Op {
	return l.opAt(i)
}

// Len counts the ops of the list
func (l *OpList) Len() int {
	n := 0
	for node := l.head.next; node != Op(l.tail); node = node.GetNext() {
		n++
	}
	return n
}

// All iterates the list front to back. The next node is captured before each
// yield, so the yielded op may be removed or replaced.
func (l *OpList) All() iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for node := l.head.next; node != Op(l.tail); {
			next := node.GetNext()
			if !yield(node) {
				return
			}
			node = next
		}
	}
}

// Backward iterates the list back to front with the same removal guarantee as All
func (l *OpList) Backward() iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for node := l.tail.prev; node != Op(l.head); {
			prev := node.GetPrev()
			if !yield(node) {
				return
			}
			node = prev
		}
	}
}

// Slice copies the ops of the list into a slice
func (l *OpList) Slice() []Op {
	var ops []Op
	for op := range l.All() {
		ops = append(ops, op)
	}
	return ops
}
