package eras

// Deleter destroys a reclaimed object once no Guard can still hold it.
// It typically returns the node to a pool; a nil Deleter leaves physical
// destruction to the garbage collector.
type Deleter func(obj Reclaimable)

// Reclaimable is implemented by embedding Node in a node type.
type Reclaimable interface {
	reclaimNode() *Node
}

// Node carries the per-object reclamation bookkeeping: the era interval
// during which the object was reachable, the intrusive link of the retire
// batch that currently owns it, and the type-erased destroy operation
// bound at retirement. Embed it (by value) in every reclaimable node type
// and stamp it with Domain.Init before publishing the node.
type Node struct {
	next            *Node
	self            Reclaimable
	deleter         Deleter
	constructionEra uint64
	retirementEra   uint64
}

func (n *Node) reclaimNode() *Node { return n }

// destroy invokes the bound deleter and severs the node's references so a
// pooled object does not pin its previous incarnation.
func (n *Node) destroy() {
	obj, del := n.self, n.deleter
	n.self = nil
	n.deleter = nil
	n.next = nil
	if del != nil {
		del(obj)
	}
}
