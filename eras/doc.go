// Package eras implements hazard-eras memory reclamation for lock-free
// data structures. A global era clock orders retirements across goroutines;
// readers publish the era they may still be observing into per-handle hazard
// slots, and retired nodes are physically destroyed only once no published
// era overlaps their construction/retirement interval.
//
// The scheme is built around four pieces: a Domain (era clock, thread
// registry, allocation strategy), per-goroutine Handles that own hazard
// slots and a private retire list, Guards that bind one slot to one
// protected pointer, and Ptr, the atomic pointer slot through which all
// shared references to reclaimable nodes flow.
//
// Unlike per-pointer hazard schemes, a single published era protects every
// node that was live at that era, so one Guard can cover the traversal of
// an entire immutable chain.
package eras
