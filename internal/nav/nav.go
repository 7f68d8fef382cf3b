// Package nav computes ring navigation over the full prayer list.
package nav

import "doaharian/internal/model"

// Find locates the prayer whose key equals id.
func Find(list []model.Prayer, id string) (model.Prayer, int, bool) {
	for i, p := range list {
		if p.Key() == id {
			return p, i, true
		}
	}
	return model.Prayer{}, -1, false
}

// Neighbors returns the ids before and after currentID, wrapping at both
// ends. A single-element list wraps to itself. ok is false when currentID
// is not in list, in which case prev and next are empty.
func Neighbors(list []model.Prayer, currentID string) (prev, next string, ok bool) {
	_, i, found := Find(list, currentID)
	if !found {
		return "", "", false
	}
	n := len(list)
	prev = list[(i-1+n)%n].Key()
	next = list[(i+1)%n].Key()
	return prev, next, true
}
