// Package favorite flips the in-memory favorite flag on a prayer list.
// Flags are never persisted; a fresh fetch clears them all.
package favorite

import "doaharian/internal/model"

// Toggle returns a copy of list with the favorite flag of the prayer whose
// key equals id flipped. An unknown id yields an unchanged copy.
func Toggle(list []model.Prayer, id string) []model.Prayer {
	out := make([]model.Prayer, len(list))
	copy(out, list)
	for i := range out {
		if out[i].Key() == id {
			out[i].Favorite = !out[i].Favorite
			break
		}
	}
	return out
}

// Count returns how many prayers are marked favorite.
func Count(list []model.Prayer) int {
	n := 0
	for _, p := range list {
		if p.Favorite {
			n++
		}
	}
	return n
}
