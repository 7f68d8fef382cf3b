package model

import "strconv"

// Record is one row as returned by the prayer source. The order of a
// []Record is the source order and nothing downstream re-sorts it.
type Record struct {
	ID   int    `json:"id"`
	Name string `json:"Nama Doa"`
	Text string `json:"Lafadz Doa"`
}

// Key renders the id the way routes and lookups compare it.
func (r Record) Key() string { return strconv.Itoa(r.ID) }

// Prayer is a source record plus the client-side favorite flag.
type Prayer struct {
	Record
	Favorite bool `json:"isFavorite"`
}

// Attach wraps fetched records with a cleared favorite flag.
func Attach(records []Record) []Prayer {
	out := make([]Prayer, len(records))
	for i, r := range records {
		out[i] = Prayer{Record: r}
	}
	return out
}

