package photos

import (
	"slices"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
)

type mutationKind int

const (
	mutationCreated mutationKind = iota
	mutationDeleted
	mutationUpdated
)

// mutation is a confirmed local change, kept while a list fetch that was
// issued before it is still in flight.
type mutation struct {
	seq   uint64
	kind  mutationKind
	id    int64
	photo models.Photo
	patch models.PhotoPatch
}

func (m mutation) apply(list []models.Photo) []models.Photo {
	switch m.kind {
	case mutationCreated:
		if slices.ContainsFunc(list, func(p models.Photo) bool { return p.ID == m.photo.ID }) {
			return list
		}
		return append([]models.Photo{m.photo.Clone()}, list...)
	case mutationDeleted:
		return slices.DeleteFunc(list, func(p models.Photo) bool { return p.ID == m.id })
	case mutationUpdated:
		for i := range list {
			if list[i].ID == m.id {
				m.patch.Apply(&list[i])
			}
		}
	}
	return list
}

// journal orders list fetches against confirmed mutations.
//
// Every fetch and every mutation draws a number from the same counter. A
// fetch result is dropped when a fetch issued later has already been
// applied; otherwise the mutations numbered after the fetch are replayed
// onto its result. Mutations are only retained while some fetch is in
// flight.
type journal struct {
	seq      uint64
	applied  uint64
	inflight map[uint64]struct{}
	entries  []mutation
}

func (j *journal) beginFetch() uint64 {
	j.seq++
	if j.inflight == nil {
		j.inflight = make(map[uint64]struct{})
	}
	j.inflight[j.seq] = struct{}{}
	return j.seq
}

// completeFetch retires fetch seq with its result and returns the list that
// should become visible, with later mutations replayed. ok is false when a
// fetch issued after seq has already been applied.
func (j *journal) completeFetch(seq uint64, list []models.Photo) (out []models.Photo, ok bool) {
	delete(j.inflight, seq)
	defer j.prune()

	if seq < j.applied {
		return nil, false
	}
	for _, m := range j.entries {
		if m.seq > seq {
			list = m.apply(list)
		}
	}
	j.applied = seq
	return list, true
}

// abandonFetch retires a failed fetch.
func (j *journal) abandonFetch(seq uint64) {
	delete(j.inflight, seq)
	j.prune()
}

// record notes a confirmed mutation for replay onto fetches in flight.
func (j *journal) record(m mutation) {
	j.seq++
	if len(j.inflight) == 0 {
		return
	}
	m.seq = j.seq
	j.entries = append(j.entries, m)
}

func (j *journal) prune() {
	if len(j.inflight) == 0 {
		j.entries = nil
		return
	}
	oldest := j.seq
	for s := range j.inflight {
		oldest = min(oldest, s)
	}
	j.entries = slices.DeleteFunc(j.entries, func(m mutation) bool { return m.seq <= oldest })
}
