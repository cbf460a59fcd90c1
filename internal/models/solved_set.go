package models

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// SolvedSet holds the problem ids a user has solved. Ids are dense small
// integers, so a roaring bitmap keeps even prolific users' sets under the
// per-entry limit of the solved-set cache.
type SolvedSet struct {
	ids *roaring.Bitmap
}

func NewSolvedSet(ids []int) *SolvedSet {
	bm := roaring.New()
	for _, id := range ids {
		if id > 0 {
			bm.Add(uint32(id))
		}
	}
	return &SolvedSet{ids: bm}
}

func (s *SolvedSet) Contains(id int) bool {
	if s == nil || id <= 0 {
		return false
	}
	return s.ids.Contains(uint32(id))
}

func (s *SolvedSet) Len() int {
	if s == nil {
		return 0
	}
	return int(s.ids.GetCardinality())
}

// Union adds every id of other to s.
func (s *SolvedSet) Union(other *SolvedSet) {
	if other != nil {
		s.ids.Or(other.ids)
	}
}

// MarshalBinary returns the portable roaring encoding of the set.
func (s *SolvedSet) MarshalBinary() ([]byte, error) {
	s.ids.RunOptimize()
	return s.ids.ToBytes()
}

func UnmarshalSolvedSet(data []byte) (*SolvedSet, error) {
	bm := roaring.New()
	if err := bm.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("roaring unmarshal: %w", err)
	}
	return &SolvedSet{ids: bm}, nil
}
