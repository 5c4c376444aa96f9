package paging

import (
	"go.mongodb.org/mongo-driver/bson"
)

// KeysetFilter combines base filters with the seek-method comparator over the
// compound (primary field, id) key. For direction dir the result matches
// documents strictly beyond (value, id):
//
//	primary beyond value  OR  (primary == value AND id beyond id)
//
// Ties on the primary field are broken deterministically by the unique id, so
// iteration resumes past a tie block without skipping or repeating documents.
// The base filter is never mutated.
func KeysetFilter(base bson.M, sort SortSpec, value, id any, idField string) bson.M {
	op := "$gt"
	if len(sort) > 0 && sort[0].Dir == Desc {
		op = "$lt"
	}

	primary := sort.Primary(idField)

	var seek bson.M
	if primary == idField {
		// Id-only sort: the id is the whole key, no tie clause needed.
		seek = bson.M{idField: bson.M{op: id}}
	} else {
		seek = bson.M{"$or": bson.A{
			bson.M{primary: bson.M{op: value}},
			bson.M{primary: value, idField: bson.M{op: id}},
		}}
	}

	if len(base) == 0 {
		return seek
	}
	return bson.M{"$and": bson.A{base, seek}}
}
