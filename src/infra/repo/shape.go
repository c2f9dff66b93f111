package repo

import "usermanager/src/core/domain"

// checkSave is the type check shared by every Save path. Either a non-numeric
// id or a non-object payload is enough to reject the write.
func checkSave(id, data domain.Value) (int64, domain.User, error) {
	if !domain.IsNumericID(id) || !data.IsObject() {
		return 0, domain.User{}, domain.NewTypeMismatchError(
			"save expects a numeric id and an object, got " + id.Kind().String() + " and " + data.Kind().String(),
		)
	}
	key, _ := domain.ParseID(id)
	return key, domain.UserFromValue(data), nil
}

// idKeys resolves the elements of an id array, dropping anything that is not
// an identifier.
func idKeys(ids domain.Value) []int64 {
	elems := ids.Elems()
	keys := make([]int64, 0, len(elems))
	for _, e := range elems {
		if key, ok := domain.ParseID(e); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
