package checkpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Resolution is a caller's answer to a duplicate conflict.
type Resolution string

const (
	KeepOld Resolution = "keep_old"
	KeepNew Resolution = "keep_new"
)

// Duplicate is one question id present in both checkpoints with differing
// content. Identical timestamps do not excuse a merge: exact collisions are
// still surfaced for resolution.
type Duplicate struct {
	QuestionID string
	Old        Item
	New        Item
}

// DuplicateError reports conflicts that require caller resolution. The
// migrator never merges conflicting items field by field.
type DuplicateError struct {
	Duplicates []Duplicate
}

// Error lists the conflicting question ids.
func (err *DuplicateError) Error() string {
	if err == nil || len(err.Duplicates) == 0 {
		return ""
	}
	ids := make([]string, 0, len(err.Duplicates))
	for _, d := range err.Duplicates {
		ids = append(ids, d.QuestionID)
	}
	return fmt.Sprintf("checkpoint load found %d duplicate question id(s): %s", len(ids), strings.Join(ids, ", "))
}

// MergeCheckpoints unions incoming items into base without mutating either.
// Re-loading an identical item is idempotent. A shared question id with
// differing content is a duplicate: the resolver decides keep_old/keep_new,
// and a nil resolver turns all conflicts into a single DuplicateError.
func MergeCheckpoints(base, incoming Checkpoint, resolve func(Duplicate) Resolution) (Checkpoint, error) {
	merged := make(Checkpoint, len(base)+len(incoming))
	for id, item := range base {
		merged[id] = item
	}

	ids := make([]string, 0, len(incoming))
	for id := range incoming {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var duplicates []Duplicate
	for _, id := range ids {
		newItem := incoming[id]
		oldItem, exists := merged[id]
		if !exists || sameItem(oldItem, newItem) {
			merged[id] = newItem
			continue
		}
		duplicate := Duplicate{QuestionID: id, Old: oldItem, New: newItem}
		if resolve == nil {
			duplicates = append(duplicates, duplicate)
			continue
		}
		if resolve(duplicate) == KeepNew {
			merged[id] = newItem
		}
	}
	if len(duplicates) > 0 {
		return nil, &DuplicateError{Duplicates: duplicates}
	}
	return merged, nil
}

// sameItem compares items structurally via their canonical JSON encodings.
func sameItem(a, b Item) bool {
	aData, errA := json.Marshal(a)
	bData, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aData, bData)
}
