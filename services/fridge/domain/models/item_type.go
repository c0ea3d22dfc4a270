package models

import "strconv"

// ItemType is a category of fridge item, e.g. "Bacon". It is created the
// first time an item of that type is added and survives until forgotten.
type ItemType struct {
	ID   int64
	Name string
}

// NewItemType constructs an ItemType. Field rules are enforced by the domain
// item validator before this is called.
func NewItemType(id int64, name string) *ItemType {
	return &ItemType{ID: id, Name: name}
}

// Key is the identity of the type.
func (t ItemType) Key() int64 { return t.ID }

// Equal reports whether both values identify the same type. Name is ignored.
func (t ItemType) Equal(o ItemType) bool { return t.ID == o.ID }

// String returns "name(id)".
func (t ItemType) String() string {
	return t.Name + "(" + strconv.FormatInt(t.ID, 10) + ")"
}
