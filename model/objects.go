// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model contains the shared OpenStreetMap object model consumed by
// the sorting and merging stages.
package model

import (
	"math"
	"time"
)

// ElementType is an enumeration of OSM element types. The declaration order
// is the canonical sort order: nodes, then ways, then relations.
type ElementType int

const (
	// NODE denotes a node element.
	NODE ElementType = iota

	// WAY denotes a way element.
	WAY

	// RELATION denotes a relation element.
	RELATION
)

func (t ElementType) String() string {
	switch t {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	default:
		return "unknown"
	}
}

// ID is the primary key of an element. Zero and negative values are valid;
// negative IDs conventionally mark locally created elements that have not
// been assigned a server ID yet.
type ID int64

// Positive returns the magnitude of the ID. It panics for math.MinInt64,
// which has no representable magnitude; wrapping silently would corrupt the
// orderings built on top of it.
func (i ID) Positive() uint64 {
	if i == math.MinInt64 {
		panic("model: math.MinInt64 has no positive magnitude")
	}

	if i < 0 {
		return uint64(-i)
	}

	return uint64(i)
}

// Version is the edit version of an element, strictly increasing per edit of
// a given (type, ID).
type Version uint32

// UID is the primary key for a user.
type UID int32

// Info represents edit metadata common to Node, Way, and Relation elements.
// The zero Timestamp means the timestamp is unknown; planet extracts may
// strip metadata.
type Info struct {
	Version   Version
	UID       UID
	Timestamp time.Time
	Changeset int64
	User      string
	Visible   bool
}

// Object is the read-only view of an OSM element shared by nodes, ways, and
// relations. A nil Object passed to any function in this module is a
// programming error and panics.
type Object interface {
	isObject() // prevents extensions

	// Type returns the element type.
	Type() ElementType

	// GetID returns the signed element ID.
	GetID() ID

	// PositiveID returns the magnitude of the element ID.
	PositiveID() uint64

	// GetInfo returns the edit metadata, or nil when the source carried none.
	GetInfo() *Info

	// GetTags returns the element tags.
	GetTags() map[string]string
}

// VersionOf returns the element version, or zero when o carries no metadata.
func VersionOf(o Object) Version {
	if info := o.GetInfo(); info != nil {
		return info.Version
	}

	return 0
}

// TimestampOf returns the edit timestamp, or the zero time when o carries no
// metadata or the metadata has no timestamp.
func TimestampOf(o Object) time.Time {
	if info := o.GetInfo(); info != nil {
		return info.Timestamp
	}

	return time.Time{}
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	ID   ID
	Tags map[string]string
	Info *Info
	Lat  Degrees
	Lon  Degrees
}

var _ Object = Node{}

func (n Node) isObject() {}

// Type returns NODE.
func (n Node) Type() ElementType { return NODE }

func (n Node) GetID() ID { return n.ID }

func (n Node) PositiveID() uint64 { return n.ID.Positive() }

func (n Node) GetInfo() *Info { return n.Info }

func (n Node) GetTags() map[string]string { return n.Tags }

// Way is an ordered list of between 2 and 2,000 nodes that define a polyline.
type Way struct {
	ID      ID
	Tags    map[string]string
	Info    *Info
	NodeIDs []ID
}

var _ Object = Way{}

func (w Way) isObject() {}

// Type returns WAY.
func (w Way) Type() ElementType { return WAY }

func (w Way) GetID() ID { return w.ID }

func (w Way) PositiveID() uint64 { return w.ID.Positive() }

func (w Way) GetInfo() *Info { return w.Info }

func (w Way) GetTags() map[string]string { return w.Tags }

// Member represents an element referenced by a relation.
type Member struct {
	ID   ID
	Type ElementType
	Role string
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more data elements (nodes, ways, and/or other relations).
type Relation struct {
	ID      ID
	Tags    map[string]string
	Info    *Info
	Members []Member
}

var _ Object = Relation{}

func (r Relation) isObject() {}

// Type returns RELATION.
func (r Relation) Type() ElementType { return RELATION }

func (r Relation) GetID() ID { return r.ID }

func (r Relation) PositiveID() uint64 { return r.ID.Positive() }

func (r Relation) GetInfo() *Info { return r.Info }

func (r Relation) GetTags() map[string]string { return r.Tags }
