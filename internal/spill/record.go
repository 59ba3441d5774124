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

package spill

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/osmsort/model"
)

// Record field numbers. Signed values are zigzag encoded; coordinates are
// carried as nanodegrees.
const (
	fieldType           protowire.Number = 1
	fieldID             protowire.Number = 2
	fieldVersion        protowire.Number = 3
	fieldTimestamp      protowire.Number = 4 // unix seconds; absent when unset
	fieldChangeset      protowire.Number = 5
	fieldUID            protowire.Number = 6
	fieldUser           protowire.Number = 7
	fieldVisible        protowire.Number = 8
	fieldTagKey         protowire.Number = 9
	fieldTagValue       protowire.Number = 10
	fieldLat            protowire.Number = 11
	fieldLon            protowire.Number = 12
	fieldRef            protowire.Number = 13
	fieldMemberID       protowire.Number = 14
	fieldMemberType     protowire.Number = 15
	fieldMemberRole     protowire.Number = 16
	fieldTimestampNanos protowire.Number = 17 // sub-second remainder of fieldTimestamp
)

// ErrMalformedRecord is returned when a record cannot be decoded back into
// an object.
var ErrMalformedRecord = errors.New("spill: malformed record")

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func appendZigZagField(b []byte, num protowire.Number, v int64) []byte {
	return appendVarintField(b, num, protowire.EncodeZigZag(v))
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}

// AppendObject appends the wire encoding of o to b and returns the extended
// slice.
func AppendObject(b []byte, o model.Object) []byte {
	b = appendVarintField(b, fieldType, uint64(o.Type()))
	b = appendZigZagField(b, fieldID, int64(o.GetID()))

	if info := o.GetInfo(); info != nil {
		b = appendVarintField(b, fieldVersion, uint64(info.Version))

		if !info.Timestamp.IsZero() {
			b = appendZigZagField(b, fieldTimestamp, info.Timestamp.Unix())

			if ns := info.Timestamp.Nanosecond(); ns != 0 {
				b = appendVarintField(b, fieldTimestampNanos, uint64(ns))
			}
		}

		b = appendZigZagField(b, fieldChangeset, info.Changeset)
		b = appendZigZagField(b, fieldUID, int64(info.UID))
		b = appendStringField(b, fieldUser, info.User)

		var visible uint64
		if info.Visible {
			visible = 1
		}

		b = appendVarintField(b, fieldVisible, visible)
	}

	for k, v := range o.GetTags() {
		b = appendStringField(b, fieldTagKey, k)
		b = appendStringField(b, fieldTagValue, v)
	}

	switch v := o.(type) {
	case model.Node:
		b = appendZigZagField(b, fieldLat, v.Lat.E9())
		b = appendZigZagField(b, fieldLon, v.Lon.E9())
	case model.Way:
		for _, ref := range v.NodeIDs {
			b = appendZigZagField(b, fieldRef, int64(ref))
		}
	case model.Relation:
		for _, m := range v.Members {
			b = appendZigZagField(b, fieldMemberID, int64(m.ID))
			b = appendVarintField(b, fieldMemberType, uint64(m.Type))
			b = appendStringField(b, fieldMemberRole, m.Role)
		}
	default:
		panic(fmt.Sprintf("spill: unsupported object kind %T", o))
	}

	return b
}

type record struct {
	typ     model.ElementType
	id      model.ID
	info    *model.Info
	tagKeys []string
	tagVals []string

	tsSec, tsNanos int64
	hasTS          bool

	lat, lon int64

	refs []model.ID

	memberIDs   []model.ID
	memberTypes []model.ElementType
	memberRoles []string
}

func (r *record) ensureInfo() *model.Info {
	if r.info == nil {
		r.info = &model.Info{}
	}

	return r.info
}

func (r *record) tags() (map[string]string, error) {
	if len(r.tagKeys) != len(r.tagVals) {
		return nil, fmt.Errorf("%w: %d tag keys but %d values",
			ErrMalformedRecord, len(r.tagKeys), len(r.tagVals))
	}

	if len(r.tagKeys) == 0 {
		return nil, nil
	}

	tags := make(map[string]string, len(r.tagKeys))
	for i, k := range r.tagKeys {
		tags[k] = r.tagVals[i]
	}

	return tags, nil
}

func (r *record) members() ([]model.Member, error) {
	if len(r.memberIDs) != len(r.memberTypes) || len(r.memberIDs) != len(r.memberRoles) {
		return nil, fmt.Errorf("%w: ragged member columns", ErrMalformedRecord)
	}

	if len(r.memberIDs) == 0 {
		return nil, nil
	}

	members := make([]model.Member, len(r.memberIDs))
	for i := range r.memberIDs {
		members[i] = model.Member{
			ID:   r.memberIDs[i],
			Type: r.memberTypes[i],
			Role: r.memberRoles[i],
		}
	}

	return members, nil
}

// DecodeObject decodes one wire-encoded record back into an object.
func DecodeObject(b []byte) (model.Object, error) {
	rec := record{typ: -1}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}

		b = b[n:]

		var err error

		switch num {
		case fieldType, fieldID, fieldVersion, fieldTimestamp, fieldChangeset,
			fieldUID, fieldVisible, fieldLat, fieldLon, fieldRef,
			fieldMemberID, fieldMemberType:
			var v uint64

			v, n = protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}

			err = rec.setVarint(num, v)
		case fieldUser, fieldTagKey, fieldTagValue, fieldMemberRole:
			var v string

			v, n = protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}

			rec.setString(num, v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
		}

		if err != nil {
			return nil, err
		}

		b = b[n:]
	}

	return rec.object()
}

func (r *record) setVarint(num protowire.Number, v uint64) error {
	switch num {
	case fieldType:
		r.typ = model.ElementType(v)
	case fieldID:
		r.id = model.ID(protowire.DecodeZigZag(v))
	case fieldVersion:
		if v > uint64(^uint32(0)) {
			return fmt.Errorf("%w: version %d overflows", ErrMalformedRecord, v)
		}

		r.ensureInfo().Version = model.Version(v)
	case fieldTimestamp:
		r.tsSec = protowire.DecodeZigZag(v)
		r.hasTS = true
	case fieldTimestampNanos:
		if v >= uint64(time.Second) {
			return fmt.Errorf("%w: %d timestamp nanoseconds overflow", ErrMalformedRecord, v)
		}

		r.tsNanos = int64(v)
	case fieldChangeset:
		r.ensureInfo().Changeset = protowire.DecodeZigZag(v)
	case fieldUID:
		r.ensureInfo().UID = model.UID(protowire.DecodeZigZag(v))
	case fieldVisible:
		r.ensureInfo().Visible = v != 0
	case fieldLat:
		r.lat = protowire.DecodeZigZag(v)
	case fieldLon:
		r.lon = protowire.DecodeZigZag(v)
	case fieldRef:
		r.refs = append(r.refs, model.ID(protowire.DecodeZigZag(v)))
	case fieldMemberID:
		r.memberIDs = append(r.memberIDs, model.ID(protowire.DecodeZigZag(v)))
	case fieldMemberType:
		if v > uint64(model.RELATION) {
			return fmt.Errorf("%w: unknown member element type %d", ErrMalformedRecord, v)
		}

		r.memberTypes = append(r.memberTypes, model.ElementType(v))
	}

	return nil
}

func (r *record) setString(num protowire.Number, v string) {
	switch num {
	case fieldUser:
		r.ensureInfo().User = v
	case fieldTagKey:
		r.tagKeys = append(r.tagKeys, v)
	case fieldTagValue:
		r.tagVals = append(r.tagVals, v)
	case fieldMemberRole:
		r.memberRoles = append(r.memberRoles, v)
	}
}

func (r *record) object() (model.Object, error) {
	tags, err := r.tags()
	if err != nil {
		return nil, err
	}

	if r.hasTS {
		r.ensureInfo().Timestamp = time.Unix(r.tsSec, r.tsNanos).UTC()
	}

	switch r.typ {
	case model.NODE:
		return model.Node{
			ID:   r.id,
			Tags: tags,
			Info: r.info,
			Lat:  model.FromE9(r.lat),
			Lon:  model.FromE9(r.lon),
		}, nil
	case model.WAY:
		return model.Way{
			ID:      r.id,
			Tags:    tags,
			Info:    r.info,
			NodeIDs: r.refs,
		}, nil
	case model.RELATION:
		members, err := r.members()
		if err != nil {
			return nil, err
		}

		return model.Relation{
			ID:      r.id,
			Tags:    tags,
			Info:    r.info,
			Members: members,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown element type %d", ErrMalformedRecord, r.typ)
	}
}
