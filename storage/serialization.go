// Copyright 2025 Poiesic Systems
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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/landmark/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %v", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalVector serializes a vector as a length followed by raw float32 values.
func MarshalVector(v []float32) []byte {
	buf := make([]byte, vectorSize(v))
	marshalVector(v, buf)
	return buf
}

// UnmarshalVector deserializes a vector written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	v, _, err := unmarshalVector(data)
	return v, err
}

// MarshalEmbedding serializes an Embedding to bytes.
func MarshalEmbedding(e *core.Embedding) []byte {
	micros := e.InsertedAt.UnixMicro()
	size := varint.Uint64.Size(uint64(e.Id)) +
		ord.String.Size(e.Model) +
		varint.Int64.Size(micros) +
		vectorSize(e.Vector)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(e.Id), buf)
	n += ord.String.Marshal(e.Model, buf[n:])
	n += varint.Int64.Marshal(micros, buf[n:])
	marshalVector(e.Vector, buf[n:])
	return buf
}

// UnmarshalEmbedding deserializes an Embedding from bytes.
func UnmarshalEmbedding(data []byte) (*core.Embedding, error) {
	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding id: %v", ErrSerializationFailed, err)
	}
	off := n

	model, n, err := ord.String.Unmarshal(data[off:])
	if err != nil {
		return nil, fmt.Errorf("%w: embedding model: %v", ErrSerializationFailed, err)
	}
	off += n

	micros, n, err := varint.Int64.Unmarshal(data[off:])
	if err != nil {
		return nil, fmt.Errorf("%w: embedding timestamp: %v", ErrSerializationFailed, err)
	}
	off += n

	vector, _, err := unmarshalVector(data[off:])
	if err != nil {
		return nil, err
	}

	return &core.Embedding{
		Id:         core.ID(id),
		Model:      model,
		Vector:     vector,
		InsertedAt: time.UnixMicro(micros).UTC(),
	}, nil
}

func vectorSize(v []float32) int {
	size := varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

func marshalVector(v []float32, buf []byte) int {
	n := varint.Int.Marshal(len(v), buf)
	for _, f := range v {
		n += raw.Float32.Marshal(f, buf[n:])
	}
	return n
}

func unmarshalVector(data []byte) ([]float32, int, error) {
	length, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: vector length: %v", ErrSerializationFailed, err)
	}
	if length < 0 || length > (len(data)-n)/4 {
		return nil, 0, fmt.Errorf("%w: vector of %d values in %d bytes", ErrTruncatedData, length, len(data)-n)
	}

	v := make([]float32, length)
	for i := range v {
		f, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: vector value %d: %v", ErrSerializationFailed, i, err)
		}
		v[i] = f
		n += m
	}
	return v, n, nil
}
