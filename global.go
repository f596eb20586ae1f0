// Copyright 2015 Google Inc. All Rights Reserved.
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

package tfs

import "sync"

// The operation table in spec.md §6 describes a single process-wide file
// system reached through free functions (init, open, close, ...). New/
// TFS in tfs.go are the idiomatic Go surface — a value callers can construct
// more than one of in a test binary, say — and Init/Destroy/Open/... here
// are a thin process-wide singleton layered on top of it, for callers
// that want the spec's exact shape. A process using this layer calls
// Init once before any other operation and Destroy once after the last.

var (
	globalMu sync.Mutex
	global   *TFS
)

// Init constructs the process-wide file system. params may be the zero
// value to accept DefaultParams.
func Init(params Params) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return ErrAlreadyInited
	}

	t, err := New(params)
	if err != nil {
		return err
	}

	global = t
	return nil
}

// Destroy tears down the process-wide file system constructed by Init.
func Destroy() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return ErrNotInited
	}

	err := global.Close()
	global = nil
	return err
}

func currentOrErr() (*TFS, error) {
	globalMu.Lock()
	t := global
	globalMu.Unlock()

	if t == nil {
		return nil, ErrNotInited
	}
	return t, nil
}

func Open(path string, mode OpenMode) (Handle, error) {
	t, err := currentOrErr()
	if err != nil {
		return 0, err
	}
	return t.Open(path, mode)
}

func CloseFile(h Handle) error {
	t, err := currentOrErr()
	if err != nil {
		return err
	}
	return t.CloseFile(h)
}

func Read(h Handle, buf []byte) (int, error) {
	t, err := currentOrErr()
	if err != nil {
		return 0, err
	}
	return t.Read(h, buf)
}

func Write(h Handle, buf []byte) (int, error) {
	t, err := currentOrErr()
	if err != nil {
		return 0, err
	}
	return t.Write(h, buf)
}

func Link(target, name string) error {
	t, err := currentOrErr()
	if err != nil {
		return err
	}
	return t.Link(target, name)
}

func SymLink(target, name string) error {
	t, err := currentOrErr()
	if err != nil {
		return err
	}
	return t.SymLink(target, name)
}

func Unlink(name string) error {
	t, err := currentOrErr()
	if err != nil {
		return err
	}
	return t.Unlink(name)
}
