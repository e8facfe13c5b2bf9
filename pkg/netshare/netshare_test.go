// Copyright 2025 The fileshuttle Authors
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

package netshare_test

import (
	"context"
	"testing"

	"github.com/rishabhskr/fileshuttle/pkg/netshare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return "", f.err
}

// 🧪 TestMap tests the net use command construction
func TestMap(t *testing.T) {
	runner := &fakeRunner{}
	mapper := netshare.NewWithRunner(runner)

	err := mapper.Map(context.Background(), netshare.Mount{
		Drive:    "Z:",
		UNCPath:  `\\nas01\archive`,
		User:     "backup",
		Password: "secret",
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"net", "use", "Z:", `\\nas01\archive`, "secret", "/user:backup"}, runner.calls[0])
}

// 🧪 TestMapIncomplete tests that partial settings are rejected
func TestMapIncomplete(t *testing.T) {
	mapper := netshare.NewWithRunner(&fakeRunner{})

	err := mapper.Map(context.Background(), netshare.Mount{Drive: "Z:", UNCPath: `\\nas01\archive`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

// 🧪 TestUnmap tests the delete command construction
func TestUnmap(t *testing.T) {
	runner := &fakeRunner{}
	mapper := netshare.NewWithRunner(runner)

	require.NoError(t, mapper.Unmap(context.Background(), "Z:"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"net", "use", "Z:", "/delete", "/y"}, runner.calls[0])
}
