//go:build mage

// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "mvmsim"

var ldflags = "-X github.com/penny-vault/mvmsim/common.commitHash=$COMMIT_HASH -X github.com/penny-vault/mvmsim/common.buildDate=$BUILD_DATE"

// Build the mvmsim binary with the commit hash and build date stamped in
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(versionEnv(), mg.GoCmd(), "build", "-o", binaryName, "-ldflags", ldflags, ".")
}

// Install mvmsim into GOBIN
func Install() error {
	return sh.RunWith(versionEnv(), mg.GoCmd(), "install", "-ldflags", ldflags, ".")
}

// Clean removes the built binary
func Clean() error {
	fmt.Println("Cleaning...")
	return sh.Rm(binaryName)
}

// Check runs the formatters, vet and the race tests
func Check() {
	mg.SerialDeps(Fmt, Vet, TestRace)
}

// Test runs every ginkgo suite
func Test() error {
	fmt.Println("Go Test")
	return sh.RunV(mg.GoCmd(), "test", "./...")
}

// TestRace runs every ginkgo suite under the race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return sh.RunV(mg.GoCmd(), "test", "-race", "./...")
}

// Fmt fails when gofmt would rewrite any file
func Fmt() error {
	fmt.Println("Go Format")
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}

	var unformatted []string
	for _, fn := range strings.Split(out, "\n") {
		if fn != "" && !strings.HasPrefix(fn, "_") {
			unformatted = append(unformatted, fn)
		}
	}
	if len(unformatted) > 0 {
		fmt.Fprintln(os.Stderr, "The following files are not gofmt'ed:")
		fmt.Fprintln(os.Stderr, strings.Join(unformatted, "\n"))
		return errors.New("improperly formatted go files")
	}
	return nil
}

// Vet runs go vet over the module
func Vet() error {
	fmt.Println("Go Vet")
	if err := sh.Run(mg.GoCmd(), "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

func versionEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}
