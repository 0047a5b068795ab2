// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the tradepost project using Mage.
//
// Usage:
//
//	mage build          Compile the tradepost binary to bin/
//	mage test:all       Run every test
//	mage test:race      Run every test with the race detector
//	mage test:cover     Run every test and write coverage to bin/coverage.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install tradepost to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "tradepost"
	binaryDir  = "bin"
	cmdDir     = "./cmd/tradepost"
)
