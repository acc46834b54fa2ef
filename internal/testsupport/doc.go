// Package testsupport provides fixtures shared by package tests: temporary
// template trees, repository URL lists, environment overrides, and a
// concurrency-safe git executor stub.
package testsupport
