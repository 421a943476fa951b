//go:build e2e

// Package e2e drives a real browser through the scenario catalogue and
// through the harness fixtures.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and network access to the demo site for the scenario tests.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running only the harness tests (no public site needed):
//
//	go test -tags=e2e -run Harness ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the fixture-site server for harness behaviour
//   - pkg/scenario for the demo site checks
//
// Test isolation:
// Every test case acquires its own browser session and releases it when
// the case ends, pass or fail.
package e2e
