package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func splitLines(s string) []string { return strings.Split(s, "\n") }

func TestCallIsHandled_TryCatchInFunctionScope(t *testing.T) {
	lines := splitLines(`async function load() {
  try {
    const res = await fetch('/api/user');
    return res;
  } catch (err) {
    return null;
  }
}`)
	assert.True(t, callIsHandled(lines, 2))
}

func TestCallIsHandled_NoGuardAnywhere(t *testing.T) {
	lines := splitLines(`async function load() {
  const res = await fetch('/api/user');
  return res;
}`)
	assert.False(t, callIsHandled(lines, 1))
}

func TestCallIsHandled_GuardElsewhereInSameFunction(t *testing.T) {
	// The heuristic is scope-wide, not statement-accurate: a try anywhere
	// inside the bounded function counts as handled.
	lines := splitLines(`function sync() {
  try {
    flush();
  } catch (e) {}
  fetch('/api/ping');
}`)
	assert.True(t, callIsHandled(lines, 4))
}

func TestCallIsHandled_ChainedCatch(t *testing.T) {
	lines := splitLines(`function fire() {
  fetch('/api/event')
    .then((r) => r.json())
    .catch(() => {});
}`)
	assert.True(t, callIsHandled(lines, 1))
}

func TestCallIsHandled_ThenWithoutCatch(t *testing.T) {
	lines := splitLines(`function fire() {
  fetch('/api/event')
    .then((r) => r.json());
  other();
}`)
	assert.False(t, callIsHandled(lines, 1))
}

func TestCallIsHandled_ChainLookaheadStopsAtTerminator(t *testing.T) {
	lines := splitLines(`const p = fetch('/x')
  .then(parse);
unrelated();
unrelated2();
unrelated3();
queue.catch(log);`)
	// The chain terminates with a semicolon on the .then line; the later
	// .catch( belongs to a different statement and must not count.
	assert.False(t, callIsHandled(lines, 0))
}

func TestCallIsHandled_FallbackWindowWithoutScope(t *testing.T) {
	// No function anchor in sight: only the two-line window applies.
	lines := splitLines(`const p = fetch('/ping');
try {
  await p;
} catch {}`)
	assert.True(t, callIsHandled(lines, 0))
}

func TestFindScopeEnd_UnbalancedInputFallsBackToEOF(t *testing.T) {
	lines := splitLines(`function broken() {
  fetch('/x')`)
	assert.Equal(t, 1, findScopeEnd(lines, 0))
}

func TestInGuardedScope(t *testing.T) {
	guarded := splitLines(`try {
  risky();
} catch (err) {
  console.log('recovering', err);
}`)
	assert.True(t, inGuardedScope(guarded, 3))

	plain := splitLines(`function run() {
  console.log('starting');
}`)
	assert.False(t, inGuardedScope(plain, 1))
}

func TestInGuardedScope_NestedBlockInsideCatch(t *testing.T) {
	lines := splitLines(`try {
  risky();
} catch (err) {
  if (retryable(err)) {
    console.log('retrying');
  }
}`)
	assert.True(t, inGuardedScope(lines, 4))
}
