package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/course-planner/internal/catalog"
	"github.com/rhyrak/course-planner/internal/store"
)

const testCatalog = `
courses:
  - id: IS111
    name: Introduction to Programming
    credits: 1
    demand: Medium
    capacity: 40
    subscriberCount: 30
    skills: [Python]
    schedule:
      - day: Monday
        timeRange: "08:15-11:15"
        location: SR 2-1
    assessments:
      - type: Quiz
        date: "2025-03-04"
        title: Quiz 1
    bidHistory:
      - term: 2024-25 T2
        minBid: 12
        avgBid: 30
        maxBid: 55
  - id: IS112
    name: Data Management
    credits: 1
    schedule:
      - day: Monday
        timeRange: "10:00-13:15"
        location: SR 3-2
  - id: IS216
    name: Web Application Development II
    credits: 1
    prerequisites: [IS111]
    skills: [Data Visualisation]
    schedule:
      - day: Tuesday
        timeRange: "12:00-15:15"
        location: SR 2-4
holidays:
  - date: "2025-03-04"
    name: Test Holiday
`

// setup points the cli at a temporary catalog and badger directory.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	t.Setenv("CP_CATALOG_PATH", path)
	t.Setenv("CP_STORE_DIR", filepath.Join(dir, "db"))
	t.Setenv("CP_LOG_LEVEL", "disabled")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClashes_Args(t *testing.T) {
	setup(t)

	out, err := execute(t, "clashes", "IS111", "IS112", "IS216")
	require.NoError(t, err)
	assert.Contains(t, out, "IS111")
	assert.Contains(t, out, "IS112")
	assert.Contains(t, out, "Clashes: 1")

	out, err = execute(t, "clashes", "IS111", "IS216")
	require.NoError(t, err)
	assert.Equal(t, "No clashes.\n", out)

	_, err = execute(t, "clashes", "CS999")
	assert.ErrorIs(t, err, catalog.ErrUnknownCourse)
}

func TestCart_PersistsBetweenCommands(t *testing.T) {
	setup(t)

	out, err := execute(t, "cart", "add", "IS111", "IS216")
	require.NoError(t, err)
	assert.Equal(t, "Added IS111\nAdded IS216\n", out)

	_, err = execute(t, "cart", "add", "IS111")
	assert.ErrorIs(t, err, store.ErrDuplicate)

	out, err = execute(t, "cart", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Printed rows: 2")
	assert.Contains(t, out, "Courses: 2  Credits: 2.0")

	out, err = execute(t, "cart", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "[  OK]: Schedule clash check.")

	_, err = execute(t, "cart", "remove", "IS111")
	require.NoError(t, err)
	out, err = execute(t, "cart", "validate")
	assert.ErrorIs(t, err, ErrInvalidCart)
	assert.Contains(t, out, "- IS216 requires IS111 which is not in the cart")

	_, err = execute(t, "cart", "remove", "IS111")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// another student has an independent cart
	out, err = execute(t, "--student", "bob", "cart", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Printed rows: 0")

	_, err = execute(t, "cart", "clear")
	require.NoError(t, err)
	out, err = execute(t, "cart", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Courses: 0")
}

func TestRecommend_ReusesSavedPreferences(t *testing.T) {
	setup(t)

	out, err := execute(t, "recommend", "--interest", "programming")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. IS111")
	assert.Contains(t, out, "Core programming foundation")

	out, err = execute(t, "recommend")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. IS111")
}

func TestBid(t *testing.T) {
	setup(t)

	out, err := execute(t, "bid", "IS111")
	require.NoError(t, err)
	assert.Contains(t, out, "recommended   30")
	assert.Contains(t, out, "min   12")
	assert.Contains(t, out, "max   55")
	assert.Contains(t, out, "fill  75%")

	_, err = execute(t, "bid")
	assert.Error(t, err)
}

func TestDeadlines(t *testing.T) {
	setup(t)
	_, err := execute(t, "cart", "add", "IS111")
	require.NoError(t, err)

	out, err := execute(t, "deadlines", "--from", "2025-03-01", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-04 IS111")
	assert.Contains(t, out, "(holiday)")

	out, err = execute(t, "deadlines", "--from", "2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, "No upcoming deadlines.\n", out)

	_, err = execute(t, "deadlines", "--from", "April")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := setup(t)
	_, err := execute(t, "cart", "add", "IS111", "IS112")
	require.NoError(t, err)
	_, err = execute(t, "recommend", "--interest", "data-analytics")
	require.NoError(t, err)

	clashes := filepath.Join(dir, "clashes.csv")
	recs := filepath.Join(dir, "recs.csv")
	_, err = execute(t, "export", "--clashes", clashes, "--recommendations", recs)
	require.NoError(t, err)

	data, err := os.ReadFile(clashes)
	require.NoError(t, err)
	assert.Contains(t, string(data), "course1_id")
	assert.Contains(t, string(data), "IS111,IS112,Monday")

	data, err = os.ReadFile(recs)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rank,course_id,score,reasons")
	assert.Contains(t, string(data), "1,IS216,30")
}
