//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// dbNamePrefixLen leaves room for the sequence suffix under MongoDB's 64-byte limit.
const dbNamePrefixLen = 50

// shared is the one container a test binary runs against.
var shared struct {
	once sync.Once
	mu   sync.Mutex
	c    *MongoDBContainer
	err  error
}

var dbSeq atomic.Uint64

// SetupTestMainWithMongoDB starts the shared container, runs the tests and
// terminates it. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	shared.once.Do(func() {
		c, err := SetupMongoDB(ctx)
		shared.mu.Lock()
		shared.c, shared.err = c, err
		shared.mu.Unlock()
	})
	if shared.err != nil {
		fmt.Fprintf(os.Stderr, "start shared mongodb: %v\n", shared.err)
		return 1
	}

	code := m.Run()

	shared.mu.Lock()
	err := shared.c.Cleanup(ctx)
	shared.c = nil
	shared.mu.Unlock()
	if err != nil {
		// ryuk reaps it anyway
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// SharedMongoURI returns the URI of the container started by SetupTestMainWithMongoDB.
func SharedMongoURI(tb testing.TB) string {
	tb.Helper()
	shared.mu.Lock()
	defer shared.mu.Unlock()

	if shared.c == nil {
		tb.Fatal("shared mongodb not started: call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.c.URI
}

// DBName derives a database name from the running test that no other test shares.
func DBName(tb testing.TB) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\. "$*<>:|?`, r) {
			return '_'
		}
		return r
	}, tb.Name())
	if len(name) > dbNamePrefixLen {
		name = name[:dbNamePrefixLen]
	}
	return name + "_" + strconv.FormatUint(dbSeq.Add(1), 10)
}
